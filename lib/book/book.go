// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package book

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/clock"
	"github.com/fourline-foundation/fourline/lib/codec"
	"github.com/fourline-foundation/fourline/lib/engine"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
)

// File format: a fixed header followed by the zstd-compressed CBOR
// body.
//
//	offset  size  field
//	0       4     magic "FLBK"
//	4       1     format version (currently 1)
//	5       4     uncompressed body size, big endian
//	9       32    keyed BLAKE3 digest of the uncompressed body
//	41      ...   zstd-compressed body
const (
	formatVersion = 1
	headerSize    = 41
)

var fileMagic = [4]byte{'F', 'L', 'B', 'K'}

// bookDomainKey is the BLAKE3 keyed-hash domain for book files, ASCII
// zero-padded to 32 bytes. A fixed constant; changing it invalidates
// every existing book.
var bookDomainKey = [32]byte{
	'f', 'o', 'u', 'r', 'l', 'i', 'n', 'e', '.', 'b', 'o', 'o', 'k',
}

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("book: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("book: zstd decoder initialization failed: " + err.Error())
	}
}

// Book maps position codes to the engine's preferred column for the
// opening plies. It implements engine.Book.
type Book struct {
	maxPly     int
	difficulty engine.Difficulty
	entries    map[board.BitBoard]uint8
}

// bookFile is the CBOR body. Map keys are position codes; the
// deterministic encoder sorts them, so identical books encode to
// identical bytes.
type bookFile struct {
	MaxPly     int                      `cbor:"max_ply"`
	Difficulty string                   `cbor:"difficulty"`
	Entries    map[board.BitBoard]uint8 `cbor:"entries"`
}

// BuildConfig configures a book build.
type BuildConfig struct {
	// MaxPly bounds coverage: every reachable position with fewer
	// than MaxPly stones gets an entry.
	MaxPly int

	// Difficulty is the search depth used to pick each entry's move.
	Difficulty engine.Difficulty

	// Clock defaults to the real clock.
	Clock clock.Clock

	// Progress, when set, is called after each position is solved
	// with the number of entries so far.
	Progress func(entries int)
}

// Build walks every position reachable in fewer than MaxPly moves and
// records the engine's choice for it. Positions transposing to the
// same code are solved once. Tie-breaking is by lowest column, so a
// build is reproducible.
func Build(ctx context.Context, cfg BuildConfig) (*Book, error) {
	if cfg.MaxPly < 1 {
		return nil, fmt.Errorf("book max ply must be at least 1, got %d", cfg.MaxPly)
	}

	eng := engine.New(engine.Config{
		Difficulty: cfg.Difficulty,
		Clock:      cfg.Clock,
	})

	bk := &Book{
		maxPly:     cfg.MaxPly,
		difficulty: cfg.Difficulty,
		entries:    make(map[board.BitBoard]uint8),
	}

	b := board.New()
	if err := bk.fill(ctx, eng, &b, cfg.Progress); err != nil {
		return nil, err
	}
	return bk, nil
}

func (bk *Book) fill(ctx context.Context, eng *engine.Engine, b *board.Board, progress func(int)) error {
	if b.Ply() >= bk.maxPly {
		return nil
	}
	if _, won := b.Winner(); won || b.IsFull() {
		return nil
	}

	code := b.PositionCode()
	if _, seen := bk.entries[code]; !seen {
		evals, err := eng.EvaluateMoves(ctx, b)
		if err != nil {
			return fmt.Errorf("solving position at ply %d: %w", b.Ply(), err)
		}
		bk.entries[code] = uint8(evals[0].Column)
		if progress != nil {
			progress(len(bk.entries))
		}
	}

	var buf [board.Width]int
	for _, column := range b.AppendLegalMoves(buf[:0]) {
		b.MakeMove(column)
		err := bk.fill(ctx, eng, b, progress)
		b.UndoMove()
		if err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the book column for the position, if present.
func (bk *Book) Lookup(b *board.Board) (int, bool) {
	column, ok := bk.entries[b.PositionCode()]
	return int(column), ok
}

// Len returns the number of positions in the book.
func (bk *Book) Len() int { return len(bk.entries) }

// MaxPly returns the ply bound the book was built with.
func (bk *Book) MaxPly() int { return bk.maxPly }

// Difficulty returns the search difficulty the book was built with.
func (bk *Book) Difficulty() engine.Difficulty { return bk.difficulty }

// encode serializes the book to its on-disk representation.
func (bk *Book) encode() ([]byte, error) {
	body, err := codec.Marshal(bookFile{
		MaxPly:     bk.maxPly,
		Difficulty: bk.difficulty.String(),
		Entries:    bk.entries,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding book: %w", err)
	}

	digest := digestBody(body)
	compressed := zstdEncoder.EncodeAll(body, nil)

	out := make([]byte, 0, headerSize+len(compressed))
	out = append(out, fileMagic[:]...)
	out = append(out, formatVersion)
	out = binary.BigEndian.AppendUint32(out, uint32(len(body)))
	out = append(out, digest[:]...)
	out = append(out, compressed...)
	return out, nil
}

// decode parses an on-disk book, verifying the header digest.
func decode(data []byte) (*Book, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("truncated book file: %d bytes", len(data))
	}
	if !bytes.Equal(data[:4], fileMagic[:]) {
		return nil, fmt.Errorf("not a book file: bad magic %q", data[:4])
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("unsupported book format version %d", data[4])
	}

	uncompressedSize := int(binary.BigEndian.Uint32(data[5:9]))
	var stored [32]byte
	copy(stored[:], data[9:41])

	body, err := zstdDecoder.DecodeAll(data[headerSize:], make([]byte, 0, uncompressedSize))
	if err != nil {
		return nil, fmt.Errorf("decompressing book: %w", err)
	}
	if len(body) != uncompressedSize {
		return nil, fmt.Errorf("book body is %d bytes, header says %d", len(body), uncompressedSize)
	}
	if digestBody(body) != stored {
		return nil, fmt.Errorf("book digest mismatch: file is corrupt")
	}

	var file bookFile
	if err := codec.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("decoding book: %w", err)
	}

	difficulty, err := engine.ParseDifficulty(file.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("book difficulty: %w", err)
	}
	if file.Entries == nil {
		file.Entries = make(map[board.BitBoard]uint8)
	}
	for code, column := range file.Entries {
		if column >= board.Width {
			return nil, fmt.Errorf("book entry %d has column %d out of range", code, column)
		}
	}

	return &Book{
		maxPly:     file.MaxPly,
		difficulty: difficulty,
		entries:    file.Entries,
	}, nil
}

func digestBody(body []byte) [32]byte {
	hasher, err := blake3.NewKeyed(bookDomainKey[:])
	if err != nil {
		panic("book: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(body)

	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// Save writes the book to path atomically.
func (bk *Book) Save(path string) error {
	data, err := bk.encode()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating book directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".book-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempName := temp.Name()
	if _, err := temp.Write(data); err != nil {
		temp.Close()
		os.Remove(tempName)
		return fmt.Errorf("writing book: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("closing book: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		os.Remove(tempName)
		return fmt.Errorf("renaming book: %w", err)
	}
	return nil
}

// Load reads and verifies a book file.
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	bk, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bk, nil
}
