// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fourline-foundation/fourline/lib/codec"
)

// File format: a fixed header followed by the (possibly compressed)
// CBOR body.
//
//	offset  size  field
//	0       4     magic "FLRE"
//	4       1     format version (currently 1)
//	5       1     compression tag
//	6       4     uncompressed body size, big endian
//	10      32    BLAKE3 record hash of the uncompressed body
//	42      ...   body
const (
	fileExtension = ".flr"
	formatVersion = 1
	headerSize    = 42
)

var fileMagic = [4]byte{'F', 'L', 'R', 'E'}

// Store errors mapped to user-facing categories by the commands.
var (
	// ErrNotFound means no record matches the ref.
	ErrNotFound = errors.New("replay not found")

	// ErrAmbiguousRef means a short ref prefix matches more than one
	// record.
	ErrAmbiguousRef = errors.New("ambiguous replay ref")
)

// Encode serializes a record to its on-disk representation and
// returns the bytes together with the record's hash.
func Encode(record *Record) ([]byte, Hash, error) {
	body, err := codec.Marshal(record)
	if err != nil {
		return nil, Hash{}, fmt.Errorf("encoding record: %w", err)
	}
	hash := HashRecord(body)

	compressed, tag, err := compressAuto(body)
	if err != nil {
		return nil, Hash{}, fmt.Errorf("compressing record: %w", err)
	}

	out := make([]byte, 0, headerSize+len(compressed))
	out = append(out, fileMagic[:]...)
	out = append(out, formatVersion, byte(tag))
	out = binary.BigEndian.AppendUint32(out, uint32(len(body)))
	out = append(out, hash[:]...)
	out = append(out, compressed...)
	return out, hash, nil
}

// Decode parses an on-disk record, verifying the header hash against
// the decompressed body.
func Decode(data []byte) (*Record, Hash, error) {
	if len(data) < headerSize {
		return nil, Hash{}, fmt.Errorf("truncated record file: %d bytes", len(data))
	}
	if !bytes.Equal(data[:4], fileMagic[:]) {
		return nil, Hash{}, fmt.Errorf("not a replay file: bad magic %q", data[:4])
	}
	if data[4] != formatVersion {
		return nil, Hash{}, fmt.Errorf("unsupported replay format version %d", data[4])
	}

	tag := CompressionTag(data[5])
	uncompressedSize := int(binary.BigEndian.Uint32(data[6:10]))
	var stored Hash
	copy(stored[:], data[10:42])

	body, err := decompress(data[headerSize:], tag, uncompressedSize)
	if err != nil {
		return nil, Hash{}, err
	}

	if HashRecord(body) != stored {
		return nil, Hash{}, fmt.Errorf("record hash mismatch: file is corrupt")
	}

	var record Record
	if err := codec.Unmarshal(body, &record); err != nil {
		return nil, Hash{}, fmt.Errorf("decoding record: %w", err)
	}
	return &record, stored, nil
}

// Store is a directory of records addressed by hash.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) a record store at dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating replay directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// Save writes the record and returns its hash. Saving an identical
// record is a no-op: deterministic encoding means the file already
// has the right content.
func (s *Store) Save(record *Record) (Hash, error) {
	if err := record.Validate(); err != nil {
		return Hash{}, fmt.Errorf("invalid record: %w", err)
	}

	data, hash, err := Encode(record)
	if err != nil {
		return Hash{}, err
	}

	path := s.path(hash)
	if _, err := os.Stat(path); err == nil {
		return hash, nil
	}

	// Write through a temp file and rename so a crash never leaves a
	// half-written record under its final name.
	temp, err := os.CreateTemp(s.dir, ".flr-*")
	if err != nil {
		return Hash{}, fmt.Errorf("creating temp file: %w", err)
	}
	tempName := temp.Name()
	if _, err := temp.Write(data); err != nil {
		temp.Close()
		os.Remove(tempName)
		return Hash{}, fmt.Errorf("writing record: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempName)
		return Hash{}, fmt.Errorf("closing record: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		os.Remove(tempName)
		return Hash{}, fmt.Errorf("renaming record: %w", err)
	}
	return hash, nil
}

// Load reads and verifies the record with the given hash.
func (s *Store) Load(hash Hash) (*Record, error) {
	data, err := os.ReadFile(s.path(hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, hash.Ref())
		}
		return nil, err
	}

	record, stored, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path(hash), err)
	}
	if stored != hash {
		return nil, fmt.Errorf("%s: content hash %s does not match filename", s.path(hash), stored)
	}
	// The hash only proves the bytes are intact; the moves inside can
	// still be illegal, and playback replays them without rechecking.
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid record: %w", s.path(hash), err)
	}
	return record, nil
}

// Entry is one record in a store listing.
type Entry struct {
	Hash   Hash
	Record *Record
}

// List loads every record in the store, newest first. Unreadable
// files are skipped rather than failing the whole listing; the browse
// UI should not be taken down by one corrupt file.
func (s *Store) List() ([]Entry, error) {
	hashes, err := s.hashes()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(hashes))
	for _, hash := range hashes {
		record, err := s.Load(hash)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Hash: hash, Record: record})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Record.StartedAt, entries[j].Record.StartedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return entries[i].Hash.String() < entries[j].Hash.String()
	})
	return entries, nil
}

// Resolve turns a ref (a full hash, a "rec-" short ref, or any
// unique hex prefix) into the record's hash.
func (s *Store) Resolve(ref string) (Hash, error) {
	prefix := normalizeRef(ref)
	if prefix == "" {
		return Hash{}, fmt.Errorf("empty replay ref")
	}
	if len(prefix) == 64 {
		return ParseHash(prefix)
	}

	hashes, err := s.hashes()
	if err != nil {
		return Hash{}, err
	}

	var matches []Hash
	for _, hash := range hashes {
		if strings.HasPrefix(hash.String(), prefix) {
			matches = append(matches, hash)
		}
	}

	switch len(matches) {
	case 0:
		return Hash{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return Hash{}, fmt.Errorf("%w: %s matches %s and %s", ErrAmbiguousRef, ref,
			matches[0].Ref(), matches[1].Ref())
	}
}

// hashes returns the hash of every record file in the directory.
func (s *Store) hashes() ([]Hash, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading replay directory: %w", err)
	}

	var hashes []Hash
	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		if dirEntry.IsDir() || !strings.HasSuffix(name, fileExtension) {
			continue
		}
		hash, err := ParseHash(strings.TrimSuffix(name, fileExtension))
		if err != nil {
			continue
		}
		hashes = append(hashes, hash)
	}
	return hashes, nil
}

func (s *Store) path(hash Hash) string {
	return filepath.Join(s.dir, hash.String()+fileExtension)
}
