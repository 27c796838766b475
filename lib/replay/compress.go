// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the compression algorithm of a stored
// record body. Tags are 1-byte protocol constants in the file header;
// changing them breaks format compatibility.
type CompressionTag uint8

const (
	// CompressionNone stores the CBOR body as-is. Chosen when the
	// body is too small or too dense to compress.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 is LZ4 block compression: modest ratio, very
	// fast decode. The fallback when zstd gains little.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd is zstd at the default level. CBOR move lists
	// are highly repetitive, so this is the usual winner.
	CompressionZstd CompressionTag = 2
)

// String returns the tag's human-readable name.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// zstdEncoder and zstdDecoder are shared across calls; both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("replay: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("replay: zstd decoder initialization failed: " + err.Error())
	}
}

// errIncompressible signals that compression would not shrink the
// input; the caller falls back to the next tag.
var errIncompressible = errors.New("data is incompressible")

// compress compresses data with the given algorithm. Returns
// errIncompressible when the output would not be smaller than the
// input.
func compress(data []byte, tag CompressionTag) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		bound := lz4.CompressBlockBound(len(data))
		destination := make([]byte, bound)
		written, err := lz4.CompressBlock(data, destination, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		// CompressBlock returns 0 for incompressible input.
		if written == 0 || written >= len(data) {
			return nil, errIncompressible
		}
		return destination[:written], nil

	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return nil, errIncompressible
		}
		return compressed, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// decompress reverses compress. uncompressedSize must match the
// original length exactly; a mismatch is corruption.
func decompress(data []byte, tag CompressionTag, uncompressedSize int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(data) != uncompressedSize {
			return nil, fmt.Errorf("uncompressed body: size %d does not match expected %d",
				len(data), uncompressedSize)
		}
		return data, nil

	case CompressionLZ4:
		destination := make([]byte, uncompressedSize)
		read, err := lz4.UncompressBlock(data, destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != uncompressedSize {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
		}
		return destination, nil

	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(data, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(result) != uncompressedSize {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), uncompressedSize)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// compressAuto picks the best available tag: zstd, then lz4, then
// none. Returns the (possibly unmodified) bytes and the tag used.
func compressAuto(data []byte) ([]byte, CompressionTag, error) {
	for _, tag := range []CompressionTag{CompressionZstd, CompressionLZ4} {
		compressed, err := compress(data, tag)
		if err == nil {
			return compressed, tag, nil
		}
		if !errors.Is(err, errIncompressible) {
			return nil, 0, err
		}
	}
	return data, CompressionNone, nil
}
