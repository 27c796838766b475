// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
)

// Hash is the 32-byte BLAKE3 digest of a record's encoded body. It is
// the record's identity: the store addresses files by it and refs
// abbreviate it.
type Hash [32]byte

// recordDomainKey is the BLAKE3 keyed-hash domain for replay records.
// A fixed constant; changing it invalidates every stored record's
// address. The bytes are the ASCII domain name zero-padded to 32,
// which keeps the key readable in hex dumps without costing any
// cryptographic property.
var recordDomainKey = [32]byte{
	'f', 'o', 'u', 'r', 'l', 'i', 'n', 'e', '.', 'r', 'e', 'p', 'l', 'a', 'y', '.',
	'r', 'e', 'c', 'o', 'r', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// HashRecord computes the record-domain hash of an encoded record
// body. Hashes are computed on the uncompressed CBOR so the address
// is independent of the compression choice.
func HashRecord(encoded []byte) Hash {
	hasher, err := blake3.NewKeyed(recordDomainKey[:])
	if err != nil {
		// NewKeyed only fails for a wrong key length, which the
		// fixed-size array rules out.
		panic("replay: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(encoded)

	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// String returns the full hex form of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Ref returns the short display ref: "rec-" plus the first 12 hex
// characters.
func (h Hash) Ref() string {
	return "rec-" + hex.EncodeToString(h[:6])
}

// ParseHash parses a 64-character hex string into a Hash.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing record hash: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("record hash is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

// normalizeRef strips the optional "rec-" prefix and lowercases the
// remainder, yielding a bare hex prefix for matching.
func normalizeRef(ref string) string {
	return strings.ToLower(strings.TrimPrefix(ref, "rec-"))
}
