// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package book precomputes opening moves.
//
// A Book maps early positions, keyed by their position code, to the
// column the engine would choose. Because the position code folds in
// the side to move, a single lookup answers both colors. Books are
// built offline (fourline-book build) and consulted by the engine
// before it searches, so the opening plies of a game cost a map
// lookup instead of a full tree walk.
//
// The on-disk format is deterministic CBOR, zstd-compressed, with a
// keyed BLAKE3 digest of the uncompressed body in the header for
// integrity.
package book
