// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package replay stores finished games as content-addressed records.
//
// A Record is the full account of one game: who played, when, every
// move with its thinking time, and the result. Records encode to
// deterministic CBOR, so a record's BLAKE3 hash is a stable identity:
// saving the same game twice produces the same file. The on-disk
// format compresses the CBOR body (zstd, falling back to lz4 or raw
// for incompressible data) and carries the hash in the header so
// corruption is detected on load.
//
// Store is a directory of records addressed by hash, with short
// "rec-" prefix refs for the command line.
package replay
