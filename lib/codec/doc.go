// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is fourline's CBOR configuration. Replays and opening
// books are encoded with Core Deterministic Encoding so that the same
// logical record always produces identical bytes, a requirement for
// content addressing, where the record's BLAKE3 hash is its identity.
//
// Consumers import only this package, not fxamacker/cbor directly.
package codec
