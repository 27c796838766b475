// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for fourline packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// individual tests do not need direct time.After calls. These are the
// only place in the test suite where real wall-clock timeouts appear;
// everything else runs on lib/clock fakes.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no fourline-internal dependencies.
package testutil
