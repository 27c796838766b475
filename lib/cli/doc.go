// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the shared error vocabulary for fourline
// command-line binaries.
//
// Commands return categorized errors from the constructors here
// (Validation, NotFound, Internal) so main functions can print
// consistent messages and pick exit codes without parsing error text.
// ExitError signals a handled non-zero exit where the command has
// already written its own output.
package cli
