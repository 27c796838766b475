// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds shared building blocks for fourline's terminal
// interfaces: the color theme, fuzzy matching for list filtering, and
// a terminal markdown renderer for the in-game help.
package tui
