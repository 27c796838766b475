// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package game runs a Connect Four match between two Player
// implementations. The match loop owns turn alternation and
// termination detection; players own their move selection (engine
// search, TUI input, scripted test moves) and their retry UX: a
// player returning an illegal move is an error, not a prompt to try
// again.
package game
