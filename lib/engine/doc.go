// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine is the Connect Four search engine: negamax with
// alpha-beta pruning, a transposition table keyed by the board's
// position code, and a positional heuristic at the depth horizon.
//
// The engine searches by iterative deepening so that an optional
// per-move time budget can cut the search off cleanly: when the
// deadline passes mid-iteration, the deepest fully completed
// iteration's move is played. Difficulty levels map to maximum search
// depths.
package engine
