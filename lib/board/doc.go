// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package board implements the Connect Four position as a pair of
// bitboards, one per player. Moves, undo, legality, and win detection
// are pure bit manipulation, which keeps the search engine's inner
// loop branch-light and allocation-free.
//
// Board is a value type. The engine copies a Board, mutates the copy
// with MakeMove/UndoMove during search, and never touches the
// original. PositionCode provides a collision-free transposition
// table key that encodes both the stones and the side to move.
package board
