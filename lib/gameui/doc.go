// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package gameui is the interactive play screen: a bubbletea model
// that renders the board, routes keystrokes to the human player, runs
// engine moves asynchronously with a thinking spinner, and offers
// saving the finished game to the replay store.
package gameui
