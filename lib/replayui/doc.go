// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package replayui is the replay browser: a bubbletea model that
// lists the record store with fuzzy filtering and steps through a
// selected game move by move, with autoplay.
package replayui
