// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for testability. Production code
// injects Real(); tests inject Fake() and advance it explicitly.
//
// Everything in fourline that reads the wall clock (engine move
// deadlines, replay move timestamps, autoplay pacing) takes a Clock
// instead of calling the time package directly, so tests never sleep
// and never race against real timers.
package clock
