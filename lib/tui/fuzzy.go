// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching a filter pattern against one
// line of text.
type FuzzyResult struct {
	// Matched is true when every pattern rune was found in order.
	Matched bool

	// Score ranks matches; higher is better.
	Score int

	// Positions are the matched character indexes, for highlighting.
	Positions []int
}

// FuzzyMatch runs fzf's FuzzyMatchV2 against text. Matching is
// smart-case: case-insensitive unless the pattern contains an
// uppercase rune. The slab is fzf's scratch allocation and may be
// shared across calls on the same goroutine; pass util.MakeSlab
// output, or nil to allocate per call.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Matched: true}
	}

	caseSensitive := false
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			caseSensitive = true
			break
		}
	}
	if !caseSensitive {
		lowered := make([]rune, len(pattern))
		for i, r := range pattern {
			lowered[i] = unicode.ToLower(r)
		}
		pattern = lowered
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(caseSensitive, false, true, &chars, pattern, true, slab)
	if result.Start < 0 {
		return FuzzyResult{}
	}

	out := FuzzyResult{Matched: true, Score: result.Score}
	if positions != nil {
		out.Positions = *positions
	}
	return out
}
