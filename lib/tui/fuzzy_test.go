// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"testing"

	"github.com/junegunn/fzf/src/util"
)

func TestFuzzyMatchBasic(t *testing.T) {
	result := FuzzyMatch("engine(master) vs human", []rune("master"), nil)
	if !result.Matched {
		t.Fatal("expected substring pattern to match")
	}
	if len(result.Positions) != 6 {
		t.Fatalf("expected 6 matched positions, got %d", len(result.Positions))
	}
}

func TestFuzzyMatchNonContiguous(t *testing.T) {
	result := FuzzyMatch("player 1 wins in 29 moves", []rune("p1w"), nil)
	if !result.Matched {
		t.Fatal("expected non-contiguous pattern to match")
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	result := FuzzyMatch("draw in 42 moves", []rune("winner"), nil)
	if result.Matched {
		t.Fatal("expected pattern to miss")
	}
	if result.Score != 0 || result.Positions != nil {
		t.Fatalf("miss should be zero-valued, got %+v", result)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	if !FuzzyMatch("Engine(Hard)", []rune("hard"), nil).Matched {
		t.Fatal("lowercase pattern should match mixed-case text")
	}
}

func TestFuzzyMatchSmartCase(t *testing.T) {
	// An uppercase rune in the pattern makes matching case-sensitive.
	if FuzzyMatch("engine(hard)", []rune("Hard"), nil).Matched {
		t.Fatal("uppercase pattern should not match lowercase text")
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	result := FuzzyMatch("anything", nil, nil)
	if !result.Matched {
		t.Fatal("empty pattern should match everything")
	}
}

func TestFuzzyMatchSharedSlab(t *testing.T) {
	slab := util.MakeSlab(slabSize16, slabSize32)
	for _, text := range []string{"first entry", "second entry", "third"} {
		if !FuzzyMatch(text, []rune("e"), slab).Matched {
			t.Fatalf("expected %q to match with shared slab", text)
		}
	}
}

// Slab sizes copied from fzf's own defaults.
const (
	slabSize16 = 100 * 1024
	slabSize32 = 2048
)
