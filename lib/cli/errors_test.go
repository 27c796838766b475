// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorPreservesChain(t *testing.T) {
	wrapped := Internal("loading replay: %w", fs.ErrNotExist)

	if !errors.Is(wrapped, fs.ErrNotExist) {
		t.Error("errors.Is does not see the wrapped sentinel")
	}

	var categorized *Error
	if !errors.As(wrapped, &categorized) {
		t.Fatal("errors.As does not find *cli.Error")
	}
	if categorized.Category != CategoryInternal {
		t.Errorf("Category = %q, want %q", categorized.Category, CategoryInternal)
	}
}

func TestWithHint(t *testing.T) {
	err := NotFound("replay %q not found", "rec-abc123").
		WithHint("Run 'fourline-replay' to list saved replays.")

	if err.Hint == "" {
		t.Error("WithHint did not set the hint")
	}
	if err.Category != CategoryNotFound {
		t.Errorf("Category = %q, want %q", err.Category, CategoryNotFound)
	}
}

func TestExitErrorCode(t *testing.T) {
	err := &ExitError{Code: 3}

	coder, ok := any(err).(interface{ ExitCode() int })
	if !ok {
		t.Fatal("ExitError does not implement ExitCode()")
	}
	if coder.ExitCode() != 3 {
		t.Errorf("ExitCode() = %d, want 3", coder.ExitCode())
	}
}

func TestValidationMessage(t *testing.T) {
	err := Validation("invalid column %d: want 1-%d", 9, 7)
	want := fmt.Sprintf("invalid column %d: want 1-%d", 9, 7)
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
