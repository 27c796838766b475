// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLoadThemeAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.jsonc")
	content := `{
		// brighter tokens for a light terminal
		"player1": "160",
		"player2": "94",
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing theme file: %v", err)
	}

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("loading theme: %v", err)
	}

	if theme.Player1 != lipgloss.Color("160") {
		t.Errorf("player1 override not applied: %v", theme.Player1)
	}
	if theme.Player2 != lipgloss.Color("94") {
		t.Errorf("player2 override not applied: %v", theme.Player2)
	}
	// Untouched fields keep the default.
	if theme.NormalText != DefaultTheme.NormalText {
		t.Errorf("normal_text should keep default, got %v", theme.NormalText)
	}
}

func TestLoadThemeMissingFile(t *testing.T) {
	if _, err := LoadTheme(filepath.Join(t.TempDir(), "absent.jsonc")); err == nil {
		t.Fatal("expected error for missing theme file")
	}
}

func TestLoadThemeRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.jsonc")
	if err := os.WriteFile(path, []byte(`{"player1": [}`), 0o644); err != nil {
		t.Fatalf("writing theme file: %v", err)
	}
	if _, err := LoadTheme(path); err == nil {
		t.Fatal("expected error for malformed theme file")
	}
}

func TestTokenColor(t *testing.T) {
	if DefaultTheme.TokenColor(1) != DefaultTheme.Player1 {
		t.Error("player 1 color mismatch")
	}
	if DefaultTheme.TokenColor(2) != DefaultTheme.Player2 {
		t.Error("player 2 color mismatch")
	}
	if DefaultTheme.TokenColor(0) != DefaultTheme.NormalText {
		t.Error("out-of-range player should get NormalText")
	}
}
