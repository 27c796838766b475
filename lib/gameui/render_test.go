// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package gameui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/tui"
)

func TestRenderBoardEmpty(t *testing.T) {
	b := board.New()
	out := ansi.Strip(RenderBoard(tui.DefaultTheme, &b, RenderOptions{Cursor: -1, LastColumn: -1}))

	lines := strings.Split(out, "\n")
	// Top border, six rows, bottom border, labels.
	if len(lines) != board.Height+3 {
		t.Fatalf("expected %d lines, got %d:\n%s", board.Height+3, len(lines), out)
	}
	if strings.Count(out, emptyGlyph) != board.Width*board.Height {
		t.Fatalf("expected %d empty cells", board.Width*board.Height)
	}
	if !strings.HasSuffix(out, "1 2 3 4 5 6 7") {
		t.Fatalf("missing column labels: %q", lines[len(lines)-1])
	}
}

func TestRenderBoardCursorRow(t *testing.T) {
	b := board.New()
	out := ansi.Strip(RenderBoard(tui.DefaultTheme, &b, RenderOptions{Cursor: 0, LastColumn: -1}))

	lines := strings.Split(out, "\n")
	if len(lines) != board.Height+4 {
		t.Fatalf("cursor should add a row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], cursorGlyph) {
		t.Fatalf("missing cursor glyph: %q", lines[0])
	}
}

func TestRenderBoardTokens(t *testing.T) {
	b := board.New()
	b.MakeMove(0)
	b.MakeMove(0)

	out := ansi.Strip(RenderBoard(tui.DefaultTheme, &b, RenderOptions{Cursor: -1, LastColumn: 0}))
	if strings.Count(out, tokenGlyph) != 2 {
		t.Fatalf("expected 2 tokens rendered:\n%s", out)
	}
}

func TestTopTokenRow(t *testing.T) {
	b := board.New()
	if topTokenRow(&b, 3) != -1 {
		t.Fatal("empty column should report -1")
	}

	b.MakeMove(3)
	b.MakeMove(3)
	if got := topTokenRow(&b, 3); got != 1 {
		t.Fatalf("expected top token at row 1, got %d", got)
	}
}
