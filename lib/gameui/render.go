// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package gameui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/tui"
)

// RenderOptions controls board decoration.
type RenderOptions struct {
	// Cursor is the column under the drop cursor, or -1 to hide it.
	Cursor int

	// LastColumn is the column of the most recent move, or -1. Its
	// topmost token gets a background highlight.
	LastColumn int

	// WinnerHighlight switches the last-move highlight to the win
	// color, for finished games.
	WinnerHighlight bool
}

const (
	tokenGlyph  = "●"
	emptyGlyph  = "·"
	cursorGlyph = "▼"
)

// boardRenderer creates lipgloss styles with a forced ANSI256 profile
// so rendering is identical with or without a TTY (tests, piped
// output).
var boardRenderer = func() *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)
	return renderer
}()

// RenderBoard draws the position as a bordered grid with column
// labels. Shared by the play screen and the replay browser.
func RenderBoard(theme tui.Theme, b *board.Board, opts RenderOptions) string {
	var out strings.Builder

	borderStyle := boardRenderer.NewStyle().Foreground(theme.BoardBorder)
	labelStyle := boardRenderer.NewStyle().Foreground(theme.ColumnLabel)
	emptyStyle := boardRenderer.NewStyle().Foreground(theme.FaintText)
	cursorStyle := boardRenderer.NewStyle().Foreground(theme.CursorForeground).Bold(true)

	// The topmost token in the last-played column gets a highlight.
	lastRow := -1
	if opts.LastColumn >= 0 {
		lastRow = topTokenRow(b, opts.LastColumn)
	}

	if opts.Cursor >= 0 {
		out.WriteString("  ")
		for column := 0; column < board.Width; column++ {
			if column == opts.Cursor {
				out.WriteString(cursorStyle.Render(cursorGlyph))
			} else {
				out.WriteString(" ")
			}
			if column < board.Width-1 {
				out.WriteString(" ")
			}
		}
		out.WriteString("\n")
	}

	out.WriteString(borderStyle.Render("┌" + strings.Repeat("─", board.Width*2+1) + "┐"))
	out.WriteString("\n")

	for row := board.Height - 1; row >= 0; row-- {
		out.WriteString(borderStyle.Render("│"))
		out.WriteString(" ")
		for column := 0; column < board.Width; column++ {
			token, occupied := b.TokenAt(row, column)
			var cell string
			if occupied {
				style := boardRenderer.NewStyle().Foreground(theme.TokenColor(token.Player()))
				if column == opts.LastColumn && row == lastRow {
					if opts.WinnerHighlight {
						style = style.Background(theme.WinBackground)
					} else {
						style = style.Background(theme.LastMoveBackground)
					}
				}
				cell = style.Render(tokenGlyph)
			} else {
				cell = emptyStyle.Render(emptyGlyph)
			}
			out.WriteString(cell)
			if column < board.Width-1 {
				out.WriteString(" ")
			}
		}
		out.WriteString(" ")
		out.WriteString(borderStyle.Render("│"))
		out.WriteString("\n")
	}

	out.WriteString(borderStyle.Render("└" + strings.Repeat("─", board.Width*2+1) + "┘"))
	out.WriteString("\n")

	out.WriteString("  ")
	for column := 0; column < board.Width; column++ {
		out.WriteString(labelStyle.Render(strconv.Itoa(column + 1)))
		if column < board.Width-1 {
			out.WriteString(" ")
		}
	}

	return out.String()
}

// topTokenRow returns the row of the highest token in the column, or
// -1 for an empty column.
func topTokenRow(b *board.Board, column int) int {
	for row := board.Height - 1; row >= 0; row-- {
		if _, occupied := b.TokenAt(row, column); occupied {
			return row
		}
	}
	return -1
}
