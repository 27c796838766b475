// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/jsonc"
)

// Theme defines the color palette for fourline's terminal UIs. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Token colors.
	Player1 lipgloss.Color
	Player2 lipgloss.Color

	// Board chrome.
	BoardBorder lipgloss.Color
	ColumnLabel lipgloss.Color

	// Cursor column and last-move highlighting.
	CursorForeground   lipgloss.Color
	LastMoveBackground lipgloss.Color

	// Winning line highlight.
	WinBackground lipgloss.Color

	// Selected row in list views.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Search and filter match highlighting.
	SearchHighlightBackground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	Player1: lipgloss.Color("203"), // soft red
	Player2: lipgloss.Color("221"), // amber

	BoardBorder: lipgloss.Color("240"),
	ColumnLabel: lipgloss.Color("245"),

	CursorForeground:   lipgloss.Color("255"),
	LastMoveBackground: lipgloss.Color("236"),

	WinBackground: lipgloss.Color("22"), // dark green tint

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	SearchHighlightBackground: lipgloss.Color("58"), // dark amber

	HeaderForeground: lipgloss.Color("255"),
	HelpText:         lipgloss.Color("241"),
	ErrorText:        lipgloss.Color("196"),
}

// themeFile mirrors Theme with string fields for the override file.
// Absent or empty fields keep the default.
type themeFile struct {
	NormalText string `json:"normal_text"`
	FaintText  string `json:"faint_text"`

	Player1 string `json:"player1"`
	Player2 string `json:"player2"`

	BoardBorder string `json:"board_border"`
	ColumnLabel string `json:"column_label"`

	CursorForeground   string `json:"cursor_foreground"`
	LastMoveBackground string `json:"last_move_background"`

	WinBackground string `json:"win_background"`

	SelectedBackground string `json:"selected_background"`
	SelectedForeground string `json:"selected_foreground"`

	SearchHighlightBackground string `json:"search_highlight_background"`

	HeaderForeground string `json:"header_foreground"`
	HelpText         string `json:"help_text"`
	ErrorText        string `json:"error_text"`
}

// LoadTheme reads a JSONC theme override file and applies it over the
// default theme. Comments and trailing commas are allowed; fields not
// present keep their defaults.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}

	var file themeFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return Theme{}, fmt.Errorf("parsing theme %s: %w", path, err)
	}

	theme := DefaultTheme
	apply := func(target *lipgloss.Color, value string) {
		if value != "" {
			*target = lipgloss.Color(value)
		}
	}

	apply(&theme.NormalText, file.NormalText)
	apply(&theme.FaintText, file.FaintText)
	apply(&theme.Player1, file.Player1)
	apply(&theme.Player2, file.Player2)
	apply(&theme.BoardBorder, file.BoardBorder)
	apply(&theme.ColumnLabel, file.ColumnLabel)
	apply(&theme.CursorForeground, file.CursorForeground)
	apply(&theme.LastMoveBackground, file.LastMoveBackground)
	apply(&theme.WinBackground, file.WinBackground)
	apply(&theme.SelectedBackground, file.SelectedBackground)
	apply(&theme.SelectedForeground, file.SelectedForeground)
	apply(&theme.SearchHighlightBackground, file.SearchHighlightBackground)
	apply(&theme.HeaderForeground, file.HeaderForeground)
	apply(&theme.HelpText, file.HelpText)
	apply(&theme.ErrorText, file.ErrorText)

	return theme, nil
}

// TokenColor returns the theme color for a 1-based player number.
// Out-of-range values return NormalText.
func (theme Theme) TokenColor(player int) lipgloss.Color {
	switch player {
	case 1:
		return theme.Player1
	case 2:
		return theme.Player2
	default:
		return theme.NormalText
	}
}
