// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package gameui

import "github.com/fourline-foundation/fourline/lib/tui"

// rulesMarkdown is the built-in help text, rendered through the
// terminal markdown renderer on demand.
const rulesMarkdown = `# Fourline

Two players take turns dropping tokens into a 7-column, 6-row grid.
A token falls to the lowest free cell of its column. The first player
to line up four of their tokens horizontally, vertically, or
diagonally wins. If the grid fills with no line of four, the game is
a draw.

## Keys

- ` + "`h`/`l`" + ` or arrows: move the drop cursor
- ` + "`1`-`7`" + `: drop straight into a column
- ` + "`enter`" + ` or space: drop at the cursor
- ` + "`u`" + `: undo your last move
- ` + "`n`" + `: new game (after a game ends)
- ` + "`s`" + `: save the finished game as a replay
- ` + "`?`" + `: toggle this help
- ` + "`q`" + `: quit

## Difficulty

The engine searches deeper at higher levels: easy, medium, hard,
master, unfair. Set it with:

` + "```" + `
fourline --difficulty hard
` + "```" + `
`

// renderHelp renders the rules at the given width.
func renderHelp(theme tui.Theme, width int) string {
	return tui.RenderMarkdown(rulesMarkdown, theme, width)
}
