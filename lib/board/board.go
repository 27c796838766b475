// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package board

import (
	"fmt"
	"strings"
)

// BitBoard is one player's stones as a bitmask. Each column occupies
// Height+1 bits so that a full column leaves a sentinel zero bit above
// it; bit (column*(Height+1) + row) is the cell at that row and
// column, rows counted from the bottom.
//
//	.  .  .  .  .  .  .   sentinel row
//	5 12 19 26 33 40 47
//	4 11 18 25 32 39 46
//	3 10 17 24 31 38 45
//	2  9 16 23 30 37 44
//	1  8 15 22 29 36 43
//	0  7 14 21 28 35 42   bottom
type BitBoard uint64

// Board dimensions. Width*(Height+1) must fit in a BitBoard:
// 7*(6+1) = 49 <= 64.
const (
	Width  = 7
	Height = 6
	Size   = Width * Height
)

const (
	// bottom has one bit set in the bottom cell of every column.
	bottom BitBoard = ((1 << ((Height + 1) * Width)) - 1) / ((1 << (Height + 1)) - 1)

	// top has one bit set in the sentinel cell above every column. A
	// stone placed on a top bit would overflow its column, so any
	// bitboard intersecting top is illegal.
	top BitBoard = bottom << Height
)

// Token identifies one of the two players. The numeric values are the
// 1-based player numbers shown in CLI output and stored in replays.
type Token uint8

const (
	// Player1 moves first and renders as "x".
	Player1 Token = 1
	// Player2 moves second and renders as "o".
	Player2 Token = 2
)

// Rune returns the single-character board glyph for the token.
func (t Token) Rune() string {
	if t == Player1 {
		return "x"
	}
	return "o"
}

// Player returns the 1-based player number.
func (t Token) Player() int { return int(t) }

// Opponent returns the other player's token.
func (t Token) Opponent() Token {
	if t == Player1 {
		return Player2
	}
	return Player1
}

func (t Token) String() string { return t.Rune() }

// Board is a Connect Four position. It is a value type: copying a
// Board yields an independent position, which the search engine relies
// on. The zero value is not usable; call New.
type Board struct {
	// moves is the column of each move played, indexed by ply.
	moves [Size]int8

	// heights[c] is the bit index of the next free cell in column c.
	heights [Width]uint8

	// players holds each player's stones. players[0] is Player1.
	players [2]BitBoard

	ply int
}

// New returns an empty board with Player1 to move.
func New() Board {
	var b Board
	for c := 0; c < Width; c++ {
		b.heights[c] = uint8((Height + 1) * c)
	}
	return b
}

// CurrentPlayer returns the token of the player to move.
func (b *Board) CurrentPlayer() Token {
	if b.ply&1 == 0 {
		return Player1
	}
	return Player2
}

// Ply returns the number of moves played so far.
func (b *Board) Ply() int { return b.ply }

// Moves returns the columns played so far, in order.
func (b *Board) Moves() []int {
	moves := make([]int, b.ply)
	for i := 0; i < b.ply; i++ {
		moves[i] = int(b.moves[i])
	}
	return moves
}

// TokenAt returns the token in the given row and column. ok is false
// for an empty cell. Row 0 is the bottom row.
func (b *Board) TokenAt(row, column int) (token Token, ok bool) {
	mask := BitBoard(1) << (row + column*(Height+1))
	switch {
	case b.players[0]&mask != 0:
		return Player1, true
	case b.players[1]&mask != 0:
		return Player2, true
	default:
		return 0, false
	}
}

// HasSpace reports whether the given column can accept another stone.
// Panics if column is out of range.
func (b *Board) HasSpace(column int) bool {
	if column < 0 || column >= Width {
		panic(fmt.Sprintf("board: column out of range [0, %d): %d", Width, column))
	}
	return isLegalBoard(b.players[b.ply&1] | (1 << b.heights[column]))
}

// IsLegal reports whether a move in the given column is legal. Unlike
// HasSpace it tolerates out-of-range columns.
func (b *Board) IsLegal(column int) bool {
	return column >= 0 && column < Width && b.HasSpace(column)
}

// MakeMove drops the current player's stone in the given column and
// advances the turn. Panics if the column is full; callers validate
// with IsLegal first.
func (b *Board) MakeMove(column int) {
	if !b.HasSpace(column) {
		panic(fmt.Sprintf("board: column is full: %d", column))
	}

	b.players[b.ply&1] ^= 1 << b.heights[column]
	b.heights[column]++

	b.moves[b.ply] = int8(column)
	b.ply++
}

// UndoMove reverts the most recent move. MakeMove and UndoMove are
// exact inverses. Panics if no moves have been played.
func (b *Board) UndoMove() {
	if b.ply == 0 {
		panic("board: no move to undo")
	}

	b.ply--
	column := b.moves[b.ply]

	b.heights[column]--
	b.players[b.ply&1] ^= 1 << b.heights[column]
}

// Winner returns the winning player's token. ok is false while the
// game is ongoing and for a draw.
func (b *Board) Winner() (token Token, ok bool) {
	switch {
	case isWin(b.players[0]):
		return Player1, true
	case isWin(b.players[1]):
		return Player2, true
	default:
		return 0, false
	}
}

// IsFull reports whether no legal moves remain. A full board with no
// winner is a draw.
func (b *Board) IsFull() bool {
	for c := 0; c < Width; c++ {
		if isLegalBoard(b.players[b.ply&1] | (1 << b.heights[c])) {
			return false
		}
	}
	return true
}

// AppendLegalMoves appends the legal columns in ascending order to dst
// and returns the extended slice. Passing a stack-allocated buffer
// keeps the search loop allocation-free:
//
//	var buf [board.Width]int
//	for _, c := range b.AppendLegalMoves(buf[:0]) { ... }
func (b *Board) AppendLegalMoves(dst []int) []int {
	own := b.players[b.ply&1]
	for c := 0; c < Width; c++ {
		if isLegalBoard(own | (1 << b.heights[c])) {
			dst = append(dst, c)
		}
	}
	return dst
}

// LegalMoves returns the legal columns in ascending order.
func (b *Board) LegalMoves() []int {
	return b.AppendLegalMoves(make([]int, 0, Width))
}

// PositionCode returns a key that uniquely identifies the position
// together with the side to move. Adding the current player's stones
// to the combined occupancy plus the bottom row produces a distinct
// value for every reachable position, which makes it suitable as a
// transposition table key without hashing.
func (b *Board) PositionCode() BitBoard {
	return b.players[b.ply&1] + b.players[0] + b.players[1] + bottom
}

// isWin reports whether the given bitboard contains four stones in a
// row in any direction. Each direction check ANDs the board with
// itself shifted by the direction's step, then ANDs pairs of pairs:
// a surviving bit means four aligned stones.
func isWin(b BitBoard) bool {
	h := b & (b >> (Height + 1)) // Horizontal
	v := b & (b >> 1)            // Vertical
	d1 := b & (b >> Height)      // Diagonal \
	d2 := b & (b >> (Height + 2)) // Diagonal /

	h &= h >> (2 * (Height + 1))
	v &= v >> 2
	d1 &= d1 >> (2 * Height)
	d2 &= d2 >> (2 * (Height + 2))

	return h|v|d1|d2 != 0
}

// isLegalBoard reports whether the bitboard stays below the sentinel
// row, i.e. no column has overflowed.
func isLegalBoard(b BitBoard) bool {
	return b&top == 0
}

// FromMoves replays a move list onto an empty board, validating each
// move. Columns are 0-based. Used when loading replays and analyzing
// positions given on the command line.
func FromMoves(moves []int) (Board, error) {
	b := New()
	for i, column := range moves {
		if !b.IsLegal(column) {
			return Board{}, fmt.Errorf("move %d: illegal column %d", i+1, column+1)
		}
		if _, won := b.Winner(); won {
			return Board{}, fmt.Errorf("move %d: game already decided", i+1)
		}
		b.MakeMove(column)
	}
	return b, nil
}

// ParseMoves parses a compact move string of 1-based column digits,
// e.g. "44516". Spaces are ignored.
func ParseMoves(s string) ([]int, error) {
	var moves []int
	for _, r := range s {
		if r == ' ' {
			continue
		}
		if r < '1' || r > '0'+Width {
			return nil, fmt.Errorf("invalid column %q: want 1-%d", r, Width)
		}
		moves = append(moves, int(r-'1'))
	}
	return moves, nil
}

// String renders the board as a plain-text grid with 1-based column
// labels, top row first. Used by headless output and test failures;
// the TUI renders boards itself.
func (b *Board) String() string {
	var sb strings.Builder
	for row := Height - 1; row >= 0; row-- {
		for column := 0; column < Width; column++ {
			if column > 0 {
				sb.WriteString(" ")
			}
			if token, ok := b.TokenAt(row, column); ok {
				sb.WriteString(token.Rune())
			} else {
				sb.WriteString(".")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("-", 2*Width-1))
	sb.WriteString("\n")
	for column := 1; column <= Width; column++ {
		if column > 1 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d", column)
	}
	return sb.String()
}
