// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package game

import (
	"context"
	"fmt"
	"time"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/clock"
)

// Player decides moves for one side. Implementations include the
// search engine, the TUI's human input bridge, and scripted players
// in tests.
type Player interface {
	// DecideMove returns the 0-based column to play. The board is the
	// position before the move; token is the side the player plays.
	// Implementations must respect ctx cancellation: a blocked input
	// loop or a deep search returns ctx.Err() promptly when the match
	// is torn down.
	DecideMove(ctx context.Context, b *board.Board, token board.Token) (int, error)
}

// PlayerFunc adapts a function to the Player interface.
type PlayerFunc func(ctx context.Context, b *board.Board, token board.Token) (int, error)

// DecideMove calls f.
func (f PlayerFunc) DecideMove(ctx context.Context, b *board.Board, token board.Token) (int, error) {
	return f(ctx, b, token)
}

// Outcome is the result of a finished match.
type Outcome struct {
	// Winner is the winning side. Zero when Draw is true.
	Winner board.Token

	// Draw is true when the board filled with no winner.
	Draw bool
}

func (o Outcome) String() string {
	if o.Draw {
		return "draw"
	}
	return fmt.Sprintf("player %d wins", o.Winner.Player())
}

// TimedMove is one move with the thinking time that preceded it.
// Replays store these so playback can reproduce the original pacing.
type TimedMove struct {
	Column  int
	Elapsed time.Duration
}

// Match runs two players to completion.
type Match struct {
	player1 Player
	player2 Player
	clk     clock.Clock

	moves []TimedMove
}

// New creates a match between two players. The clock timestamps each
// move for the replay record.
func New(player1, player2 Player, clk clock.Clock) *Match {
	return &Match{
		player1: player1,
		player2: player2,
		clk:     clk,
	}
}

// Play runs the match until a win, a draw, or an error. The returned
// board is the final position. On error (including ctx cancellation
// surfaced by a player) the board holds the position reached so far.
func (m *Match) Play(ctx context.Context) (board.Board, Outcome, error) {
	b := board.New()

	for {
		token := b.CurrentPlayer()
		player := m.player1
		if token == board.Player2 {
			player = m.player2
		}

		start := m.clk.Now()
		column, err := player.DecideMove(ctx, &b, token)
		if err != nil {
			return b, Outcome{}, fmt.Errorf("player %d: %w", token.Player(), err)
		}
		if !b.IsLegal(column) {
			return b, Outcome{}, fmt.Errorf("player %d: illegal move in column %d", token.Player(), column+1)
		}

		b.MakeMove(column)
		m.moves = append(m.moves, TimedMove{
			Column:  column,
			Elapsed: m.clk.Now().Sub(start),
		})

		if winner, ok := b.Winner(); ok {
			return b, Outcome{Winner: winner}, nil
		}
		if b.IsFull() {
			return b, Outcome{Draw: true}, nil
		}
	}
}

// Moves returns the timed moves played so far. The slice is owned by
// the match; callers copy if they outlive it.
func (m *Match) Moves() []TimedMove {
	return m.moves
}
