// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"fmt"
	"time"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/game"
)

// PlayerKind identifies what controlled a side.
type PlayerKind string

const (
	// PlayerHuman is an interactive player.
	PlayerHuman PlayerKind = "human"
	// PlayerEngine is the search engine; PlayerInfo.Difficulty names
	// its level.
	PlayerEngine PlayerKind = "engine"
)

// PlayerInfo describes one side of a recorded game.
type PlayerInfo struct {
	Kind PlayerKind `cbor:"kind"`

	// Difficulty is the engine difficulty name. Empty for humans.
	Difficulty string `cbor:"difficulty,omitempty"`
}

// Move is one recorded move. Thinking time is stored as integer
// milliseconds so the encoding stays deterministic across platforms.
type Move struct {
	Column    int   `cbor:"column"`
	ElapsedMS int64 `cbor:"elapsed_ms"`
}

// Result is the outcome of a recorded game.
type Result struct {
	// Winner is the 1-based winning player, or 0 for a draw.
	Winner int  `cbor:"winner"`
	Draw   bool `cbor:"draw"`
}

// Record is the full account of one finished game.
type Record struct {
	// StartedAt is when the game began, UTC.
	StartedAt time.Time `cbor:"started_at"`

	// Players holds both sides; Players[0] moved first.
	Players [2]PlayerInfo `cbor:"players"`

	// Moves is the complete game, in order.
	Moves []Move `cbor:"moves"`

	Result Result `cbor:"result"`
}

// NewRecord assembles a record from a finished match.
func NewRecord(startedAt time.Time, players [2]PlayerInfo, moves []game.TimedMove, outcome game.Outcome) *Record {
	record := &Record{
		// Truncate to seconds and pin to UTC: wall-clock precision
		// below a second is noise, and deterministic encoding must
		// not depend on the host time zone.
		StartedAt: startedAt.UTC().Truncate(time.Second),
		Players:   players,
	}

	record.Moves = make([]Move, len(moves))
	for i, move := range moves {
		record.Moves[i] = Move{
			Column:    move.Column,
			ElapsedMS: move.Elapsed.Milliseconds(),
		}
	}

	if outcome.Draw {
		record.Result = Result{Draw: true}
	} else {
		record.Result = Result{Winner: outcome.Winner.Player()}
	}
	return record
}

// Columns returns the bare move list for board replay.
func (r *Record) Columns() []int {
	columns := make([]int, len(r.Moves))
	for i, move := range r.Moves {
		columns[i] = move.Column
	}
	return columns
}

// FinalBoard replays the record's moves and returns the final
// position.
func (r *Record) FinalBoard() (board.Board, error) {
	return board.FromMoves(r.Columns())
}

// Validate checks the record's internal consistency: the moves must
// form a legal game and the stored result must match the final
// position.
func (r *Record) Validate() error {
	final, err := r.FinalBoard()
	if err != nil {
		return fmt.Errorf("replaying moves: %w", err)
	}

	winner, won := final.Winner()
	switch {
	case won && r.Result.Winner != winner.Player():
		return fmt.Errorf("result says winner %d, board says %d", r.Result.Winner, winner.Player())
	case won && r.Result.Draw:
		return fmt.Errorf("result says draw, board has a winner")
	case !won && r.Result.Winner != 0:
		return fmt.Errorf("result says winner %d, board is undecided", r.Result.Winner)
	case !won && r.Result.Draw && !final.IsFull():
		return fmt.Errorf("result says draw, board is not full")
	}
	return nil
}

// Summary returns a one-line description for list output:
// "x engine(master) vs o human: player 1 wins in 29 moves".
func (r *Record) Summary() string {
	describe := func(info PlayerInfo) string {
		if info.Kind == PlayerEngine {
			return fmt.Sprintf("engine(%s)", info.Difficulty)
		}
		return string(info.Kind)
	}

	result := "draw"
	if r.Result.Winner != 0 {
		result = fmt.Sprintf("player %d wins", r.Result.Winner)
	}

	return fmt.Sprintf("x %s vs o %s: %s in %d moves",
		describe(r.Players[0]), describe(r.Players[1]), result, len(r.Moves))
}
