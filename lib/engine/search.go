// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"errors"
	"time"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/clock"
)

const (
	// scoreWin is the terminal score for a decided position. The
	// heuristic never reaches it: the board has 42 cells and 4
	// directions, so positional scores stay well below 42*4*40.
	scoreWin = 10_000

	// scoreInf bounds the alpha-beta window. Kept far from integer
	// limits so negation can never overflow.
	scoreInf = 1 << 30
)

// errAborted is returned up the search stack when the move-time
// deadline passes. The caller falls back to the deepest completed
// iteration.
var errAborted = errors.New("search deadline exceeded")

// abortCheckInterval is how many visited nodes pass between deadline
// and cancellation checks. Checking every node would put a clock read
// in the hot loop.
const abortCheckInterval = 2048

// tableEntry is a transposition table slot. value is relative to the
// side to move at the stored position; depth gates reuse so a shallow
// entry never masks a deeper search.
type tableEntry struct {
	depth int
	value int
	flag  boundFlag
}

type boundFlag uint8

const (
	flagExact boundFlag = iota
	flagLowerbound
	flagUpperbound
)

// searcher holds the state of one search call tree.
type searcher struct {
	table    map[board.BitBoard]tableEntry
	clk      clock.Clock
	deadline time.Time
	ctx      context.Context

	nodes int64
}

// checkAbort returns a non-nil error when the search should stop:
// ctx.Err() on cancellation, errAborted past the deadline. Called
// every abortCheckInterval nodes.
func (s *searcher) checkAbort() error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	if !s.deadline.IsZero() && s.clk.Now().After(s.deadline) {
		return errAborted
	}
	return nil
}

// searchRoot scores every legal move at the given depth. The root
// window stays full-width so all moves get exact scores: the engine
// needs them for random tie-breaking and analyze needs them for
// blunder reporting.
func (s *searcher) searchRoot(b board.Board, legal []int, depth int) ([]MoveEval, error) {
	evals := make([]MoveEval, 0, len(legal))

	for _, column := range legal {
		b.MakeMove(column)
		value, err := s.negamax(&b, depth, -scoreInf, scoreInf)
		b.UndoMove()
		if err != nil {
			return nil, err
		}

		evals = append(evals, MoveEval{Column: column, Score: -value})
	}

	return evals, nil
}

// negamax evaluates the position from the perspective of the side to
// move, searching to the given remaining depth with an (alpha, beta)
// window.
func (s *searcher) negamax(b *board.Board, depth, alpha, beta int) (int, error) {
	s.nodes++
	if s.nodes%abortCheckInterval == 0 {
		if err := s.checkAbort(); err != nil {
			return 0, err
		}
	}

	alphaOrig := alpha
	code := b.PositionCode()

	if entry, ok := s.table[code]; ok && entry.depth >= depth {
		switch entry.flag {
		case flagExact:
			return entry.value, nil
		case flagLowerbound:
			alpha = max(alpha, entry.value)
		case flagUpperbound:
			beta = min(beta, entry.value)
		}
		if alpha >= beta {
			return entry.value, nil
		}
	}

	var buf [board.Width]int
	legal := b.AppendLegalMoves(buf[:0])

	winner, hasWinner := b.Winner()
	isFull := len(legal) == 0
	if depth == 0 || hasWinner || isFull {
		return heuristicValue(b, b.CurrentPlayer(), winner, hasWinner, isFull), nil
	}

	value := -scoreInf
	for _, column := range legal {
		b.MakeMove(column)
		childValue, err := s.negamax(b, depth-1, -beta, -alpha)
		b.UndoMove()
		if err != nil {
			return 0, err
		}

		value = max(value, -childValue)
		alpha = max(alpha, value)
		if alpha >= beta {
			break
		}
	}

	flag := flagExact
	switch {
	case value <= alphaOrig:
		flag = flagUpperbound
	case value >= beta:
		flag = flagLowerbound
	}
	s.table[code] = tableEntry{depth: depth, value: value, flag: flag}

	return value, nil
}

// heuristicValue scores a position from side's perspective. Decided
// positions are ±scoreWin; a full board is a draw. Otherwise every
// stone contributes 10 points per stone already in each potential
// line of four through it, signed by ownership.
func heuristicValue(b *board.Board, side board.Token, winner board.Token, hasWinner, isFull bool) int {
	if hasWinner {
		if winner == side {
			return scoreWin
		}
		return -scoreWin
	}
	if isFull {
		return 0
	}

	directions := [4][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}}

	total := 0
	for column := 0; column < board.Width; column++ {
		for row := 0; row < board.Height; row++ {
			token, occupied := b.TokenAt(row, column)
			if !occupied {
				continue
			}

			for _, dir := range directions {
				forwardRun, forwardOpen := runLength(b, row, column, dir[0], dir[1], token)
				backwardRun, backwardOpen := runLength(b, row, column, -dir[0], -dir[1], token)

				currentLen := forwardRun + backwardRun + 1
				possibleLen := forwardOpen + backwardOpen + 1

				if possibleLen >= 4 {
					score := 10 * currentLen
					if side == token {
						total += score
					} else {
						total -= score
					}
				}
			}
		}
	}

	return total
}

// runLength walks from (row, column) in the given direction until the
// edge of the board or an opposing stone. run counts side's stones
// seen on the walk; open counts every traversable cell (own or
// empty), i.e. the room this line has to grow.
func runLength(b *board.Board, row, column, rowStep, columnStep int, side board.Token) (run, open int) {
	for {
		row += rowStep
		column += columnStep

		if row < 0 || row >= board.Height || column < 0 || column >= board.Width {
			return run, open
		}

		if token, occupied := b.TokenAt(row, column); occupied {
			if token != side {
				return run, open
			}
			run++
		}
		open++
	}
}
