// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/clock"
)

// Difficulty selects the engine's maximum search depth.
type Difficulty int

const (
	Easy   Difficulty = 3
	Medium Difficulty = 5
	Hard   Difficulty = 7
	Master Difficulty = 9
	Unfair Difficulty = 11
)

// Depth returns the maximum search depth for the difficulty.
func (d Difficulty) Depth() int { return int(d) }

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Master:
		return "master"
	case Unfair:
		return "unfair"
	default:
		return fmt.Sprintf("depth-%d", int(d))
	}
}

// ParseDifficulty parses a difficulty name as accepted by the
// --difficulty flag.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "master":
		return Master, nil
	case "unfair":
		return Unfair, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q: want easy, medium, hard, master, or unfair", s)
	}
}

// Book is consulted before searching. The opening book package
// implements it; the engine only needs the lookup.
type Book interface {
	// Lookup returns the book column for the position, if present.
	Lookup(b *board.Board) (column int, ok bool)
}

// Config configures an Engine. The zero value is not usable;
// Difficulty is required.
type Config struct {
	// Difficulty bounds the search depth.
	Difficulty Difficulty

	// MoveTime, when positive, is the per-move search budget. The
	// engine returns the best move from the deepest iteration that
	// completed inside the budget.
	MoveTime time.Duration

	// Clock drives the move deadline. Defaults to clock.Real().
	Clock clock.Clock

	// Book, when non-nil, is consulted before searching.
	Book Book

	// Rand breaks ties between equally scored moves. Defaults to a
	// PCG source seeded from the global generator; tests inject a
	// fixed seed for reproducibility.
	Rand *rand.Rand
}

// Engine picks moves by negamax search. It implements game.Player.
// The transposition table persists across moves within a game, so an
// Engine must not be shared between concurrent matches.
type Engine struct {
	depth    int
	moveTime time.Duration
	clk      clock.Clock
	book     Book
	rng      *rand.Rand

	table map[board.BitBoard]tableEntry

	// nodes counts positions visited by the most recent search.
	nodes int64
}

// New creates an engine from the config.
func New(cfg Config) *Engine {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	depth := cfg.Difficulty.Depth()
	return &Engine{
		depth:    depth,
		moveTime: cfg.MoveTime,
		clk:      clk,
		book:     cfg.Book,
		rng:      rng,
		table:    make(map[board.BitBoard]tableEntry, depth*board.Width),
	}
}

// Nodes returns the number of positions visited by the most recent
// search. Used for analyze output and book build logging.
func (e *Engine) Nodes() int64 { return e.nodes }

// MoveEval is one legal move with its search score from the mover's
// perspective.
type MoveEval struct {
	Column int
	Score  int
}

// DecideMove returns the engine's move for the position. The book, if
// configured, short-circuits the search. With a MoveTime budget the
// search deepens iteratively and keeps the deepest completed result;
// without one it searches straight to the difficulty depth. Ties are
// broken at random.
func (e *Engine) DecideMove(ctx context.Context, b *board.Board, token board.Token) (int, error) {
	if e.book != nil {
		if column, ok := e.book.Lookup(b); ok && b.IsLegal(column) {
			return column, nil
		}
	}

	evals, err := e.search(ctx, b)
	if err != nil {
		return 0, err
	}

	best := evals[0].Score
	count := 0
	for _, eval := range evals {
		if eval.Score == best {
			count++
		}
	}
	pick := e.rng.IntN(count)
	for _, eval := range evals {
		if eval.Score != best {
			continue
		}
		if pick == 0 {
			return eval.Column, nil
		}
		pick--
	}
	panic("engine: tie-break selection out of range")
}

// EvaluateMoves scores every legal move at the configured depth,
// best first. Used by fourline-analyze.
func (e *Engine) EvaluateMoves(ctx context.Context, b *board.Board) ([]MoveEval, error) {
	return e.search(ctx, b)
}

// search runs the iterative deepening loop and returns the move
// evaluations from the deepest completed iteration, sorted best
// first. Returns an error when no legal moves exist or the context is
// cancelled before any iteration completes.
func (e *Engine) search(ctx context.Context, b *board.Board) ([]MoveEval, error) {
	var buf [board.Width]int
	legal := b.AppendLegalMoves(buf[:0])
	if len(legal) == 0 {
		return nil, errors.New("no legal moves")
	}

	var deadline time.Time
	if e.moveTime > 0 {
		deadline = e.clk.Now().Add(e.moveTime)
	}

	s := &searcher{
		table:    e.table,
		clk:      e.clk,
		deadline: deadline,
		ctx:      ctx,
	}

	// With no time budget a single full-depth pass is cheaper than
	// deepening, and nothing can interrupt it besides ctx.
	startDepth := e.depth
	if e.moveTime > 0 {
		startDepth = 1
	}

	var completed []MoveEval
	for depth := startDepth; depth <= e.depth; depth++ {
		result, err := s.searchRoot(*b, legal, depth)
		if err == nil {
			completed = result
			continue
		}
		if !errors.Is(err, errAborted) {
			return nil, err
		}

		// The budget expired. If not even depth 1 finished, run one
		// depth-1 pass without a deadline; it is near-instant and
		// guarantees a move.
		if completed == nil {
			s.deadline = time.Time{}
			completed, err = s.searchRoot(*b, legal, 1)
			if err != nil {
				return nil, err
			}
		}
		break
	}

	e.nodes = s.nodes
	sortEvals(completed)
	return completed, nil
}

// sortEvals orders evaluations best first, stable on column order for
// equal scores.
func sortEvals(evals []MoveEval) {
	for i := 1; i < len(evals); i++ {
		for j := i; j > 0 && evals[j].Score > evals[j-1].Score; j-- {
			evals[j], evals[j-1] = evals[j-1], evals[j]
		}
	}
}
