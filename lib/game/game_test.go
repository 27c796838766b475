// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/clock"
	"github.com/fourline-foundation/fourline/lib/testutil"
)

// scripted returns a Player that plays a fixed move sequence.
func scripted(columns ...int) Player {
	index := 0
	return PlayerFunc(func(ctx context.Context, b *board.Board, token board.Token) (int, error) {
		if index >= len(columns) {
			return 0, errors.New("script exhausted")
		}
		column := columns[index]
		index++
		return column, nil
	})
}

func TestPlayToWin(t *testing.T) {
	// Player1 stacks column 0 to a vertical win; Player2 wastes moves
	// in column 1.
	match := New(scripted(0, 0, 0, 0), scripted(1, 1, 1), clock.Fake(time.Unix(0, 0)))

	final, outcome, err := match.Play(context.Background())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if outcome.Draw {
		t.Fatal("outcome is a draw, want Player1 win")
	}
	if outcome.Winner != board.Player1 {
		t.Errorf("Winner = %v, want Player1", outcome.Winner)
	}
	if final.Ply() != 7 {
		t.Errorf("final Ply() = %d, want 7", final.Ply())
	}
	if len(match.Moves()) != 7 {
		t.Errorf("len(Moves()) = %d, want 7", len(match.Moves()))
	}
}

func TestPlayRecordsThinkingTime(t *testing.T) {
	fake := clock.Fake(time.Unix(0, 0))

	// Player1 takes two fake seconds per move; Player2 is instant.
	slow := PlayerFunc(func(ctx context.Context, b *board.Board, token board.Token) (int, error) {
		fake.Advance(2 * time.Second)
		return 0, nil
	})
	match := New(slow, scripted(1, 1, 1), fake)

	if _, _, err := match.Play(context.Background()); err != nil {
		t.Fatalf("Play: %v", err)
	}

	moves := match.Moves()
	if moves[0].Elapsed != 2*time.Second {
		t.Errorf("move 1 Elapsed = %v, want 2s", moves[0].Elapsed)
	}
	if moves[1].Elapsed != 0 {
		t.Errorf("move 2 Elapsed = %v, want 0", moves[1].Elapsed)
	}
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	match := New(scripted(9), scripted(0), clock.Fake(time.Unix(0, 0)))

	_, _, err := match.Play(context.Background())
	if err == nil {
		t.Fatal("Play accepted an out-of-range column")
	}
}

func TestPlaySurfacesPlayerError(t *testing.T) {
	boom := errors.New("input closed")
	failing := PlayerFunc(func(ctx context.Context, b *board.Board, token board.Token) (int, error) {
		return 0, boom
	})
	match := New(failing, scripted(0), clock.Fake(time.Unix(0, 0)))

	_, _, err := match.Play(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("Play error = %v, want wrapped %v", err, boom)
	}
}

func TestPlayStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	blocking := PlayerFunc(func(ctx context.Context, b *board.Board, token board.Token) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	match := New(blocking, scripted(0), clock.Fake(time.Unix(0, 0)))

	done := make(chan error, 1)
	go func() {
		_, _, err := match.Play(ctx)
		done <- err
	}()

	cancel()
	err := testutil.RequireReceive(t, done, 5*time.Second, "waiting for Play to return")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Play error = %v, want context.Canceled", err)
	}
}

func TestPlayToDraw(t *testing.T) {
	// A known drawn game. Columns 0-5 pair up: the first player fills
	// the bottom half of one column of the pair while the second
	// fills the other, then they swap for the top halves. Column 6
	// alternates. The final grid has vertical runs of three, rows
	// that alternate every cell, and diagonals that flip color every
	// step, so no line of four ever forms.
	moves := []int{
		0, 1, 0, 1, 0, 1, // c0 bottom = x x x, c1 bottom = o o o
		1, 0, 1, 0, 1, 0, // c1 top = x x x, c0 top = o o o
		2, 3, 2, 3, 2, 3,
		3, 2, 3, 2, 3, 2,
		4, 5, 4, 5, 4, 5,
		5, 4, 5, 4, 5, 4,
		6, 6, 6, 6, 6, 6,
	}

	var p1, p2 []int
	for i, c := range moves {
		if i%2 == 0 {
			p1 = append(p1, c)
		} else {
			p2 = append(p2, c)
		}
	}
	match := New(scripted(p1...), scripted(p2...), clock.Fake(time.Unix(0, 0)))

	final, outcome, err := match.Play(context.Background())
	if err != nil {
		t.Fatalf("Play: %v\n%v", err, &final)
	}
	if !outcome.Draw {
		t.Errorf("outcome = %v, want draw\n%v", outcome, &final)
	}
	if !final.IsFull() {
		t.Error("final board is not full")
	}
}
