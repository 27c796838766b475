// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package book

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/engine"
)

func buildSmall(t *testing.T) *Book {
	t.Helper()
	bk, err := Build(context.Background(), BuildConfig{
		MaxPly:     2,
		Difficulty: engine.Easy,
	})
	if err != nil {
		t.Fatalf("building book: %v", err)
	}
	return bk
}

func TestBuildCoversOpeningPositions(t *testing.T) {
	bk := buildSmall(t)

	// Ply 0 is one position, ply 1 is seven distinct replies:
	// eight entries for MaxPly 2.
	if bk.Len() != 8 {
		t.Fatalf("expected 8 entries for max ply 2, got %d", bk.Len())
	}

	b := board.New()
	column, ok := bk.Lookup(&b)
	if !ok {
		t.Fatal("empty position missing from book")
	}
	if !b.IsLegal(column) {
		t.Fatalf("book recommends illegal column %d", column)
	}

	b.MakeMove(3)
	if _, ok := bk.Lookup(&b); !ok {
		t.Fatal("ply-1 position missing from book")
	}

	b.MakeMove(3)
	if _, ok := bk.Lookup(&b); ok {
		t.Fatal("ply-2 position should be past the book's coverage")
	}
}

func TestBuildIsReproducible(t *testing.T) {
	first, err := buildSmall(t).encode()
	if err != nil {
		t.Fatalf("encoding first build: %v", err)
	}
	second, err := buildSmall(t).encode()
	if err != nil {
		t.Fatalf("encoding second build: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("two builds with identical config encoded differently")
	}
}

func TestBuildReportsProgress(t *testing.T) {
	var calls int
	_, err := Build(context.Background(), BuildConfig{
		MaxPly:     1,
		Difficulty: engine.Easy,
		Progress:   func(entries int) { calls = entries },
	})
	if err != nil {
		t.Fatalf("building book: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected progress to reach 1 entry, got %d", calls)
	}
}

func TestBuildRejectsBadMaxPly(t *testing.T) {
	if _, err := Build(context.Background(), BuildConfig{Difficulty: engine.Easy}); err == nil {
		t.Fatal("expected error for max ply 0")
	}
}

func TestBuildHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, BuildConfig{MaxPly: 4, Difficulty: engine.Unfair})
	if err == nil {
		t.Fatal("expected canceled build to fail")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	bk := buildSmall(t)
	path := filepath.Join(t.TempDir(), "opening.flb")

	if err := bk.Save(path); err != nil {
		t.Fatalf("saving book: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("loading book: %v", err)
	}

	if loaded.Len() != bk.Len() {
		t.Fatalf("loaded %d entries, saved %d", loaded.Len(), bk.Len())
	}
	if loaded.MaxPly() != bk.MaxPly() {
		t.Errorf("loaded max ply %d, saved %d", loaded.MaxPly(), bk.MaxPly())
	}
	if loaded.Difficulty() != bk.Difficulty() {
		t.Errorf("loaded difficulty %s, saved %s", loaded.Difficulty(), bk.Difficulty())
	}

	b := board.New()
	want, _ := bk.Lookup(&b)
	got, ok := loaded.Lookup(&b)
	if !ok || got != want {
		t.Fatalf("loaded book recommends %d (present=%v), saved book %d", got, ok, want)
	}
}

func TestDecodeRejectsCorruption(t *testing.T) {
	data, err := buildSmall(t).encode()
	if err != nil {
		t.Fatalf("encoding book: %v", err)
	}

	t.Run("truncated", func(t *testing.T) {
		if _, err := decode(data[:headerSize/2]); err == nil {
			t.Fatal("expected error for truncated file")
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		corrupt[0] = 'X'
		if _, err := decode(corrupt); err == nil {
			t.Fatal("expected error for bad magic")
		}
	})

	t.Run("flipped digest byte", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		corrupt[9] ^= 0xff
		if _, err := decode(corrupt); err == nil {
			t.Fatal("expected error for mismatched digest")
		}
	})
}

func TestEngineUsesBook(t *testing.T) {
	bk := buildSmall(t)
	eng := engine.New(engine.Config{Difficulty: engine.Hard, Book: bk})

	b := board.New()
	column, err := eng.DecideMove(context.Background(), &b, b.CurrentPlayer())
	if err != nil {
		t.Fatalf("deciding move: %v", err)
	}

	want, _ := bk.Lookup(&b)
	if column != want {
		t.Fatalf("engine played %d, book says %d", column, want)
	}
	if eng.Nodes() != 0 {
		t.Fatalf("expected no search for a booked position, searched %d nodes", eng.Nodes())
	}
}
