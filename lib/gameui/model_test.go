// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package gameui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/clock"
	"github.com/fourline-foundation/fourline/lib/config"
	"github.com/fourline-foundation/fourline/lib/engine"
	"github.com/fourline-foundation/fourline/lib/replay"
	"github.com/fourline-foundation/fourline/lib/tui"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func humanModel(t *testing.T) Model {
	t.Helper()
	return New(Config{
		Theme:   tui.DefaultTheme,
		Players: config.HumanVsHuman,
		Clock:   clock.Fake(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)),
	})
}

// step feeds a message through Update and returns the concrete model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want gameui.Model", next)
	}
	return model, cmd
}

func TestCursorMovementClamps(t *testing.T) {
	m := humanModel(t)

	for i := 0; i < board.Width+2; i++ {
		m, _ = step(t, m, keyPress('l'))
	}
	if m.cursor != board.Width-1 {
		t.Fatalf("cursor should clamp at %d, got %d", board.Width-1, m.cursor)
	}

	for i := 0; i < board.Width+2; i++ {
		m, _ = step(t, m, keyPress('h'))
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp at 0, got %d", m.cursor)
	}
}

func TestDigitKeyDropsDirectly(t *testing.T) {
	m := humanModel(t)

	m, _ = step(t, m, keyPress('4'))
	if m.b.Ply() != 1 {
		t.Fatalf("expected 1 move after digit drop, got %d", m.b.Ply())
	}
	if _, occupied := m.b.TokenAt(0, 3); !occupied {
		t.Fatal("digit 4 should drop into column index 3")
	}
}

func TestEnterDropsAtCursor(t *testing.T) {
	m := humanModel(t)
	m, _ = step(t, m, keyPress('h')) // cursor to column 2
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if _, occupied := m.b.TokenAt(0, 2); !occupied {
		t.Fatal("enter should drop at the cursor column")
	}
}

func TestFullColumnSetsStatus(t *testing.T) {
	m := humanModel(t)
	for i := 0; i < board.Height; i++ {
		m, _ = step(t, m, keyPress('1'))
	}

	m, _ = step(t, m, keyPress('1'))
	if m.b.Ply() != board.Height {
		t.Fatalf("drop into a full column must not apply, ply %d", m.b.Ply())
	}
	if m.status == "" {
		t.Fatal("expected a status message for a full column")
	}
}

func TestUndoHumanVsHuman(t *testing.T) {
	m := humanModel(t)
	m, _ = step(t, m, keyPress('1'))
	m, _ = step(t, m, keyPress('2'))

	m, _ = step(t, m, keyPress('u'))
	if m.b.Ply() != 1 {
		t.Fatalf("undo should remove one ply, got %d", m.b.Ply())
	}
	if len(m.timed) != 1 {
		t.Fatalf("undo should drop the recorded move, got %d", len(m.timed))
	}
}

func TestUndoAgainstEngineRemovesRound(t *testing.T) {
	m := New(Config{
		Theme:      tui.DefaultTheme,
		Players:    config.HumanVsAI,
		Engine:     engine.New(engine.Config{Difficulty: engine.Easy}),
		Difficulty: engine.Easy,
	})

	m, cmd := step(t, m, keyPress('4'))
	if cmd == nil {
		t.Fatal("human move should schedule the engine")
	}
	// Run the batched command's engine part by replaying its message.
	msg := findEngineMove(t, cmd)
	m, _ = step(t, m, msg)
	if m.b.Ply() != 2 {
		t.Fatalf("expected 2 plies after engine reply, got %d", m.b.Ply())
	}

	m, _ = step(t, m, keyPress('u'))
	if m.b.Ply() != 0 {
		t.Fatalf("undo should remove the full round, got %d plies", m.b.Ply())
	}
}

func TestThinkingViewShowsSpinner(t *testing.T) {
	m := New(Config{
		Theme:      tui.DefaultTheme,
		Players:    config.HumanVsAI,
		Engine:     engine.New(engine.Config{Difficulty: engine.Easy}),
		Difficulty: engine.Easy,
	})

	m, _ = step(t, m, keyPress('4'))
	if m.phase != phaseThinking {
		t.Fatalf("expected thinking phase, got %d", m.phase)
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "thinking") {
		t.Fatalf("thinking view missing status: %q", view)
	}
	if !strings.Contains(view, ansi.Strip(m.spin.View())) {
		t.Fatal("thinking view missing the spinner frame")
	}
}

// findEngineMove executes a command tree until an engineMovedMsg
// appears.
func findEngineMove(t *testing.T, cmd tea.Cmd) engineMovedMsg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case engineMovedMsg:
			return msg
		case tea.BatchMsg:
			queue = append(queue, msg...)
		}
	}
	t.Fatal("no engine move in command tree")
	return engineMovedMsg{}
}

func TestWinEndsGame(t *testing.T) {
	m := humanModel(t)
	for _, r := range "1212121" {
		m, _ = step(t, m, keyPress(r))
	}

	if m.phase != phaseGameOver {
		t.Fatalf("expected game over, phase %d", m.phase)
	}
	if m.outcome.Winner != board.Player1 {
		t.Fatalf("expected player 1 win, got %+v", m.outcome)
	}

	// Further drops must be ignored.
	m, _ = step(t, m, keyPress('3'))
	if m.b.Ply() != 7 {
		t.Fatalf("moves after game over must not apply, ply %d", m.b.Ply())
	}
}

func TestNewGameResets(t *testing.T) {
	m := humanModel(t)
	for _, r := range "1212121" {
		m, _ = step(t, m, keyPress(r))
	}

	m, _ = step(t, m, keyPress('n'))
	if m.b.Ply() != 0 || m.phase != phasePlaying {
		t.Fatalf("new game should reset the board, ply %d phase %d", m.b.Ply(), m.phase)
	}
}

func TestAutoSaveOnGameOver(t *testing.T) {
	store, err := replay.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	m := New(Config{
		Theme:       tui.DefaultTheme,
		Players:     config.HumanVsHuman,
		Clock:       clock.Fake(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)),
		Store:       store,
		SaveReplays: true,
	})
	for _, r := range "1212121" {
		m, _ = step(t, m, keyPress(r))
	}

	if m.savedRef == "" {
		t.Fatal("expected the finished game to be saved automatically")
	}
	entries, err := store.List()
	if err != nil {
		t.Fatalf("listing store: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 saved replay, got %d", len(entries))
	}
	if entries[0].Record.Result.Winner != 1 {
		t.Fatalf("saved record has wrong result: %+v", entries[0].Record.Result)
	}
}

func TestManualSaveOnlyOnce(t *testing.T) {
	store, err := replay.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	m := New(Config{
		Theme:   tui.DefaultTheme,
		Players: config.HumanVsHuman,
		Clock:   clock.Fake(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)),
		Store:   store,
	})
	for _, r := range "1212121" {
		m, _ = step(t, m, keyPress(r))
	}
	if m.savedRef != "" {
		t.Fatal("save should not happen automatically without SaveReplays")
	}

	m, _ = step(t, m, keyPress('s'))
	first := m.savedRef
	if first == "" {
		t.Fatal("expected manual save to succeed")
	}

	m, _ = step(t, m, keyPress('s'))
	if m.savedRef != first {
		t.Fatal("second save should be a no-op")
	}
}

func TestRecordedThinkingTime(t *testing.T) {
	clk := clock.Fake(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	m := New(Config{
		Theme:   tui.DefaultTheme,
		Players: config.HumanVsHuman,
		Clock:   clk,
	})

	clk.Advance(3 * time.Second)
	m, _ = step(t, m, keyPress('1'))

	if len(m.timed) != 1 || m.timed[0].Elapsed != 3*time.Second {
		t.Fatalf("expected 3s thinking time, got %+v", m.timed)
	}
}

func TestHelpToggle(t *testing.T) {
	m := humanModel(t)

	m, _ = step(t, m, keyPress('?'))
	if m.phase != phaseHelp {
		t.Fatalf("expected help phase, got %d", m.phase)
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Fourline") {
		t.Fatalf("help view missing rules text: %q", view)
	}

	m, _ = step(t, m, keyPress('?'))
	if m.phase != phasePlaying {
		t.Fatalf("expected to return to play, got %d", m.phase)
	}
}

func TestViewShowsTurnAndBoard(t *testing.T) {
	m := humanModel(t)
	m, _ = step(t, m, keyPress('1'))

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "player 2 (o) to move") {
		t.Fatalf("view missing turn indicator: %q", view)
	}
	if !strings.Contains(view, "1 2 3 4 5 6 7") {
		t.Fatalf("view missing column labels: %q", view)
	}
}

func TestQuitKey(t *testing.T) {
	m := humanModel(t)
	_, cmd := step(t, m, keyPress('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.Quit")
	}
}
