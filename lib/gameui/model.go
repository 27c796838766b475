// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package gameui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/clock"
	"github.com/fourline-foundation/fourline/lib/config"
	"github.com/fourline-foundation/fourline/lib/engine"
	"github.com/fourline-foundation/fourline/lib/game"
	"github.com/fourline-foundation/fourline/lib/replay"
	"github.com/fourline-foundation/fourline/lib/tui"
)

// phase is the play screen's top-level state.
type phase int

const (
	// phasePlaying waits for the human's move.
	phasePlaying phase = iota
	// phaseThinking waits for an asynchronous engine move.
	phaseThinking
	// phaseGameOver shows the result and the new/save/quit menu.
	phaseGameOver
	// phaseHelp shows the rules screen.
	phaseHelp
)

// engineMovedMsg delivers an engine move back into the update loop.
type engineMovedMsg struct {
	column int
	err    error
}

// Config assembles a play screen.
type Config struct {
	Theme tui.Theme

	// Keys defaults to DefaultKeyMap when zero.
	Keys KeyMap

	// Players selects who controls each side.
	Players config.Players

	// Engine is required unless Players is human-vs-human.
	Engine *engine.Engine

	// Difficulty is recorded in saved replays.
	Difficulty engine.Difficulty

	// Clock defaults to the real clock. Timestamps and per-move
	// thinking times come from it.
	Clock clock.Clock

	// Store, when set, receives finished games. SaveReplays enables
	// saving automatically at game over; the save key works either
	// way.
	Store       *replay.Store
	SaveReplays bool
}

// Model is the bubbletea model for live play.
type Model struct {
	theme      tui.Theme
	keys       KeyMap
	players    config.Players
	eng        *engine.Engine
	difficulty engine.Difficulty
	clk        clock.Clock
	store      *replay.Store
	autoSave   bool

	spin spinner.Model

	b      board.Board
	cursor int

	phase       phase
	returnPhase phase

	startedAt time.Time
	moveStart time.Time
	timed     []game.TimedMove
	outcome   game.Outcome

	savedRef string
	status   string

	width int
}

// New builds the play screen model.
func New(cfg Config) Model {
	keys := cfg.Keys
	if len(keys.Quit.Keys()) == 0 {
		keys = DefaultKeyMap
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real()
	}

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot

	m := Model{
		theme:      cfg.Theme,
		keys:       keys,
		players:    cfg.Players,
		eng:        cfg.Engine,
		difficulty: cfg.Difficulty,
		clk:        clk,
		store:      cfg.Store,
		autoSave:   cfg.SaveReplays,
		spin:       spin,
		cursor:     board.Width / 2,
		width:      80,
	}
	return m.resetGame()
}

// resetGame starts a fresh board, keeping the session configuration.
func (m Model) resetGame() Model {
	m.b = board.New()
	m.timed = nil
	m.outcome = game.Outcome{}
	m.savedRef = ""
	m.status = ""
	m.startedAt = m.clk.Now()
	m.moveStart = m.startedAt
	m.phase = phasePlaying
	if m.engineTurn() {
		m.phase = phaseThinking
	}
	return m
}

// engineTurn reports whether the side to move is engine-controlled.
func (m Model) engineTurn() bool {
	switch m.players {
	case config.AIVsAI:
		return true
	case config.HumanVsAI:
		return m.b.CurrentPlayer() == board.Player2
	default:
		return false
	}
}

// engineCmd runs the engine on a snapshot of the current position.
func (m Model) engineCmd() tea.Cmd {
	b := m.b
	eng := m.eng
	return func() tea.Msg {
		column, err := eng.DecideMove(context.Background(), &b, b.CurrentPlayer())
		return engineMovedMsg{column: column, err: err}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.phase == phaseThinking {
		return tea.Batch(m.spin.Tick, m.engineCmd())
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseThinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case engineMovedMsg:
		if m.phase != phaseThinking {
			return m, nil
		}
		if msg.err != nil {
			m.status = fmt.Sprintf("engine error: %v", msg.err)
			m.phase = phasePlaying
			return m, nil
		}
		return m.playMove(msg.column)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseHelp:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Help) {
			m.phase = m.returnPhase
		}
		return m, nil

	case phaseThinking:
		if key.Matches(msg, m.keys.Help) {
			m.returnPhase = m.phase
			m.phase = phaseHelp
		}
		return m, nil

	case phaseGameOver:
		switch {
		case key.Matches(msg, m.keys.Help):
			m.returnPhase = m.phase
			m.phase = phaseHelp
			return m, nil
		case key.Matches(msg, m.keys.NewGame):
			m = m.resetGame()
			return m, m.Init()
		case key.Matches(msg, m.keys.SaveReplay):
			m = m.saveReplay()
			return m, nil
		}
		return m, nil

	default: // phasePlaying
		switch {
		case key.Matches(msg, m.keys.Help):
			m.returnPhase = m.phase
			m.phase = phaseHelp
			return m, nil
		case key.Matches(msg, m.keys.Left):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Right):
			if m.cursor < board.Width-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Column):
			column := int(msg.String()[0] - '1')
			return m.dropInto(column)
		case key.Matches(msg, m.keys.Drop):
			return m.dropInto(m.cursor)
		case key.Matches(msg, m.keys.Undo):
			m = m.undo()
			return m, nil
		}
		return m, nil
	}
}

// dropInto plays a human move in the given column.
func (m Model) dropInto(column int) (tea.Model, tea.Cmd) {
	if m.engineTurn() {
		return m, nil
	}
	if !m.b.IsLegal(column) {
		m.status = fmt.Sprintf("column %d is full", column+1)
		return m, nil
	}
	return m.playMove(column)
}

// playMove records and applies a move from either side, then starts
// the engine when it is next to act.
func (m Model) playMove(column int) (tea.Model, tea.Cmd) {
	now := m.clk.Now()
	m.timed = append(m.timed, game.TimedMove{
		Column:  column,
		Elapsed: now.Sub(m.moveStart),
	})
	m.moveStart = now
	m.status = ""
	m.b.MakeMove(column)

	if winner, won := m.b.Winner(); won {
		m.outcome = game.Outcome{Winner: winner}
		return m.finishGame()
	}
	if m.b.IsFull() {
		m.outcome = game.Outcome{Draw: true}
		return m.finishGame()
	}

	if m.engineTurn() {
		m.phase = phaseThinking
		return m, tea.Batch(m.spin.Tick, m.engineCmd())
	}
	m.phase = phasePlaying
	return m, nil
}

func (m Model) finishGame() (tea.Model, tea.Cmd) {
	m.phase = phaseGameOver
	if m.autoSave && m.store != nil {
		m = m.saveReplay()
	}
	return m, nil
}

// undo takes back the human's last move: one ply against another
// human, two plies against the engine (the reply and the move).
// Disabled in ai-vs-ai sessions.
func (m Model) undo() Model {
	plies := 0
	switch m.players {
	case config.HumanVsHuman:
		plies = 1
	case config.HumanVsAI:
		plies = 2
	}
	if plies == 0 || len(m.timed) < plies {
		return m
	}

	for i := 0; i < plies; i++ {
		m.b.UndoMove()
		m.timed = m.timed[:len(m.timed)-1]
	}
	m.moveStart = m.clk.Now()
	m.status = ""
	return m
}

// saveReplay writes the finished game to the store.
func (m Model) saveReplay() Model {
	if m.store == nil {
		m.status = "no replay store configured"
		return m
	}
	if m.savedRef != "" {
		m.status = "already saved as " + m.savedRef
		return m
	}
	if len(m.timed) == 0 {
		m.status = "nothing to save"
		return m
	}

	record := replay.NewRecord(m.startedAt, m.playerInfos(), m.timed, m.outcome)
	hash, err := m.store.Save(record)
	if err != nil {
		m.status = fmt.Sprintf("saving replay: %v", err)
		return m
	}
	m.savedRef = hash.Ref()
	m.status = "saved as " + m.savedRef
	return m
}

func (m Model) playerInfos() [2]replay.PlayerInfo {
	human := replay.PlayerInfo{Kind: replay.PlayerHuman}
	machine := replay.PlayerInfo{
		Kind:       replay.PlayerEngine,
		Difficulty: m.difficulty.String(),
	}

	switch m.players {
	case config.AIVsAI:
		return [2]replay.PlayerInfo{machine, machine}
	case config.HumanVsAI:
		return [2]replay.PlayerInfo{human, machine}
	default:
		return [2]replay.PlayerInfo{human, human}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	header := boardRenderer.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Bold(true).
		Render("fourline")
	subtitle := boardRenderer.NewStyle().
		Foreground(m.theme.FaintText).
		Render(fmt.Sprintf("  %s · %s", m.players, m.difficulty))

	if m.phase == phaseHelp {
		return header + "\n\n" + renderHelp(m.theme, m.width) + "\n"
	}

	opts := RenderOptions{Cursor: -1, LastColumn: -1}
	if moves := m.b.Moves(); len(moves) > 0 {
		opts.LastColumn = moves[len(moves)-1]
	}
	if m.phase == phasePlaying && !m.engineTurn() {
		opts.Cursor = m.cursor
	}
	if _, won := m.b.Winner(); won {
		opts.WinnerHighlight = true
	}

	var out strings.Builder
	out.WriteString(header + subtitle + "\n\n")
	out.WriteString(RenderBoard(m.theme, &m.b, opts))
	out.WriteString("\n\n")
	out.WriteString(m.statusLine())
	out.WriteString("\n")
	if m.status != "" {
		out.WriteString(boardRenderer.NewStyle().
			Foreground(m.theme.ErrorText).
			Render(m.status))
		out.WriteString("\n")
	}
	out.WriteString(m.footer())
	return out.String()
}

func (m Model) statusLine() string {
	style := boardRenderer.NewStyle().Foreground(m.theme.NormalText)
	switch m.phase {
	case phaseThinking:
		return m.spin.View() + style.Render(" thinking")
	case phaseGameOver:
		if m.outcome.Draw {
			return style.Bold(true).Render("draw")
		}
		winner := m.outcome.Winner
		tokenStyle := boardRenderer.NewStyle().
			Foreground(m.theme.TokenColor(winner.Player())).
			Bold(true)
		return tokenStyle.Render(fmt.Sprintf("player %d (%s) wins", winner.Player(), winner))
	default:
		current := m.b.CurrentPlayer()
		return style.Render(fmt.Sprintf("player %d (%s) to move", current.Player(), current))
	}
}

func (m Model) footer() string {
	help := boardRenderer.NewStyle().Foreground(m.theme.HelpText)
	switch m.phase {
	case phaseGameOver:
		return help.Render("n new game · s save replay · q quit")
	case phaseThinking:
		return help.Render("? help · q quit")
	default:
		return help.Render("h/l move · enter drop · 1-7 direct · u undo · ? help · q quit")
	}
}
