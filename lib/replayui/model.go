// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package replayui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"
	"github.com/muesli/termenv"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/clock"
	"github.com/fourline-foundation/fourline/lib/gameui"
	"github.com/fourline-foundation/fourline/lib/replay"
	"github.com/fourline-foundation/fourline/lib/tui"
)

// mode is the browser's top-level state.
type mode int

const (
	// modeBrowse shows the filterable record list.
	modeBrowse mode = iota
	// modePlayback steps through one record.
	modePlayback
)

// autoplayInterval is the delay between automatic playback steps.
const autoplayInterval = 700 * time.Millisecond

// autoplayTickMsg advances playback by one move while autoplay is on.
type autoplayTickMsg struct{}

// Slab sizes copied from fzf's own defaults.
const (
	slabSize16 = 100 * 1024
	slabSize32 = 2048
)

// styleRenderer forces the ANSI256 profile so output is identical
// with or without a TTY.
var styleRenderer = func() *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)
	return renderer
}()

// Config assembles a replay browser.
type Config struct {
	Theme tui.Theme

	// Keys defaults to DefaultKeyMap when zero.
	Keys KeyMap

	// Clock paces autoplay; defaults to the real clock.
	Clock clock.Clock

	// Store is the record store to browse.
	Store *replay.Store

	// Initial, when set, opens playback on this record directly
	// (the --ref flag path). The browse list is still reachable
	// with Esc.
	Initial *replay.Entry
}

// listRow is one filtered row of the browse list.
type listRow struct {
	entry replay.Entry
	score int
}

// Model is the bubbletea model for the replay browser.
type Model struct {
	theme tui.Theme
	keys  KeyMap
	clk   clock.Clock
	store *replay.Store

	mode mode

	// Browse state.
	entries      []replay.Entry
	rows         []listRow
	cursor       int
	filterActive bool
	filter       []rune
	slab         *util.Slab
	loadErr      error

	// Playback state.
	current  replay.Entry
	position int
	autoplay bool

	width int
}

// New builds the browser, loading the store listing eagerly.
func New(cfg Config) Model {
	keys := cfg.Keys
	if len(keys.Quit.Keys()) == 0 {
		keys = DefaultKeyMap
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real()
	}

	m := Model{
		theme: cfg.Theme,
		keys:  keys,
		clk:   clk,
		store: cfg.Store,
		slab:  util.MakeSlab(slabSize16, slabSize32),
		width: 80,
	}

	if cfg.Store != nil {
		m.entries, m.loadErr = cfg.Store.List()
	}
	m.applyFilter()

	if cfg.Initial != nil {
		m.current = *cfg.Initial
		m.mode = modePlayback
		m.position = len(cfg.Initial.Record.Moves)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// rowText is the line fuzzy filtering matches against.
func rowText(entry replay.Entry) string {
	return entry.Hash.Ref() + " " + entry.Record.StartedAt.Format("2006-01-02 15:04") +
		" " + entry.Record.Summary()
}

// applyFilter recomputes the visible rows from the filter pattern.
// Matching rows are ordered by fzf score, ties keeping the store's
// newest-first order.
func (m *Model) applyFilter() {
	m.rows = m.rows[:0]
	for _, entry := range m.entries {
		result := tui.FuzzyMatch(rowText(entry), m.filter, m.slab)
		if !result.Matched {
			continue
		}
		m.rows = append(m.rows, listRow{entry: entry, score: result.Score})
	}
	if len(m.filter) > 0 {
		sort.SliceStable(m.rows, func(i, j int) bool {
			return m.rows[i].score > m.rows[j].score
		})
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case autoplayTickMsg:
		if m.mode != modePlayback || !m.autoplay {
			return m, nil
		}
		if m.position < len(m.current.Record.Moves) {
			m.position++
		}
		if m.position >= len(m.current.Record.Moves) {
			m.autoplay = false
			return m, nil
		}
		return m, m.autoplayTick()

	case tea.KeyMsg:
		if m.mode == modePlayback {
			return m.handlePlaybackKey(msg)
		}
		return m.handleBrowseKey(msg)
	}
	return m, nil
}

// autoplayTick schedules the next playback step on the model's clock,
// so tests drive autoplay with a fake instead of sleeping.
func (m Model) autoplayTick() tea.Cmd {
	return func() tea.Msg {
		<-m.clk.After(autoplayInterval)
		return autoplayTickMsg{}
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter input mode captures everything except control keys.
	if m.filterActive {
		switch {
		case key.Matches(msg, m.keys.FilterClear):
			m.filterActive = false
			m.filter = nil
			m.applyFilter()
			return m, nil
		case key.Matches(msg, m.keys.Open):
			m.filterActive = false
			return m.openSelected()
		case msg.Type == tea.KeyBackspace:
			if len(m.filter) > 0 {
				m.filter = m.filter[:len(m.filter)-1]
				m.applyFilter()
			}
			return m, nil
		case msg.Type == tea.KeyRunes:
			m.filter = append(m.filter, msg.Runes...)
			m.applyFilter()
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.FilterActivate):
		m.filterActive = true
	case key.Matches(msg, m.keys.FilterClear):
		m.filter = nil
		m.applyFilter()
	case key.Matches(msg, m.keys.Open):
		return m.openSelected()
	}
	return m, nil
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	if len(m.rows) == 0 {
		return m, nil
	}
	m.current = m.rows[m.cursor].entry
	m.mode = modePlayback
	m.position = 0
	m.autoplay = false
	return m, nil
}

func (m Model) handlePlaybackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	moves := len(m.current.Record.Moves)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.mode = modeBrowse
		m.autoplay = false
	case key.Matches(msg, m.keys.StepForward):
		m.autoplay = false
		if m.position < moves {
			m.position++
		}
	case key.Matches(msg, m.keys.StepBack):
		m.autoplay = false
		if m.position > 0 {
			m.position--
		}
	case key.Matches(msg, m.keys.Start):
		m.autoplay = false
		m.position = 0
	case key.Matches(msg, m.keys.End):
		m.autoplay = false
		m.position = moves
	case key.Matches(msg, m.keys.Autoplay):
		if m.autoplay {
			m.autoplay = false
			return m, nil
		}
		if m.position >= moves {
			m.position = 0
		}
		m.autoplay = true
		return m, m.autoplayTick()
	}
	return m, nil
}

// boardAt replays the record prefix up to the playback position.
func (m Model) boardAt() board.Board {
	b := board.New()
	for _, move := range m.current.Record.Moves[:m.position] {
		b.MakeMove(move.Column)
	}
	return b
}

// View implements tea.Model.
func (m Model) View() string {
	if m.mode == modePlayback {
		return m.viewPlayback()
	}
	return m.viewBrowse()
}

func (m Model) viewBrowse() string {
	header := styleRenderer.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Bold(true).
		Render("fourline replays")
	help := styleRenderer.NewStyle().Foreground(m.theme.HelpText)
	faint := styleRenderer.NewStyle().Foreground(m.theme.FaintText)

	var out strings.Builder
	out.WriteString(header + "\n\n")

	if m.loadErr != nil {
		out.WriteString(styleRenderer.NewStyle().
			Foreground(m.theme.ErrorText).
			Render(fmt.Sprintf("listing replays: %v", m.loadErr)))
		out.WriteString("\n")
	}

	if m.filterActive || len(m.filter) > 0 {
		out.WriteString(faint.Render("filter: ") + string(m.filter))
		if m.filterActive {
			out.WriteString("▏")
		}
		out.WriteString("\n\n")
	}

	if len(m.rows) == 0 {
		out.WriteString(faint.Render("no replays"))
		out.WriteString("\n")
	}
	for index, row := range m.rows {
		line := rowText(row.entry)
		if index == m.cursor {
			line = styleRenderer.NewStyle().
				Foreground(m.theme.SelectedForeground).
				Background(m.theme.SelectedBackground).
				Render(line)
		} else {
			line = styleRenderer.NewStyle().
				Foreground(m.theme.NormalText).
				Render(line)
		}
		out.WriteString(line + "\n")
	}

	out.WriteString("\n")
	out.WriteString(help.Render("j/k move · enter open · / filter · q quit"))
	return out.String()
}

func (m Model) viewPlayback() string {
	record := m.current.Record
	moves := len(record.Moves)

	header := styleRenderer.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Bold(true).
		Render(m.current.Hash.Ref())
	subtitle := styleRenderer.NewStyle().
		Foreground(m.theme.FaintText).
		Render("  " + record.Summary())
	help := styleRenderer.NewStyle().Foreground(m.theme.HelpText)

	b := m.boardAt()
	opts := gameui.RenderOptions{Cursor: -1, LastColumn: -1}
	if m.position > 0 {
		opts.LastColumn = record.Moves[m.position-1].Column
	}
	if _, won := b.Winner(); won {
		opts.WinnerHighlight = true
	}

	status := fmt.Sprintf("move %d/%d", m.position, moves)
	if m.autoplay {
		status += " · playing"
	}

	var out strings.Builder
	out.WriteString(header + subtitle + "\n\n")
	out.WriteString(gameui.RenderBoard(m.theme, &b, opts))
	out.WriteString("\n\n")
	out.WriteString(styleRenderer.NewStyle().Foreground(m.theme.NormalText).Render(status))
	out.WriteString("\n")
	out.WriteString(help.Render("h/l scrub · space autoplay · g/G ends · Esc list · q quit"))
	return out.String()
}
