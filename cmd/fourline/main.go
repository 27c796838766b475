// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// fourline plays Connect Four in the terminal.
//
// By default it opens an interactive TUI with a human as player 1
// against the engine. --players switches the seating; ai-vs-ai runs
// headless when stdout is not a terminal (or with --no-tui), printing
// the final board and result.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/fourline-foundation/fourline/lib/book"
	"github.com/fourline-foundation/fourline/lib/cli"
	"github.com/fourline-foundation/fourline/lib/clock"
	"github.com/fourline-foundation/fourline/lib/config"
	"github.com/fourline-foundation/fourline/lib/engine"
	"github.com/fourline-foundation/fourline/lib/game"
	"github.com/fourline-foundation/fourline/lib/gameui"
	"github.com/fourline-foundation/fourline/lib/replay"
	"github.com/fourline-foundation/fourline/lib/tui"
	"github.com/fourline-foundation/fourline/lib/version"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if hinted, ok := err.(*cli.Error); ok && hinted.Hint != "" {
			fmt.Fprintf(os.Stderr, "%s\n", hinted.Hint)
		}
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		difficulty string
		players    string
		bookPath   string
		replayDir  string
		moveTime   string
		themePath  string
		noTUI      bool
		save       bool
		noSave     bool
	)

	flagSet := pflag.NewFlagSet("fourline", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: $FOURLINE_CONFIG)")
	flagSet.StringVar(&difficulty, "difficulty", "", "engine level: easy, medium, hard, master, unfair")
	flagSet.StringVar(&players, "players", "", "seating: human-vs-ai, human-vs-human, ai-vs-ai")
	flagSet.StringVar(&bookPath, "book", "", "opening book file")
	flagSet.StringVar(&replayDir, "replay-dir", "", "directory for saved replays")
	flagSet.StringVar(&moveTime, "move-time", "", "engine time budget per move (e.g. 2s)")
	flagSet.StringVar(&themePath, "theme", "", "JSONC theme override file")
	flagSet.BoolVar(&noTUI, "no-tui", false, "run ai-vs-ai headless, printing the final board")
	flagSet.BoolVar(&save, "save", false, "save the finished game as a replay")
	flagSet.BoolVar(&noSave, "no-save", false, "do not save the finished game")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("fourline")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Flags override the file.
	if difficulty != "" {
		cfg.Game.Difficulty = difficulty
	}
	if players != "" {
		cfg.Game.Players = config.Players(players)
	}
	if bookPath != "" {
		cfg.Paths.Book = bookPath
	}
	if replayDir != "" {
		cfg.Paths.Replays = replayDir
	}
	if moveTime != "" {
		cfg.Game.MoveTime = moveTime
	}
	if themePath != "" {
		cfg.UI.Theme = themePath
	}
	if save {
		cfg.Game.SaveReplays = true
	}
	if noSave {
		cfg.Game.SaveReplays = false
	}

	if err := cfg.Validate(); err != nil {
		return cli.Validation("invalid configuration: %w", err)
	}
	if err := cfg.EnsurePaths(); err != nil {
		return err
	}

	level, err := cfg.Game.ParseDifficulty()
	if err != nil {
		return cli.Validation("%w", err)
	}
	budget, err := cfg.Game.ParseMoveTime()
	if err != nil {
		return cli.Validation("move time: %w", err)
	}

	theme := tui.DefaultTheme
	if cfg.UI.Theme != "" {
		theme, err = tui.LoadTheme(cfg.UI.Theme)
		if err != nil {
			return cli.Validation("loading theme: %w", err)
		}
	}

	store, err := replay.NewStore(cfg.Paths.Replays)
	if err != nil {
		return err
	}

	var eng *engine.Engine
	if cfg.Game.Players != config.HumanVsHuman {
		engineConfig := engine.Config{
			Difficulty: level,
			MoveTime:   budget,
		}
		if cfg.Paths.Book != "" {
			opening, err := book.Load(cfg.Paths.Book)
			if err != nil {
				return cli.NotFound("loading opening book: %w", err).
					WithHint("Build one with 'fourline-book build'.")
			}
			engineConfig.Book = opening
		}
		eng = engine.New(engineConfig)
	}

	headless := cfg.Game.Players == config.AIVsAI &&
		(noTUI || !term.IsTerminal(int(os.Stdout.Fd())))
	if headless {
		return runHeadless(cfg, eng, level, store)
	}

	model := gameui.New(gameui.Config{
		Theme:       theme,
		Players:     cfg.Game.Players,
		Engine:      eng,
		Difficulty:  level,
		Store:       store,
		SaveReplays: cfg.Game.SaveReplays,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// loadConfig resolves the config source: explicit flag, FOURLINE_CONFIG,
// or defaults.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, cli.Validation("loading config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}
	return cfg, nil
}

// runHeadless plays an engine-vs-engine match without the TUI and
// prints the final position.
func runHeadless(cfg *config.Config, eng *engine.Engine, level engine.Difficulty, store *replay.Store) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	clk := clock.Real()
	startedAt := clk.Now()
	match := game.New(eng, eng, clk)

	start := time.Now()
	final, outcome, err := match.Play(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start).Round(time.Millisecond)

	fmt.Println(final.String())
	fmt.Printf("%s in %d moves (%s)\n", outcome, final.Ply(), elapsed)

	if cfg.Game.SaveReplays {
		machine := replay.PlayerInfo{Kind: replay.PlayerEngine, Difficulty: level.String()}
		record := replay.NewRecord(startedAt, [2]replay.PlayerInfo{machine, machine}, match.Moves(), outcome)
		hash, err := store.Save(record)
		if err != nil {
			logger.Warn("saving replay failed", "error", err)
		} else {
			fmt.Printf("saved as %s\n", hash.Ref())
		}
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `fourline - Connect Four in the terminal.

Runs an interactive game against the engine by default. Finished games
can be saved as replays and browsed with fourline-replay.

Usage:
  fourline [flags]

Examples:
  # Play against the engine at the default difficulty
  fourline

  # A harder game with a 2-second thinking budget per engine move
  fourline --difficulty master --move-time 2s

  # Watch the engine play itself in the terminal
  fourline --players ai-vs-ai

  # Headless engine match, e.g. for scripting
  fourline --players ai-vs-ai --no-tui

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
