// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// fourline-replay browses saved games. It lists the replay store with
// fuzzy filtering and steps through a selected game move by move;
// --ref jumps straight into one record.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/fourline-foundation/fourline/lib/cli"
	"github.com/fourline-foundation/fourline/lib/config"
	"github.com/fourline-foundation/fourline/lib/replay"
	"github.com/fourline-foundation/fourline/lib/replayui"
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
		replayDir  string
		ref        string
		themePath  string
	)

	flagSet := pflag.NewFlagSet("fourline-replay", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: $FOURLINE_CONFIG)")
	flagSet.StringVar(&replayDir, "replay-dir", "", "directory of saved replays")
	flagSet.StringVar(&ref, "ref", "", "open one replay directly (rec-xxxx or hash prefix)")
	flagSet.StringVar(&themePath, "theme", "", "JSONC theme override file")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("fourline-replay")
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
	if replayDir != "" {
		cfg.Paths.Replays = replayDir
	}
	if themePath != "" {
		cfg.UI.Theme = themePath
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

	var initial *replay.Entry
	if ref != "" {
		hash, err := store.Resolve(ref)
		if err != nil {
			return refError(err, ref)
		}
		record, err := store.Load(hash)
		if err != nil {
			return refError(err, ref)
		}
		initial = &replay.Entry{Hash: hash, Record: record}
	}

	model := replayui.New(replayui.Config{
		Theme:   theme,
		Store:   store,
		Initial: initial,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

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

// refError maps store errors onto CLI categories.
func refError(err error, ref string) error {
	switch {
	case errors.Is(err, replay.ErrNotFound):
		return cli.NotFound("%w", err).
			WithHint("List saved replays by running fourline-replay without --ref.")
	case errors.Is(err, replay.ErrAmbiguousRef):
		return cli.Validation("%w", err).
			WithHint("Use more characters of the hash to disambiguate.")
	default:
		return fmt.Errorf("loading %s: %w", ref, err)
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `fourline-replay - browse and play back saved games.

Lists the replay store newest-first. Type / to fuzzy-filter, enter to
open a record, h/l to scrub through moves, space for autoplay.

Usage:
  fourline-replay [flags]

Examples:
  # Browse the store
  fourline-replay

  # Jump straight into one record
  fourline-replay --ref rec-3fa8c2d910bb

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
