// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// fourline-analyze re-searches every position of a finished game and
// reports per-move evaluations and blunders. It reads the game from a
// saved replay (--ref) or a compact move string (--moves), and exits
// 1 when blunders were found so scripts can gate on it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/fourline-foundation/fourline/lib/board"
	"github.com/fourline-foundation/fourline/lib/cli"
	"github.com/fourline-foundation/fourline/lib/config"
	"github.com/fourline-foundation/fourline/lib/engine"
	"github.com/fourline-foundation/fourline/lib/replay"
	"github.com/fourline-foundation/fourline/lib/version"
)

// defaultBlunderThreshold is the evaluation loss, in engine score
// units, at which a move is flagged. A lost win is ±10000, so 200
// catches serious positional mistakes without flagging every inexact
// move.
const defaultBlunderThreshold = 200

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
		ref        string
		moves      string
		difficulty string
		replayDir  string
		threshold  int
		jsonOutput bool
	)

	flagSet := pflag.NewFlagSet("fourline-analyze", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: $FOURLINE_CONFIG)")
	flagSet.StringVar(&ref, "ref", "", "analyze a saved replay (rec-xxxx or hash prefix)")
	flagSet.StringVar(&moves, "moves", "", "analyze a move string of 1-based columns, e.g. 44516")
	flagSet.StringVar(&difficulty, "difficulty", "", "analysis depth: easy, medium, hard, master, unfair")
	flagSet.StringVar(&replayDir, "replay-dir", "", "directory of saved replays")
	flagSet.IntVar(&threshold, "threshold", defaultBlunderThreshold, "evaluation loss that counts as a blunder")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit the report as JSON")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("fourline-analyze")
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

	if (ref == "") == (moves == "") {
		return cli.Validation("exactly one of --ref and --moves is required")
	}

	cfg, err := config.Load()
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	}
	if err != nil {
		return cli.Validation("loading config: %w", err)
	}
	if replayDir != "" {
		cfg.Paths.Replays = replayDir
	}
	if difficulty != "" {
		cfg.Game.Difficulty = difficulty
	}

	level, err := cfg.Game.ParseDifficulty()
	if err != nil {
		return cli.Validation("%w", err)
	}

	columns, err := resolveGame(cfg, ref, moves)
	if err != nil {
		return err
	}

	report, err := analyzeMoves(context.Background(), columns, level, threshold)
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if report.Blunders > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// resolveGame turns either input form into a 0-based column list.
func resolveGame(cfg *config.Config, ref, moves string) ([]int, error) {
	if moves != "" {
		columns, err := board.ParseMoves(moves)
		if err != nil {
			return nil, cli.Validation("parsing moves: %w", err)
		}
		return columns, nil
	}

	store, err := replay.NewStore(cfg.Paths.Replays)
	if err != nil {
		return nil, err
	}
	hash, err := store.Resolve(ref)
	if err == nil {
		var record *replay.Record
		record, err = store.Load(hash)
		if err == nil {
			return record.Columns(), nil
		}
	}
	switch {
	case errors.Is(err, replay.ErrNotFound):
		return nil, cli.NotFound("%w", err).
			WithHint("List saved replays with fourline-replay.")
	case errors.Is(err, replay.ErrAmbiguousRef):
		return nil, cli.Validation("%w", err).
			WithHint("Use more characters of the hash to disambiguate.")
	default:
		return nil, err
	}
}

// MoveReport is the analysis of one played move.
type MoveReport struct {
	// Number is the 1-based move number.
	Number int `json:"number"`

	// Player is the 1-based side that moved.
	Player int `json:"player"`

	// Column is the 1-based played column.
	Column int `json:"column"`

	// Score is the search evaluation of the played move, from the
	// mover's perspective.
	Score int `json:"score"`

	// BestColumn and BestScore describe the engine's preferred move.
	BestColumn int `json:"best_column"`
	BestScore  int `json:"best_score"`

	// Loss is BestScore - Score.
	Loss int `json:"loss"`

	// Blunder is true when Loss reached the threshold.
	Blunder bool `json:"blunder"`
}

// Report is the full analysis of a game.
type Report struct {
	Difficulty string       `json:"difficulty"`
	Threshold  int          `json:"threshold"`
	Moves      []MoveReport `json:"moves"`

	// Blunders counts flagged moves across both sides.
	Blunders int `json:"blunders"`
}

// analyzeMoves replays the game, evaluating every legal alternative
// at each position.
func analyzeMoves(ctx context.Context, columns []int, level engine.Difficulty, threshold int) (*Report, error) {
	// Validate the whole game up front so errors name the move.
	if _, err := board.FromMoves(columns); err != nil {
		return nil, cli.Validation("invalid game: %w", err)
	}

	eng := engine.New(engine.Config{Difficulty: level})
	report := &Report{
		Difficulty: level.String(),
		Threshold:  threshold,
		Moves:      make([]MoveReport, 0, len(columns)),
	}

	b := board.New()
	for i, column := range columns {
		evals, err := eng.EvaluateMoves(ctx, &b)
		if err != nil {
			return nil, fmt.Errorf("analyzing move %d: %w", i+1, err)
		}

		best := evals[0]
		played := best
		for _, eval := range evals {
			if eval.Column == column {
				played = eval
				break
			}
		}

		move := MoveReport{
			Number:     i + 1,
			Player:     b.CurrentPlayer().Player(),
			Column:     column + 1,
			Score:      played.Score,
			BestColumn: best.Column + 1,
			BestScore:  best.Score,
			Loss:       best.Score - played.Score,
		}
		if move.Loss >= threshold {
			move.Blunder = true
			report.Blunders++
		}
		report.Moves = append(report.Moves, move)

		b.MakeMove(column)
	}
	return report, nil
}

func printReport(report *Report) {
	fmt.Printf("analysis at %s, blunder threshold %d\n\n", report.Difficulty, report.Threshold)
	for _, move := range report.Moves {
		line := fmt.Sprintf("%3d. player %d column %d  score %6d  best column %d (%d)",
			move.Number, move.Player, move.Column, move.Score, move.BestColumn, move.BestScore)
		if move.Blunder {
			line += fmt.Sprintf("  BLUNDER -%d", move.Loss)
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d blunder(s)\n", report.Blunders)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `fourline-analyze - find the mistakes in a finished game.

Re-searches every position at the given difficulty and reports each
move's evaluation against the engine's preferred move. Moves losing at
least the threshold are flagged as blunders, and the exit code is 1
when any were found.

Usage:
  fourline-analyze --ref rec-xxxx [flags]
  fourline-analyze --moves 44516 [flags]

Examples:
  # Analyze a saved replay at master depth
  fourline-analyze --ref rec-3fa8c2d910bb --difficulty master

  # Analyze a move string and feed the report to jq
  fourline-analyze --moves 4451637 --json | jq '.blunders'

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
