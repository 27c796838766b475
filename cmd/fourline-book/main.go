// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// fourline-book builds and inspects opening books. A book maps every
// position up to a ply limit to the move a deep search would pick, so
// the engine answers openings instantly.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/fourline-foundation/fourline/lib/book"
	"github.com/fourline-foundation/fourline/lib/cli"
	"github.com/fourline-foundation/fourline/lib/engine"
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
		maxPly     int
		difficulty string
		output     string
		info       string
	)

	flagSet := pflag.NewFlagSet("fourline-book", pflag.ContinueOnError)
	flagSet.IntVar(&maxPly, "max-ply", 6, "cover every position shallower than this many moves")
	flagSet.StringVar(&difficulty, "difficulty", "master", "search level used for book moves")
	flagSet.StringVarP(&output, "output", "o", "opening.flb", "book file to write")
	flagSet.StringVar(&info, "info", "", "inspect an existing book file instead of building")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("fourline-book")
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

	if info != "" {
		return runInfo(info)
	}

	args := flagSet.Args()
	if len(args) != 1 || args[0] != "build" {
		if len(args) == 0 {
			return cli.Validation("missing command").
				WithHint("Run 'fourline-book build' or 'fourline-book --info <file>'.")
		}
		return cli.Validation("unknown command: %s", args[0])
	}

	level, err := engine.ParseDifficulty(difficulty)
	if err != nil {
		return cli.Validation("%w", err)
	}

	fmt.Fprintf(os.Stderr, "building book to ply %d at %s\n", maxPly, level)
	start := time.Now()

	bk, err := book.Build(context.Background(), book.BuildConfig{
		MaxPly:     maxPly,
		Difficulty: level,
		Progress: func(entries int) {
			if entries%100 == 0 {
				fmt.Fprintf(os.Stderr, "\r%d positions", entries)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("building book: %w", err)
	}
	fmt.Fprintf(os.Stderr, "\r%d positions in %s\n", bk.Len(), time.Since(start).Round(time.Millisecond))

	if err := bk.Save(output); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}

func runInfo(path string) error {
	bk, err := book.Load(path)
	if err != nil {
		return cli.NotFound("loading %s: %w", path, err)
	}
	fmt.Printf("%s\n", path)
	fmt.Printf("  positions:  %d\n", bk.Len())
	fmt.Printf("  max ply:    %d\n", bk.MaxPly())
	fmt.Printf("  difficulty: %s\n", bk.Difficulty())
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `fourline-book - build and inspect opening books.

Building searches every reachable position shallower than --max-ply at
the given difficulty and stores the chosen move. Books built with the
same settings are byte-identical.

Usage:
  fourline-book build [flags]
  fourline-book --info <file>

Examples:
  # Build the default book (ply 6, master)
  fourline-book build

  # A deeper book for the unfair level
  fourline-book build --max-ply 8 --difficulty unfair -o deep.flb

  # Show what a book covers
  fourline-book --info deep.flb

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
