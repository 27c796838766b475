// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fourline-foundation/fourline/lib/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fourline.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if cfg.Game.Players != HumanVsAI {
		t.Errorf("expected default players %s, got %s", HumanVsAI, cfg.Game.Players)
	}
	if !cfg.Game.SaveReplays {
		t.Error("expected replays saved by default")
	}
}

func TestLoadWithoutEnvUsesDefaults(t *testing.T) {
	t.Setenv("FOURLINE_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Game.Difficulty != "medium" {
		t.Errorf("expected default difficulty medium, got %s", cfg.Game.Difficulty)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "game:\n  difficulty: master\n")
	t.Setenv("FOURLINE_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Game.Difficulty != "master" {
		t.Errorf("expected difficulty master, got %s", cfg.Game.Difficulty)
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"game:",
		"  difficulty: hard",
		"  players: ai-vs-ai",
		"  move_time: 2s",
		"paths:",
		"  book: /tmp/opening.flb",
	}, "\n"))

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("loaded config failed validation: %v", err)
	}

	if cfg.Game.Players != AIVsAI {
		t.Errorf("expected players ai-vs-ai, got %s", cfg.Game.Players)
	}
	moveTime, err := cfg.Game.ParseMoveTime()
	if err != nil {
		t.Fatalf("parsing move time: %v", err)
	}
	if moveTime != 2*time.Second {
		t.Errorf("expected move time 2s, got %s", moveTime)
	}
	if cfg.Game.SaveReplays != true {
		t.Error("unset save_replays should keep the default")
	}
	// Defaults survive for everything the file does not mention.
	if cfg.Paths.Replays == "" {
		t.Error("expected default replay path to survive the merge")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}

func TestVariableExpansion(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"paths:",
		"  root: /data/fourline",
		"  replays: ${FOURLINE_ROOT}/replays",
		"  book: ${HOME}/opening.flb",
	}, "\n"))
	t.Setenv("HOME", "/home/tester")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Paths.Replays != "/data/fourline/replays" {
		t.Errorf("FOURLINE_ROOT not expanded: %s", cfg.Paths.Replays)
	}
	if cfg.Paths.Book != "/home/tester/opening.flb" {
		t.Errorf("HOME not expanded: %s", cfg.Paths.Book)
	}
}

func TestExpandVarsDefaultValue(t *testing.T) {
	got := expandVars("${FOURLINE_MISSING:-/fallback}/x", map[string]string{})
	if got != "/fallback/x" {
		t.Fatalf("expected fallback expansion, got %s", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"bad difficulty": func(c *Config) { c.Game.Difficulty = "impossible" },
		"bad players":    func(c *Config) { c.Game.Players = "robots-only" },
		"bad move time":  func(c *Config) { c.Game.MoveTime = "fast" },
		"negative time":  func(c *Config) { c.Game.MoveTime = "-1s" },
		"no root":        func(c *Config) { c.Paths.Root = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation to fail")
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	cfg := Default()
	cfg.Game.Difficulty = "unfair"

	difficulty, err := cfg.Game.ParseDifficulty()
	if err != nil {
		t.Fatalf("parsing difficulty: %v", err)
	}
	if difficulty != engine.Unfair {
		t.Fatalf("expected unfair, got %s", difficulty)
	}
}

func TestEnsurePaths(t *testing.T) {
	root := filepath.Join(t.TempDir(), "fourline")
	cfg := Default()
	cfg.Paths.Root = root
	cfg.Paths.Replays = filepath.Join(root, "replays")

	if err := cfg.EnsurePaths(); err != nil {
		t.Fatalf("ensuring paths: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.Replays); err != nil {
		t.Fatalf("replay directory not created: %v", err)
	}
}
