// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for fourline commands.
//
// Configuration is loaded from a single YAML file specified by:
//   - FOURLINE_CONFIG environment variable, or
//   - --config flag passed to the command
//
// When neither is set the built-in defaults apply. The config file is
// the single source of truth beyond that: environment variables never
// override individual values. The only expansion performed is ${HOME}
// and similar path variables for portability.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fourline-foundation/fourline/lib/engine"
)

// Players names who controls each side.
type Players string

const (
	// HumanVsAI seats a human as player 1 against the engine.
	HumanVsAI Players = "human-vs-ai"
	// HumanVsHuman seats two humans at the same terminal.
	HumanVsHuman Players = "human-vs-human"
	// AIVsAI plays the engine against itself.
	AIVsAI Players = "ai-vs-ai"
)

// Config is the master configuration for fourline.
type Config struct {
	// Game configures how matches are played.
	Game GameConfig `yaml:"game"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// UI configures the terminal interface.
	UI UIConfig `yaml:"ui"`
}

// GameConfig configures how matches are played.
type GameConfig struct {
	// Difficulty is the engine level: easy, medium, hard, master,
	// unfair. Default: medium.
	Difficulty string `yaml:"difficulty"`

	// Players selects who controls each side.
	// Default: human-vs-ai.
	Players Players `yaml:"players"`

	// MoveTime bounds the engine's thinking per move, as a duration
	// string ("2s", "500ms"). Empty means no budget: the engine
	// searches to its full depth.
	MoveTime string `yaml:"move_time"`

	// SaveReplays records finished games into the replay store.
	// Default: true.
	SaveReplays bool `yaml:"save_replays"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for fourline data.
	// Default: ${HOME}/.local/share/fourline.
	Root string `yaml:"root"`

	// Replays is where finished games are stored.
	// Default: ${FOURLINE_ROOT}/replays.
	Replays string `yaml:"replays"`

	// Book is the opening book file. Empty disables the book.
	Book string `yaml:"book"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	// Theme is an optional JSONC theme override file.
	Theme string `yaml:"theme"`
}

// Default returns the default configuration. Unlike a server, a game
// must run with no config file at all, so these defaults are a
// complete working setup.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".local", "share", "fourline")

	return &Config{
		Game: GameConfig{
			Difficulty:  "medium",
			Players:     HumanVsAI,
			SaveReplays: true,
		},
		Paths: PathsConfig{
			Root:    defaultRoot,
			Replays: filepath.Join(defaultRoot, "replays"),
		},
	}
}

// Load loads configuration from the FOURLINE_CONFIG environment
// variable, falling back to the defaults when it is not set.
func Load() (*Config, error) {
	configPath := os.Getenv("FOURLINE_CONFIG")
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"FOURLINE_ROOT": c.Paths.Root,
		"HOME":          os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["FOURLINE_ROOT"] = c.Paths.Root // Update for dependent paths.

	c.Paths.Replays = expandVars(c.Paths.Replays, vars)
	c.Paths.Book = expandVars(c.Paths.Book, vars)
	c.UI.Theme = expandVars(c.UI.Theme, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if _, err := engine.ParseDifficulty(c.Game.Difficulty); err != nil {
		errs = append(errs, fmt.Errorf("game.difficulty: %w", err))
	}

	switch c.Game.Players {
	case HumanVsAI, HumanVsHuman, AIVsAI:
	default:
		errs = append(errs, fmt.Errorf("game.players must be one of: %s, %s, %s",
			HumanVsAI, HumanVsHuman, AIVsAI))
	}

	if _, err := c.Game.ParseMoveTime(); err != nil {
		errs = append(errs, fmt.Errorf("game.move_time: %w", err))
	}

	if c.Paths.Root == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	}
	if c.Paths.Replays == "" {
		errs = append(errs, fmt.Errorf("paths.replays is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ParseMoveTime returns the per-move search budget, or zero when no
// budget is configured.
func (g GameConfig) ParseMoveTime() (time.Duration, error) {
	if g.MoveTime == "" {
		return 0, nil
	}
	duration, err := time.ParseDuration(g.MoveTime)
	if err != nil {
		return 0, err
	}
	if duration < 0 {
		return 0, fmt.Errorf("must not be negative: %s", g.MoveTime)
	}
	return duration, nil
}

// ParseDifficulty returns the configured engine difficulty.
func (g GameConfig) ParseDifficulty() (engine.Difficulty, error) {
	return engine.ParseDifficulty(g.Difficulty)
}

// EnsurePaths creates the configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	for _, path := range []string{c.Paths.Root, c.Paths.Replays} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}
