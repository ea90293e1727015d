// Package config loads table configuration for the holdem binary.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Player kinds.
const (
	KindBot     = "bot"
	KindHuman   = "human"
	KindPassive = "passive"
)

const (
	defaultSmallBlind    = 10
	defaultBigBlind      = 20
	defaultStartingChips = 1000
	defaultDebugLevel    = "info"

	// maxPlayers is the largest table one deck can serve: two hole cards
	// each, three burns and a five card board.
	maxPlayers = (52 - 3 - 5) / 2
)

// PlayerConfig describes one seat.
type PlayerConfig struct {
	Name       string  `yaml:"name"`
	Kind       string  `yaml:"kind"`
	Aggression float64 `yaml:"aggression"`
	Chips      int64   `yaml:"chips"` // 0 uses StartingChips
}

// Config is the table configuration.
type Config struct {
	SmallBlind    int64          `yaml:"smallblind"`
	BigBlind      int64          `yaml:"bigblind"`
	MinRaise      int64          `yaml:"minraise"`
	StartingChips int64          `yaml:"startingchips"`
	Seed          int64          `yaml:"seed"`
	Hands         int            `yaml:"hands"`
	Players       []PlayerConfig `yaml:"players"`
	DBPath        string         `yaml:"db"`
	LogFile       string         `yaml:"logfile"`
	DebugLevel    string         `yaml:"debuglevel"`
}

// Default returns a heads-up table: one human against one bot.
func Default() *Config {
	cfg := &Config{
		Players: []PlayerConfig{
			{Name: "you", Kind: KindHuman},
			{Name: "bot", Kind: KindBot, Aggression: 0.5},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML file. Fields missing from the file take their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration and applies defaults. Unknown keys are an
// error.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SmallBlind == 0 {
		c.SmallBlind = defaultSmallBlind
	}
	if c.BigBlind == 0 {
		c.BigBlind = defaultBigBlind
	}
	if c.MinRaise == 0 {
		c.MinRaise = c.BigBlind
	}
	if c.StartingChips == 0 {
		c.StartingChips = defaultStartingChips
	}
	if c.DebugLevel == "" {
		c.DebugLevel = defaultDebugLevel
	}
	for i := range c.Players {
		if c.Players[i].Kind == "" {
			c.Players[i].Kind = KindBot
		}
		if c.Players[i].Chips == 0 {
			c.Players[i].Chips = c.StartingChips
		}
	}
}

// Validate checks the configuration for a playable table.
func (c *Config) Validate() error {
	if c.SmallBlind <= 0 || c.BigBlind <= 0 {
		return fmt.Errorf("blinds must be positive (got %d/%d)", c.SmallBlind, c.BigBlind)
	}
	if c.SmallBlind > c.BigBlind {
		return fmt.Errorf("small blind %d exceeds big blind %d", c.SmallBlind, c.BigBlind)
	}
	if c.MinRaise <= 0 {
		return fmt.Errorf("min raise must be positive (got %d)", c.MinRaise)
	}
	if c.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive (got %d)", c.StartingChips)
	}
	if c.Hands < 0 {
		return fmt.Errorf("hands must not be negative (got %d)", c.Hands)
	}
	if len(c.Players) < 2 {
		return fmt.Errorf("need at least 2 players, got %d", len(c.Players))
	}
	if len(c.Players) > maxPlayers {
		return fmt.Errorf("at most %d players fit one deck, got %d", maxPlayers, len(c.Players))
	}

	seen := make(map[string]bool, len(c.Players))
	humans := 0
	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player %d has no name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
		if p.Chips < 0 {
			return fmt.Errorf("player %s has negative chips", p.Name)
		}
		switch p.Kind {
		case KindBot:
			if p.Aggression < 0 || p.Aggression > 1 {
				return fmt.Errorf("player %s aggression %.2f outside [0, 1]", p.Name, p.Aggression)
			}
		case KindPassive:
		case KindHuman:
			humans++
		default:
			return fmt.Errorf("player %s has unknown kind %q", p.Name, p.Kind)
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human seat is supported, got %d", humans)
	}
	return nil
}

// HasHuman reports whether any seat is interactive.
func (c *Config) HasHuman() bool {
	for _, p := range c.Players {
		if p.Kind == KindHuman {
			return true
		}
	}
	return false
}
