// Package config loads squares settings from an HCL file with environment
// overrides.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/squares/internal/squares"
	"github.com/lox/squares/internal/store"
)

// DefaultFile is read when no --config flag is given.
const DefaultFile = "squares.hcl"

const (
	defaultLogLevel = "info"
	defaultBackend  = store.BackendFile
	defaultFileDir  = "squares-data"
	defaultDBPath   = "squares.db"
	defaultTeamA    = "Team A"
	defaultTeamB    = "Team B"
)

// Config represents the complete squares configuration
type Config struct {
	LogLevel string         `hcl:"log_level,optional"`
	Seed     *int64         `hcl:"seed,optional"`
	Store    *StoreConfig   `hcl:"store,block"`
	Teams    *TeamsConfig   `hcl:"teams,block"`
	Payouts  []PayoutConfig `hcl:"payout,block"`
}

// StoreConfig selects where the board is persisted
type StoreConfig struct {
	Backend string `hcl:"backend,optional"`
	Path    string `hcl:"path,optional"`
}

// TeamsConfig names the two teams; A's score picks the row digit
type TeamsConfig struct {
	A string `hcl:"a,optional"`
	B string `hcl:"b,optional"`
}

// PayoutConfig is the amount paid to a checkpoint's winner
type PayoutConfig struct {
	Checkpoint string  `hcl:"checkpoint,label"`
	Amount     float64 `hcl:"amount"`
}

type envOverrides struct {
	StoreBackend string `env:"SQUARES_STORE_BACKEND"`
	StorePath    string `env:"SQUARES_STORE_PATH"`
	LogLevel     string `env:"SQUARES_LOG_LEVEL"`
	Seed         *int64 `env:"SQUARES_SEED"`
	TeamA        string `env:"SQUARES_TEAM_A"`
	TeamB        string `env:"SQUARES_TEAM_B"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename, applies SQUARES_* environment overrides and fills in
// defaults. A missing file is not an error.
func Load(filename string) (*Config, error) {
	var config Config
	if _, err := os.Stat(filename); err == nil {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}
		diags = gohcl.DecodeBody(file.Body, nil, &config)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if c.Teams == nil {
		c.Teams = &TeamsConfig{}
	}
	if overrides.StoreBackend != "" {
		c.Store.Backend = overrides.StoreBackend
	}
	if overrides.StorePath != "" {
		c.Store.Path = overrides.StorePath
	}
	if overrides.LogLevel != "" {
		c.LogLevel = overrides.LogLevel
	}
	if overrides.Seed != nil {
		c.Seed = overrides.Seed
	}
	if overrides.TeamA != "" {
		c.Teams.A = overrides.TeamA
	}
	if overrides.TeamB != "" {
		c.Teams.B = overrides.TeamB
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if c.Store.Backend == "" {
		c.Store.Backend = string(defaultBackend)
	}
	if c.Store.Path == "" {
		switch store.Backend(c.Store.Backend) {
		case store.BackendFile:
			c.Store.Path = defaultFileDir
		case store.BackendSQLite:
			c.Store.Path = defaultDBPath
		}
	}
	if c.Teams == nil {
		c.Teams = &TeamsConfig{}
	}
	if c.Teams.A == "" {
		c.Teams.A = defaultTeamA
	}
	if c.Teams.B == "" {
		c.Teams.B = defaultTeamB
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	backend := store.Backend(c.Store.Backend)
	if !backend.Valid() {
		return fmt.Errorf("store: unknown backend %q (want one of %v)", c.Store.Backend, store.Backends)
	}
	if backend != store.BackendMemory && c.Store.Path == "" {
		return fmt.Errorf("store: %s backend needs a path", backend)
	}

	if c.Teams.A == c.Teams.B {
		return fmt.Errorf("teams: both teams are named %q", c.Teams.A)
	}

	seen := make(map[squares.Checkpoint]bool, len(c.Payouts))
	for _, p := range c.Payouts {
		cp, err := squares.ParseCheckpoint(p.Checkpoint)
		if err != nil {
			return fmt.Errorf("payout: %w", err)
		}
		if seen[cp] {
			return fmt.Errorf("payout %s: defined twice", cp)
		}
		seen[cp] = true
		if p.Amount < 0 {
			return fmt.Errorf("payout %s: amount must not be negative", cp)
		}
	}
	return nil
}

// Level returns the parsed log level, or info when it does not parse.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// PayoutMap returns the payout amount per checkpoint.
func (c *Config) PayoutMap() map[squares.Checkpoint]float64 {
	out := make(map[squares.Checkpoint]float64, len(c.Payouts))
	for _, p := range c.Payouts {
		out[squares.Checkpoint(p.Checkpoint)] = p.Amount
	}
	return out
}
