// Package config loads the potlimit HCL configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete configuration
type Config struct {
	Simulation SimulationSettings
	Table      TableSettings
	Log        LogSettings
}

// file mirrors Config as written on disk. Every block is optional.
type file struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Table      *TableSettings      `hcl:"table,block"`
	Log        *LogSettings        `hcl:"log,block"`
}

// SimulationSettings controls the equity calculator
type SimulationSettings struct {
	Iterations int    `hcl:"iterations,optional"`
	Workers    int    `hcl:"workers,optional"`
	BatchSize  int    `hcl:"batch_size,optional"`
	CacheSize  int    `hcl:"cache_size,optional"`
	Seed       *int64 `hcl:"seed,optional"`
}

// TableSettings describes the heads-up table used by `play`
type TableSettings struct {
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
	StartingStack int `hcl:"starting_stack,optional"`
}

// LogSettings contains logging settings
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Iterations: 5000,
			Workers:    4,
			BatchSize:  1024,
			CacheSize:  1024,
		},
		Table: TableSettings{
			SmallBlind:    10,
			BigBlind:      20,
			StartingStack: 2000,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(hclFile.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg := *Default()
	if raw.Simulation != nil {
		cfg.Simulation = *raw.Simulation
	}
	if raw.Table != nil {
		cfg.Table = *raw.Table
	}
	if raw.Log != nil {
		cfg.Log = *raw.Log
	}
	cfg.applyDefaults(Default())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults(d *Config) {
	if c.Simulation.Iterations == 0 {
		c.Simulation.Iterations = d.Simulation.Iterations
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = d.Simulation.Workers
	}
	if c.Simulation.BatchSize == 0 {
		c.Simulation.BatchSize = d.Simulation.BatchSize
	}
	if c.Simulation.CacheSize == 0 {
		c.Simulation.CacheSize = d.Simulation.CacheSize
	}
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = d.Table.SmallBlind
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = d.Table.BigBlind
	}
	if c.Table.StartingStack == 0 {
		c.Table.StartingStack = d.Table.StartingStack
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Iterations < 0 {
		return fmt.Errorf("iterations cannot be negative")
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if c.Simulation.BatchSize < 0 {
		return fmt.Errorf("batch size cannot be negative")
	}
	if c.Simulation.CacheSize < 0 {
		return fmt.Errorf("cache size cannot be negative")
	}
	if c.Table.SmallBlind <= 0 || c.Table.BigBlind < c.Table.SmallBlind {
		return fmt.Errorf("invalid blinds %d/%d", c.Table.SmallBlind, c.Table.BigBlind)
	}
	if c.Table.StartingStack < c.Table.BigBlind {
		return fmt.Errorf("starting stack must cover the big blind")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
