package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "potlimit.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFillsDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
simulation {
  iterations = 20000
  seed       = 42
}

table {
  big_blind = 50
  small_blind = 25
}

log {
  level = "debug"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20000, cfg.Simulation.Iterations)
	require.NotNil(t, cfg.Simulation.Seed)
	assert.EqualValues(t, 42, *cfg.Simulation.Seed)
	assert.Equal(t, Default().Simulation.Workers, cfg.Simulation.Workers)
	assert.Equal(t, Default().Simulation.CacheSize, cfg.Simulation.CacheSize)
	assert.Equal(t, 25, cfg.Table.SmallBlind)
	assert.Equal(t, 50, cfg.Table.BigBlind)
	assert.Equal(t, Default().Table.StartingStack, cfg.Table.StartingStack)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
}

func TestLoadAllowsMissingBlocks(t *testing.T) {
	t.Parallel()
	cfg, err := Load(writeConfig(t, "simulation {\n  iterations = 20000\n}\n"))
	require.NoError(t, err)

	want := Default()
	want.Simulation.Iterations = 20000
	assert.Equal(t, want, cfg)

	cfg, err = Load(writeConfig(t, "log {\n  level = \"warn\"\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, Default().Table, cfg.Table)
	assert.Equal(t, log.WarnLevel, cfg.LogLevel())

	cfg, err = Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"syntax":          `simulation {`,
		"unknown field":   "simulation {}\ntable {}\nlog {}\nbogus = 1\n",
		"repeated block":  "table {}\ntable {}\n",
		"negative":        "simulation {\n iterations = -1\n}\ntable {}\nlog {}\n",
		"blinds":          "simulation {}\ntable {\n small_blind = 30\n big_blind = 20\n}\nlog {}\n",
		"log level":       "simulation {}\ntable {}\nlog {\n level = \"loud\"\n}\n",
		"stack too small": "simulation {}\ntable {\n starting_stack = 5\n}\nlog {}\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
