package main

import (
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/potlimit/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" help:"Path to HCL config file" default:"potlimit.hcl" type:"path"`
	LogLevel string           `help:"Override the configured log level (debug, info, warn, error)"`
	NoColor  bool             `help:"Disable colored output"`

	Equity  EquityCmd  `cmd:"" help:"Estimate equity between two hands or ranges"`
	Eval    EvalCmd    `cmd:"" help:"Evaluate the best five card hand from 5-7 cards"`
	Range   RangeCmd   `cmd:"" help:"Expand range notation into combos"`
	Preflop PreflopCmd `cmd:"" help:"Rank the 169 starting hands by heads-up equity"`
	Play    PlayCmd    `cmd:"" help:"Play heads-up hands between two random drivers"`
}

// runContext carries shared dependencies into each command's Run method.
type runContext struct {
	out    io.Writer
	cfg    *config.Config
	logger *log.Logger
}

func (c *CLI) setup(out io.Writer) (*runContext, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "potlimit",
	})
	return &runContext{out: out, cfg: cfg, logger: logger}, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("potlimit"),
		kong.Description("Heads-up pot-limit hold'em engine: equity, hand evaluation and play"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	rc, err := cli.setup(os.Stdout)
	ctx.FatalIfErrorf(err)
	err = ctx.Run(rc)
	ctx.FatalIfErrorf(err)
}
