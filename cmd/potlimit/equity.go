package main

import (
	"context"
	"encoding/json"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/lox/potlimit/poker"
	"github.com/lox/potlimit/sdk/analysis"
)

type EquityCmd struct {
	Hero       string `arg:"" help:"Hero hole cards ('AhKh') or range ('QQ+,AKs')"`
	Villain    string `arg:"" optional:"" help:"Villain hole cards or range; omitted means any two cards"`
	Board      string `short:"b" help:"Board cards (e.g. 'Td7s8h')"`
	Iterations int    `short:"i" help:"Monte Carlo trials (defaults to the configured value)"`
	Seed       *int64 `help:"Random seed for reproducible results"`
	Workers    int    `short:"w" help:"Worker goroutines (defaults to the configured value)"`
	JSON       bool   `help:"Print the result as JSON"`
}

func (c *EquityCmd) Run(rc *runContext) error {
	calc, seed, err := newCalculator(rc, c.Seed, c.Workers)
	if err != nil {
		return err
	}
	board, err := parseBoard(c.Board)
	if err != nil {
		return err
	}

	iterations := c.Iterations
	if iterations <= 0 {
		iterations = rc.cfg.Simulation.Iterations
	}

	res, err := calc.EquityStrings(context.Background(), c.Hero, c.Villain, c.Board, iterations)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(rc.out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	villain := c.Villain
	if strings.TrimSpace(villain) == "" {
		villain = "random"
	}
	lower, upper := res.ConfidenceInterval()

	fmt.Fprintln(rc.out, headerStyle.Render("Equity"))
	fmt.Fprintf(rc.out, "%s vs %s", handStyle.Render(c.Hero), handStyle.Render(villain))
	if len(board) > 0 {
		fmt.Fprintf(rc.out, " on %s", categoryStyle.Render(poker.FormatCards(board)))
	}
	fmt.Fprintln(rc.out)
	fmt.Fprintf(rc.out, "  equity  %s  (95%% CI %.1f%% - %.1f%%)\n",
		winStyle.Render(percent(res.Equity())), lower*100, upper*100)
	fmt.Fprintf(rc.out, "  win     %s\n", winStyle.Render(percent(res.WinRate())))
	fmt.Fprintf(rc.out, "  tie     %s\n", tieStyle.Render(percent(res.TieRate())))
	fmt.Fprintf(rc.out, "  lose    %s\n", lossStyle.Render(percent(res.LossRate())))
	if len(board) >= 3 {
		fmt.Fprintf(rc.out, "  board   %s\n", analysis.AnalyzeBoard(board).Texture)
	}
	if hole, err := poker.ParseCards(c.Hero); err == nil && len(hole) == 2 {
		if draws, err := analysis.DetectDraws(hole, board); err == nil {
			fmt.Fprintf(rc.out, "  draws   %s (%d outs)\n", draws, draws.OutCount())
		}
	}
	fmt.Fprintln(rc.out, dimStyle.Render(fmt.Sprintf("%d trials, seed %d", res.Simulations, seed)))
	return nil
}

// newCalculator builds a calculator from the configuration, letting flags
// override the seed and worker count. A missing seed is drawn at random and
// returned so the run can be repeated.
func newCalculator(rc *runContext, seedFlag *int64, workers int) (*analysis.Calculator, uint64, error) {
	sim := rc.cfg.Simulation
	if workers <= 0 {
		workers = sim.Workers
	}

	var seed uint64
	switch {
	case seedFlag != nil:
		seed = uint64(*seedFlag)
	case sim.Seed != nil:
		seed = uint64(*sim.Seed)
	default:
		seed = rand.Uint64()
	}

	opts := []analysis.CalculatorOption{
		analysis.WithSimulator(analysis.NewSimulator(
			analysis.WithWorkers(workers),
			analysis.WithBatchSize(sim.BatchSize),
			analysis.WithSimulatorLogger(rc.logger),
		)),
		analysis.WithSeed(seed),
		analysis.WithDefaultSimulations(sim.Iterations),
		analysis.WithLogger(rc.logger),
	}
	if sim.CacheSize > 0 {
		cache, err := analysis.NewCache(sim.CacheSize)
		if err != nil {
			return nil, 0, err
		}
		opts = append(opts, analysis.WithCache(cache))
	}
	return analysis.NewCalculator(opts...), seed, nil
}

// parseBoard accepts zero to five cards.
func parseBoard(s string) ([]poker.Card, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	board, err := poker.ParseCards(s)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	if len(board) > 5 {
		return nil, fmt.Errorf("board cannot have more than 5 cards, got %d", len(board))
	}
	return board, nil
}

func percent(f float64) string {
	return fmt.Sprintf("%5.1f%%", f*100)
}
