package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/lox/potlimit/sdk/analysis"
)

type PreflopCmd struct {
	Iterations int    `short:"i" help:"Trials per starting hand class" default:"2000"`
	Top        int    `short:"n" help:"Show only the best N classes (0 for all)" default:"20"`
	Hand       string `help:"Show one class or hole cards ('AKs', 'AhKd')"`
	Seed       *int64 `help:"Random seed for reproducible results"`
}

func (c *PreflopCmd) Run(rc *runContext) error {
	calc, seed, err := newCalculator(rc, c.Seed, 0)
	if err != nil {
		return err
	}
	rc.logger.Info("Generating heads-up preflop table", "classes", 169, "trials", c.Iterations, "seed", seed)
	table, err := analysis.GeneratePreflopTable(context.Background(), calc, c.Iterations)
	if err != nil {
		return err
	}

	if c.Hand != "" {
		h, ok := table.Lookup(c.Hand)
		if !ok {
			return fmt.Errorf("unknown starting hand %q", c.Hand)
		}
		pct, _ := table.Percentile(c.Hand)
		fmt.Fprintf(rc.out, "%s  %s vs random, top %.1f%% of hands (%s)\n",
			handStyle.Render(h.Class), winStyle.Render(percent(h.Equity)), pct*100, h.Tier)
		return nil
	}

	w := tabwriter.NewWriter(rc.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCLASS\tEQUITY\tTIER\tCOMBOS")
	for i, h := range table.Top(c.Top) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", i+1, h.Class, percent(h.Equity), h.Tier, h.Combos)
	}
	return w.Flush()
}
