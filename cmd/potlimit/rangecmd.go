package main

import (
	"fmt"
	"strings"

	"github.com/lox/potlimit/poker"
	"github.com/lox/potlimit/sdk/analysis"
)

type RangeCmd struct {
	Notation string `arg:"" help:"Range notation, e.g. 'QQ+,AKs,T9s-76s'"`
	Dead     string `short:"d" help:"Cards removed from the range (board or known hands)"`
	List     bool   `short:"l" help:"List every combo"`
}

func (c *RangeCmd) Run(rc *runContext) error {
	r, err := analysis.ParseRange(c.Notation)
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Dead) != "" {
		dead, err := poker.ParseCards(c.Dead)
		if err != nil {
			return fmt.Errorf("dead cards: %w", err)
		}
		r = r.RemoveBlockers(dead...)
	}

	fmt.Fprintf(rc.out, "%s  %d combos (%.1f%% of hands)\n",
		headerStyle.Render(c.Notation), r.Len(), float64(r.Len())*100/analysis.TotalCombos)
	for _, cc := range r.Classes() {
		fmt.Fprintf(rc.out, "  %s %s\n", handStyle.Render(fmt.Sprintf("%-4s", cc.Class)), dimStyle.Render(fmt.Sprintf("%2d", cc.Combos)))
	}
	if c.List {
		combos := r.Combos()
		names := make([]string, len(combos))
		for i, combo := range combos {
			names[i] = combo.String()
		}
		fmt.Fprintln(rc.out, strings.Join(names, " "))
	}
	return nil
}
