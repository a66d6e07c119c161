package main

import (
	"fmt"
	"strings"

	"github.com/lox/potlimit/poker"
	"github.com/lox/potlimit/sdk/analysis"
)

type EvalCmd struct {
	Cards []string `arg:"" help:"Five to seven cards, hole cards first, e.g. 'AhKh QhJhTh 2c 3d'"`
}

func (c *EvalCmd) Run(rc *runContext) error {
	cards, err := poker.ParseCards(strings.Join(c.Cards, ""))
	if err != nil {
		return err
	}
	strength, err := poker.Evaluate(cards)
	if err != nil {
		return err
	}

	fmt.Fprintln(rc.out, handStyle.Render(poker.FormatCards(cards)))
	fmt.Fprintf(rc.out, "  category  %s\n", categoryStyle.Render(strength.Category().String()))
	fmt.Fprintf(rc.out, "  hand      %s\n", strength.Describe())
	fmt.Fprintf(rc.out, "  strength  %.4f\n", strength.Fraction())
	if len(cards) < 7 {
		// The first two cards are hole cards with a flop or turn to come.
		board := cards[2:]
		fmt.Fprintf(rc.out, "  board     %s\n", analysis.AnalyzeBoard(board).Texture)
		if draws, err := analysis.DetectDraws(cards[:2], board); err == nil {
			fmt.Fprintf(rc.out, "  draws     %s (%d outs)\n", draws, draws.OutCount())
		}
	}
	class, _ := poker.HoleClass(cards[0], cards[1])
	fmt.Fprintln(rc.out, dimStyle.Render(fmt.Sprintf("  hole %s (%s)", class, poker.HoleTier(cards[0], cards[1]))))
	return nil
}
