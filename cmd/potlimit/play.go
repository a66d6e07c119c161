package main

import (
	"context"
	"encoding/json"
	"fmt"
	rand "math/rand/v2"
	"os"
	"os/signal"
	"strings"

	"github.com/lox/potlimit/game"
	"github.com/lox/potlimit/internal/randutil"
	"github.com/lox/potlimit/internal/statistics"
	"github.com/lox/potlimit/poker"
)

type PlayCmd struct {
	Hands   int      `short:"n" help:"Maximum number of hands to play" default:"10"`
	Seed    *int64   `help:"Seed for the deck and the drivers"`
	Names   []string `help:"The two player names" default:"alice,bob"`
	Passive bool     `help:"Both players only check or call"`
	JSON    bool     `help:"Print the final match state as JSON"`
}

func (c *PlayCmd) Run(rc *runContext) error {
	var seed uint64
	switch {
	case c.Seed != nil:
		seed = uint64(*c.Seed)
	case rc.cfg.Simulation.Seed != nil:
		seed = uint64(*rc.cfg.Simulation.Seed)
	default:
		seed = rand.Uint64()
	}

	if len(c.Names) != 2 {
		return fmt.Errorf("need exactly two player names, got %d", len(c.Names))
	}
	names := [2]string{c.Names[0], c.Names[1]}

	table := rc.cfg.Table
	g, err := game.NewGame(game.GameConfig{
		Names:         names,
		StartingStack: table.StartingStack,
		SmallBlind:    table.SmallBlind,
		BigBlind:      table.BigBlind,
		Seed:          seed,
		Logger:        rc.logger,
	})
	if err != nil {
		return err
	}

	var deciders []game.Decider
	if c.Passive {
		deciders = []game.Decider{game.CheckCallDecider{}, game.CheckCallDecider{}}
	} else {
		// The drivers share a stream separate from the deck's.
		rng := randutil.Stream(seed, 1)
		deciders = []game.Decider{game.NewRandomDecider(rng), game.NewRandomDecider(rng)}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rc.logger.Info("Starting match", "seed", seed, "blinds", fmt.Sprintf("%d/%d", table.SmallBlind, table.BigBlind),
		"stack", table.StartingStack)

	stats := statistics.NewMatch(table.BigBlind)
	for range c.Hands {
		if g.IsOver() {
			break
		}
		if _, err := g.PlayHand(ctx, deciders); err != nil {
			return err
		}
		history := g.HandHistory()
		rec := history[len(history)-1]
		if err := stats.Record(rec); err != nil {
			return err
		}
		if !c.JSON {
			printHand(rc, names, rec)
		}
	}

	if c.JSON {
		enc := json.NewEncoder(rc.out)
		enc.SetIndent("", "  ")
		return enc.Encode(g.Snapshot(-1))
	}

	fmt.Fprintln(rc.out, headerStyle.Render(fmt.Sprintf("After %d hands", g.HandNumber())))
	for seat, name := range names {
		p := stats.Players[seat]
		fmt.Fprintf(rc.out, "  %-8s %6d  %+8.1f bb/100  showdown %+.1f bb  non-showdown %+.1f bb\n",
			name, g.Stack(seat), p.BBPer100(), p.ShowdownBB, p.NonShowdownBB)
	}
	if winner, ok := g.Winner(); ok {
		fmt.Fprintf(rc.out, "%s wins the match\n", winStyle.Render(winner))
	}
	return nil
}

func printHand(rc *runContext, names [2]string, h game.HandRecord) {
	var actions []string
	for _, a := range h.Actions {
		if a.Street == game.Dealing {
			continue
		}
		entry := fmt.Sprintf("%s %s", a.Name, a.Kind)
		if a.Added > 0 {
			entry += fmt.Sprintf(" %d", a.Total)
		}
		actions = append(actions, entry)
	}

	winners := make([]string, len(h.Result.Winners))
	for i, seat := range h.Result.Winners {
		winners[i] = names[seat]
	}

	line := fmt.Sprintf("#%-3d %s  %s", h.HandNumber, dimStyle.Render("button "+h.Dealer),
		categoryStyle.Render(fmt.Sprintf("%-10s", poker.FormatCards(h.Board))))
	if h.Result.Showdown {
		for _, sh := range h.Result.Hands {
			line += fmt.Sprintf("  %s %s (%s)", sh.Name, poker.FormatCards(sh.Cards), sh.Strength.Describe())
		}
	}
	fmt.Fprintln(rc.out, line)
	fmt.Fprintf(rc.out, "     %s\n", dimStyle.Render(strings.Join(actions, ", ")))
	fmt.Fprintf(rc.out, "     %s %s\n", winStyle.Render(strings.Join(winners, " & ")),
		fmt.Sprintf("(%s %d, %s %d)", names[0], h.Stacks[0], names[1], h.Stacks[1]))
}
