package analysis

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/potlimit/poker"
)

// PreflopHand is one of the 169 starting hand classes and its heads-up equity.
type PreflopHand struct {
	Class  string // e.g. "AA", "AKs", "72o"
	Shape  poker.Shape
	Tier   poker.Tier
	Combos int
	Equity float64 // equity against any two cards
	Result EquityResult
}

// PreflopTable holds heads-up equities for every starting hand class, best first.
type PreflopTable struct {
	Hands  []PreflopHand
	lookup map[string]int
}

// GeneratePreflopTable samples each class against a random hand with simulations trials.
// The calculator's seed makes the table reproducible.
func GeneratePreflopTable(ctx context.Context, calc *Calculator, simulations int) (*PreflopTable, error) {
	classes := FullRange().Classes()
	table := &PreflopTable{
		Hands:  make([]PreflopHand, 0, len(classes)),
		lookup: make(map[string]int, len(classes)),
	}

	for _, cc := range classes {
		r, err := ParseRange(cc.Class)
		if err != nil {
			return nil, err
		}
		res, err := calc.EquityVsRandom(ctx, RangeHolding(r), nil, simulations)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cc.Class, err)
		}
		sample := r.Combos()[0]
		_, shape := poker.HoleClass(sample.High, sample.Low)
		table.Hands = append(table.Hands, PreflopHand{
			Class:  cc.Class,
			Shape:  shape,
			Tier:   poker.HoleTier(sample.High, sample.Low),
			Combos: cc.Combos,
			Equity: res.Equity(),
			Result: res,
		})
	}

	slices.SortStableFunc(table.Hands, func(a, b PreflopHand) int {
		switch {
		case a.Equity > b.Equity:
			return -1
		case a.Equity < b.Equity:
			return 1
		default:
			return 0
		}
	})
	for i, h := range table.Hands {
		table.lookup[h.Class] = i
	}
	return table, nil
}

// Lookup returns the entry for a class ("AKs") or concrete hole cards ("AhKh").
func (t *PreflopTable) Lookup(s string) (PreflopHand, bool) {
	class := strings.TrimSpace(s)
	if cards, err := poker.ParseCards(class); err == nil && len(cards) == 2 {
		class, _ = poker.HoleClass(cards[0], cards[1])
	}
	i, ok := t.lookup[class]
	if !ok {
		return PreflopHand{}, false
	}
	return t.Hands[i], true
}

// Percentile returns the fraction of all combos that rank at or above class, so
// "AA" is about 0.5% and the worst class is 1.0.
func (t *PreflopTable) Percentile(s string) (float64, bool) {
	h, ok := t.Lookup(s)
	if !ok {
		return 0, false
	}
	combos := 0
	for _, other := range t.Hands {
		combos += other.Combos
		if other.Class == h.Class {
			break
		}
	}
	return float64(combos) / TotalCombos, true
}

// Top returns the best n classes.
func (t *PreflopTable) Top(n int) []PreflopHand {
	if n <= 0 || n > len(t.Hands) {
		n = len(t.Hands)
	}
	return t.Hands[:n]
}
