package analysis

import (
	"fmt"
	"strings"

	"github.com/lox/potlimit/poker"
)

// Holding is what a player may hold: either a concrete two card hand or a range.
type Holding struct {
	combo *Combo
	rng   *Range
}

// HandHolding holds exactly the given two cards.
func HandHolding(c1, c2 poker.Card) (Holding, error) {
	c, err := NewCombo(c1, c2)
	if err != nil {
		return Holding{}, err
	}
	return Holding{combo: &c}, nil
}

// ComboHolding holds a concrete combo.
func ComboHolding(c Combo) Holding {
	return Holding{combo: &c}
}

// RangeHolding holds any combo of r.
func RangeHolding(r *Range) Holding {
	return Holding{rng: r}
}

// RandomHolding holds any two cards.
func RandomHolding() Holding {
	return Holding{rng: FullRange()}
}

// ParseHolding reads explicit hole cards ("AhKh", "Ah Kh") as a concrete hand and
// anything else as range notation.
func ParseHolding(s string) (Holding, error) {
	trimmed := strings.Join(strings.Fields(s), "")
	if len(trimmed) == 4 {
		if cards, err := poker.ParseCards(trimmed); err == nil {
			h, err := HandHolding(cards[0], cards[1])
			if err != nil {
				return Holding{}, &poker.ParseError{Input: s, Reason: err.Error()}
			}
			return h, nil
		}
	}
	r, err := ParseRange(s)
	if err != nil {
		return Holding{}, err
	}
	return RangeHolding(r), nil
}

// IsHand reports whether the holding is a concrete hand.
func (h Holding) IsHand() bool { return h.combo != nil }

// IsZero reports whether the holding was never set.
func (h Holding) IsZero() bool { return h.combo == nil && h.rng == nil }

// Dead returns the cards the holding fixes: both hole cards for a hand, none for a range.
func (h Holding) Dead() poker.Hand {
	if h.combo != nil {
		return h.combo.Hand()
	}
	return 0
}

// combos lists the holding's combos that avoid the dead cards.
func (h Holding) combos(dead poker.Hand) []Combo {
	if h.combo != nil {
		if h.combo.Hand().Overlaps(dead) {
			return nil
		}
		return []Combo{*h.combo}
	}
	if h.rng == nil {
		return nil
	}
	out := make([]Combo, 0, h.rng.Len())
	for _, c := range h.rng.Combos() {
		if !c.Hand().Overlaps(dead) {
			out = append(out, c)
		}
	}
	return out
}

type holdingKey struct {
	hand  bool
	combo RangeKey
}

func (h Holding) key() holdingKey {
	if h.combo != nil {
		return holdingKey{hand: true, combo: RangeOf(*h.combo).Key()}
	}
	if h.rng == nil {
		return holdingKey{}
	}
	return holdingKey{combo: h.rng.Key()}
}

func (h Holding) String() string {
	switch {
	case h.combo != nil:
		return h.combo.String()
	case h.rng != nil:
		if h.rng.Len() == TotalCombos {
			return "random"
		}
		return fmt.Sprintf("range(%d combos)", h.rng.Len())
	default:
		return "none"
	}
}
