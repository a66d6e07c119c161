// Package game implements heads-up pot-limit hold'em betting: the legal action
// rules, a per-street betting state, the hand state machine and a multi-hand game.
package game

// Street is the phase of a hand. A hand only ever moves forward.
type Street int

const (
	Dealing Street = iota
	Preflop
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	switch s {
	case Dealing:
		return "dealing"
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// Next returns the following street. Showdown is terminal.
func (s Street) Next() Street {
	if s >= Showdown {
		return Showdown
	}
	return s + 1
}

// IsBetting reports whether players act on this street.
func (s Street) IsBetting() bool {
	return s >= Preflop && s <= River
}

// CardsDealt is the number of community cards dealt on entering the street.
func (s Street) CardsDealt() int {
	switch s {
	case Flop:
		return 3
	case Turn, River:
		return 1
	default:
		return 0
	}
}

// BoardSize is the number of community cards visible during the street.
func (s Street) BoardSize() int {
	switch s {
	case Flop:
		return 3
	case Turn:
		return 4
	case River, Showdown:
		return 5
	default:
		return 0
	}
}
