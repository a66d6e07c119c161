package poker

// Shape describes the structure of a two card starting hand.
type Shape uint8

const (
	ShapePair Shape = iota
	ShapeSuited
	ShapeOffsuit
)

func (s Shape) String() string {
	switch s {
	case ShapePair:
		return "pair"
	case ShapeSuited:
		return "suited"
	default:
		return "offsuit"
	}
}

// Combos returns the number of distinct card combinations for a class of this shape.
func (s Shape) Combos() int {
	switch s {
	case ShapePair:
		return 6
	case ShapeSuited:
		return 4
	default:
		return 12
	}
}

// HoleClass returns the canonical starting hand class ("AKs", "QQ", "T9o") and its shape.
func HoleClass(card1, card2 Card) (string, Shape) {
	big, small := card1.Rank(), card2.Rank()
	if small > big {
		big, small = small, big
	}
	switch {
	case big == small:
		return string([]byte{big.Char(), small.Char()}), ShapePair
	case card1.Suit() == card2.Suit():
		return string([]byte{big.Char(), small.Char(), 's'}), ShapeSuited
	default:
		return string([]byte{big.Char(), small.Char(), 'o'}), ShapeOffsuit
	}
}

// Tier is a coarse preflop strength bucket used for display.
type Tier string

const (
	TierPremium Tier = "Premium"
	TierStrong  Tier = "Strong"
	TierMedium  Tier = "Medium"
	TierWeak    Tier = "Weak"
	TierTrash   Tier = "Trash"
)

// HoleTier buckets hole cards: Premium (JJ+, AK), Strong (TT, AQ, AJ),
// Medium (77-99, suited broadway), Weak (22-66, suited connectors), Trash otherwise.
func HoleTier(card1, card2 Card) Tier {
	big, small := card1.Rank(), card2.Rank()
	if small > big {
		big, small = small, big
	}
	suited := card1.Suit() == card2.Suit()
	pair := big == small

	switch {
	case pair && small >= Jack, big == Ace && small == King:
		return TierPremium
	case pair && small == Ten, big == Ace && (small == Queen || small == Jack):
		return TierStrong
	case pair && small >= Seven, suited && small >= Ten:
		return TierMedium
	case pair, suited && big-small <= 2:
		return TierWeak
	}
	return TierTrash
}
