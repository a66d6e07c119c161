package poker

import (
	"cmp"
	"fmt"
)

// Category enumerates the classes of poker hands ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = [...]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (c Category) String() string {
	if int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// HandStrength is a totally ordered hand value. Higher values are stronger.
//
// Bits 20-23 hold the category and bits 0-19 hold up to five tiebreak ranks,
// most significant first, so category always dominates tiebreakers. A royal
// flush is stored as an ace-high straight flush.
type HandStrength uint32

const (
	categoryShift = 20
	maxStrength   = HandStrength(StraightFlush)<<categoryShift | HandStrength(Ace)<<16
)

func newStrength(cat Category, ranks ...Rank) HandStrength {
	s := HandStrength(cat) << categoryShift
	for i, r := range ranks {
		s |= HandStrength(r) << (16 - 4*i)
	}
	return s
}

// Category returns the hand class, reporting RoyalFlush for an ace-high straight flush.
func (s HandStrength) Category() Category {
	cat := Category(s >> categoryShift)
	if cat == StraightFlush && s.top() == Ace {
		return RoyalFlush
	}
	return cat
}

func (s HandStrength) top() Rank {
	return Rank(s >> 16 & 0xF)
}

// Tiebreakers returns the ranks that order hands within a category.
func (s HandStrength) Tiebreakers() []Rank {
	out := make([]Rank, 0, 5)
	for i := range 5 {
		r := Rank(s >> (16 - 4*i) & 0xF)
		if r == 0 {
			break
		}
		out = append(out, r)
	}
	return out
}

// Compare returns -1, 0 or 1 as s is weaker than, equal to or stronger than o.
func (s HandStrength) Compare(o HandStrength) int {
	return cmp.Compare(s, o)
}

// String returns the category name.
func (s HandStrength) String() string {
	return s.Category().String()
}

// Fraction maps the strength monotonically into [0, 1].
func (s HandStrength) Fraction() float64 {
	return float64(s) / float64(maxStrength)
}

// Describe renders a human readable hand description such as "Full House, Kings over Tens".
func (s HandStrength) Describe() string {
	tb := s.Tiebreakers()
	at := func(i int) Rank {
		if i < len(tb) {
			return tb[i]
		}
		return 0
	}
	switch s.Category() {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s high", at(0).Name())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", at(0).Plural())
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", at(0).Plural(), at(1).Plural())
	case Flush:
		return fmt.Sprintf("Flush, %s high", at(0).Name())
	case Straight:
		return fmt.Sprintf("Straight, %s high", at(0).Name())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", at(0).Plural())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", at(0).Plural(), at(1).Plural())
	case Pair:
		return fmt.Sprintf("Pair of %s", at(0).Plural())
	default:
		return fmt.Sprintf("%s high", at(0).Name())
	}
}

// comboTables holds the index subsets of size five for hands of five, six and seven cards.
var comboTables = func() map[int][][5]uint8 {
	tables := make(map[int][][5]uint8, 3)
	for n := 5; n <= 7; n++ {
		var subsets [][5]uint8
		var cur [5]uint8
		var walk func(start, depth int)
		walk = func(start, depth int) {
			if depth == 5 {
				subsets = append(subsets, cur)
				return
			}
			for i := start; i < n; i++ {
				cur[depth] = uint8(i)
				walk(i+1, depth+1)
			}
		}
		walk(0, 0)
		tables[n] = subsets
	}
	return tables
}()

// Evaluate returns the strength of the best five card hand contained in cards.
// Between five and seven distinct cards are accepted.
func Evaluate(cards []Card) (HandStrength, error) {
	if err := checkCards(cards); err != nil {
		return 0, err
	}
	var best HandStrength
	var five [5]Card
	for _, idx := range comboTables[len(cards)] {
		for i, j := range idx {
			five[i] = cards[j]
		}
		if s := evaluate5(five); s > best {
			best = s
		}
	}
	return best, nil
}

// MustEvaluate evaluates cards and panics on invalid input.
func MustEvaluate(cards []Card) HandStrength {
	s, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return s
}

func checkCards(cards []Card) error {
	n := len(cards)
	if n < 5 || n > 7 {
		return &InvalidHandError{Count: n, Reason: "need between 5 and 7 cards"}
	}
	var seen Hand
	for _, c := range cards {
		if !c.Valid() {
			return &InvalidHandError{Count: n, Reason: "invalid card"}
		}
		if seen.HasCard(c) {
			return &InvalidHandError{Count: n, Reason: "duplicate card " + c.String()}
		}
		seen.AddCard(c)
	}
	return nil
}

func evaluate5(cards [5]Card) HandStrength {
	var counts [Ace + 1]uint8
	var rankMask uint16
	flush := true
	for i, c := range cards {
		r := c.Rank()
		counts[r]++
		rankMask |= 1 << r
		if i > 0 && c.Suit() != cards[0].Suit() {
			flush = false
		}
	}

	straightHigh := straightHighCard(rankMask)

	// Ranks ordered by multiplicity then rank, both descending.
	var ranks [5]Rank
	var mult [5]uint8
	n := 0
	for count := uint8(4); count >= 1; count-- {
		for r := Ace; r >= Two; r-- {
			if counts[r] == count {
				ranks[n], mult[n] = r, count
				n++
			}
		}
	}
	kickers := ranks[:n]

	switch {
	case flush && straightHigh != 0:
		return newStrength(StraightFlush, straightHigh)
	case mult[0] == 4:
		return newStrength(FourOfAKind, kickers...)
	case mult[0] == 3 && mult[1] == 2:
		return newStrength(FullHouse, kickers...)
	case flush:
		return newStrength(Flush, kickers...)
	case straightHigh != 0:
		return newStrength(Straight, straightHigh)
	case mult[0] == 3:
		return newStrength(ThreeOfAKind, kickers...)
	case mult[0] == 2 && mult[1] == 2:
		return newStrength(TwoPair, kickers...)
	case mult[0] == 2:
		return newStrength(Pair, kickers...)
	default:
		return newStrength(HighCard, kickers...)
	}
}

// straightHighCard returns the top rank of a five rank straight in mask, or 0.
// The wheel (A-2-3-4-5) plays with Five high.
func straightHighCard(mask uint16) Rank {
	for high := Ace; high >= Six; high-- {
		run := uint16(0x1F) << (high - 4)
		if mask&run == run {
			return high
		}
	}
	wheel := uint16(1)<<Ace | uint16(0xF)<<Two
	if mask&wheel == wheel {
		return Five
	}
	return 0
}

// Outcome is the result of comparing two hands.
type Outcome int

const (
	WinB Outcome = -1
	Tie  Outcome = 0
	WinA Outcome = 1
)

func (o Outcome) String() string {
	switch o {
	case WinA:
		return "win_a"
	case WinB:
		return "win_b"
	default:
		return "tie"
	}
}

// Compare evaluates both card sets and reports which is stronger.
func Compare(a, b []Card) (Outcome, error) {
	sa, err := Evaluate(a)
	if err != nil {
		return Tie, err
	}
	sb, err := Evaluate(b)
	if err != nil {
		return Tie, err
	}
	return Outcome(sa.Compare(sb)), nil
}

// Entry identifies a card set competing in FindWinners.
type Entry struct {
	ID    string
	Cards []Card
}

// FindWinners returns the ids of every entry holding the strongest hand, in input order.
func FindWinners(entries []Entry) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	strengths := make([]HandStrength, len(entries))
	var best HandStrength
	for i, e := range entries {
		s, err := Evaluate(e.Cards)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		strengths[i] = s
		best = max(best, s)
	}
	var winners []string
	for i, e := range entries {
		if strengths[i] == best {
			winners = append(winners, e.ID)
		}
	}
	return winners, nil
}

// StrengthFraction evaluates cards and maps the result into [0, 1].
func StrengthFraction(cards []Card) (float64, error) {
	s, err := Evaluate(cards)
	if err != nil {
		return 0, err
	}
	return s.Fraction(), nil
}
