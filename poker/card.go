package poker

import (
	"cmp"
	"math/bits"
	"strings"
)

// Card represents a single card as a bit position in a uint64.
// Layout: [13 spades][13 hearts][13 diamonds][13 clubs], rank two in the lowest bit of each suit.
type Card uint64

// Rank is a card rank from Two (2) to Ace (14).
type Rank uint8

// Suit is one of the four card suits.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

var rankNames = [...]string{
	Two: "Two", Three: "Three", Four: "Four", Five: "Five", Six: "Six", Seven: "Seven",
	Eight: "Eight", Nine: "Nine", Ten: "Ten", Jack: "Jack", Queen: "Queen", King: "King", Ace: "Ace",
}

var rankPlurals = [...]string{
	Two: "Twos", Three: "Threes", Four: "Fours", Five: "Fives", Six: "Sixes", Seven: "Sevens",
	Eight: "Eights", Nine: "Nines", Ten: "Tens", Jack: "Jacks", Queen: "Queens", King: "Kings", Ace: "Aces",
}

// Valid reports whether r is between Two and Ace.
func (r Rank) Valid() bool { return r >= Two && r <= Ace }

// Char returns the single character notation for the rank ("T", "A").
func (r Rank) Char() byte {
	if !r.Valid() {
		return '?'
	}
	return rankChars[r-Two]
}

// Name returns the English name of the rank ("King").
func (r Rank) Name() string {
	if !r.Valid() {
		return "Unknown"
	}
	return rankNames[r]
}

// Plural returns the plural English name of the rank ("Kings").
func (r Rank) Plural() string {
	if !r.Valid() {
		return "Unknown"
	}
	return rankPlurals[r]
}

// Char returns the single character notation for the suit ("h").
func (s Suit) Char() byte {
	if s > Spades {
		return '?'
	}
	return suitChars[s]
}

// ParseRank parses a rank character, case-insensitive.
func ParseRank(b byte) (Rank, bool) {
	i := strings.IndexByte(rankChars, upper(b))
	if i < 0 {
		return 0, false
	}
	return Two + Rank(i), true
}

// ParseSuit parses a suit character, case-insensitive.
func ParseSuit(b byte) (Suit, bool) {
	i := strings.IndexByte(suitChars, lower(b))
	if i < 0 {
		return 0, false
	}
	return Suit(i), true
}

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(1) << (uint(suit)*13 + uint(rank-Two))
}

// CardAt returns the card occupying bit index i (0-51).
func CardAt(i int) Card {
	return Card(1) << uint(i)
}

// Index returns which bit position this card occupies (0-51), or -1 for an invalid card.
func (c Card) Index() int {
	if !c.Valid() {
		return -1
	}
	return bits.TrailingZeros64(uint64(c))
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c != 0 && c&(c-1) == 0 && bits.TrailingZeros64(uint64(c)) < 52
}

// Rank returns the rank of the card.
func (c Card) Rank() Rank {
	if !c.Valid() {
		return 0
	}
	return Two + Rank(c.Index()%13)
}

// Suit returns the suit of the card.
func (c Card) Suit() Suit {
	if !c.Valid() {
		return 0
	}
	return Suit(c.Index() / 13)
}

// String returns the two character representation (e.g., "As", "Th").
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{c.Rank().Char(), c.Suit().Char()})
}

// Compare orders cards by rank and then suit.
func (c Card) Compare(o Card) int {
	if c.Rank() != o.Rank() {
		return cmp.Compare(c.Rank(), o.Rank())
	}
	return cmp.Compare(c.Suit(), o.Suit())
}

// ParseCard parses a string like "As" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, &ParseError{Input: s, Reason: "card must be two characters"}
	}
	rank, ok := ParseRank(s[0])
	if !ok {
		return 0, &ParseError{Input: s, Reason: "invalid rank " + string(s[0])}
	}
	suit, ok := ParseSuit(s[1])
	if !ok {
		return 0, &ParseError{Input: s, Reason: "invalid suit " + string(s[1])}
	}
	return NewCard(rank, suit), nil
}

// MustParseCard parses a card and panics on error. Intended for tests and constants.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a run of cards such as "AhKh", "Ah Kh" or "Ah,Kh".
func ParseCards(s string) ([]Card, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == ',' || r == '\t' {
			return -1
		}
		return r
	}, s)
	if len(clean)%2 != 0 {
		return nil, &ParseError{Input: s, Reason: "odd number of characters"}
	}
	cards := make([]Card, 0, len(clean)/2)
	for i := 0; i < len(clean); i += 2 {
		c, err := ParseCard(clean[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins card strings without separators ("AhKh").
func FormatCards(cards []Card) string {
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(c.String())
	}
	return sb.String()
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
