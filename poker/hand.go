package poker

import (
	"math/bits"
	"strings"
)

// Hand is a set of cards stored as a bitset with the same layout as Card.
type Hand uint64

// NewHand creates a hand from multiple cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard checks if the hand contains a specific card.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// Overlaps reports whether the two hands share any card.
func (h Hand) Overlaps(o Hand) bool {
	return h&o != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// Cards returns the cards in the hand in ascending bit order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for m := uint64(h); m != 0; m &= m - 1 {
		cards = append(cards, Card(m&-m))
	}
	return cards
}

// String renders the cards separated by spaces.
func (h Hand) String() string {
	cards := h.Cards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
