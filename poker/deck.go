package poker

import (
	"fmt"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// Deck represents a standard 52-card deck dealt from the front.
type Deck struct {
	cards [DeckSize]Card
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates an ordered deck (clubs through spades, two through ace) with an explicit RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// NewShuffledDeck creates a deck and shuffles it once.
func NewShuffledDeck(rng *rand.Rand) *Deck {
	d := NewDeck(rng)
	d.Shuffle()
	return d
}

// NewStackedDeck creates a deck whose first cards are dealt in the given order.
// The remaining cards follow in ordered-deck sequence. Shuffle is a no-op without an RNG.
func NewStackedDeck(top []Card) (*Deck, error) {
	d := &Deck{}
	var seen Hand
	i := 0
	for _, c := range top {
		if !c.Valid() {
			return nil, fmt.Errorf("stacked deck: invalid card at position %d", i)
		}
		if seen.HasCard(c) {
			return nil, fmt.Errorf("stacked deck: duplicate card %s", c)
		}
		seen.AddCard(c)
		d.cards[i] = c
		i++
	}
	for idx := range DeckSize {
		c := orderedCard(idx)
		if seen.HasCard(c) {
			continue
		}
		d.cards[i] = c
		i++
	}
	return d, nil
}

func orderedCard(i int) Card {
	return NewCard(Two+Rank(i%13), Suit(i/13))
}

// Shuffle restarts dealing and permutes the remaining order using Fisher-Yates.
func (d *Deck) Shuffle() {
	d.next = 0
	if d.rng == nil {
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the front of the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, &InsufficientDeckError{Requested: n, Remaining: d.Remaining()}
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne deals a single card.
func (d *Deck) DealOne() (Card, error) {
	if d.next >= len(d.cards) {
		return 0, &InsufficientDeckError{Requested: 1, Remaining: 0}
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// Reset restores the full ordered deck.
func (d *Deck) Reset() {
	d.next = 0
	for i := range d.cards {
		d.cards[i] = orderedCard(i)
	}
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
