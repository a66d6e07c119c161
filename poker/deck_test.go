package poker

import (
	"errors"
	"testing"

	"github.com/lox/potlimit/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckDealsUniqueCards(t *testing.T) {
	t.Parallel()
	deck := NewShuffledDeck(randutil.New(42))
	require.Equal(t, DeckSize, deck.Remaining())

	var seen Hand
	for range DeckSize {
		c, err := deck.DealOne()
		require.NoError(t, err)
		require.False(t, seen.HasCard(c), "duplicate card %s", c)
		seen.AddCard(c)
	}
	assert.Equal(t, 0, deck.Remaining())

	_, err := deck.DealOne()
	var derr *InsufficientDeckError
	assert.True(t, errors.As(err, &derr))
}

func TestDeckDealInsufficient(t *testing.T) {
	t.Parallel()
	deck := NewDeck(randutil.New(1))
	_, err := deck.Deal(50)
	require.NoError(t, err)

	_, err = deck.Deal(3)
	var derr *InsufficientDeckError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, 3, derr.Requested)
	assert.Equal(t, 2, derr.Remaining)
	assert.Equal(t, 2, deck.Remaining(), "failed deal must not consume cards")
}

func TestDeckResetRestoresOrder(t *testing.T) {
	t.Parallel()
	deck := NewShuffledDeck(randutil.New(7))
	_, err := deck.Deal(10)
	require.NoError(t, err)

	deck.Reset()
	assert.Equal(t, DeckSize, deck.Remaining())
	first, err := deck.Deal(3)
	require.NoError(t, err)
	assert.Equal(t, "2c3c4c", FormatCards(first))
}

func TestDeckShuffleIsDeterministic(t *testing.T) {
	t.Parallel()
	a := NewShuffledDeck(randutil.New(99))
	b := NewShuffledDeck(randutil.New(99))
	ca, err := a.Deal(DeckSize)
	require.NoError(t, err)
	cb, err := b.Deal(DeckSize)
	require.NoError(t, err)
	assert.Equal(t, ca, cb)

	c := NewShuffledDeck(randutil.New(100))
	cc, err := c.Deal(DeckSize)
	require.NoError(t, err)
	assert.NotEqual(t, ca, cc)
}

func TestStackedDeck(t *testing.T) {
	t.Parallel()
	deck, err := NewStackedDeck(MustParseCards("AsKs2c"))
	require.NoError(t, err)
	top, err := deck.Deal(4)
	require.NoError(t, err)
	assert.Equal(t, "AsKs2c3c", FormatCards(top))

	_, err = NewStackedDeck(MustParseCards("AsAs"))
	assert.Error(t, err)
}
