package poker

import (
	"errors"
	"testing"

	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/potlimit/internal/randutil"
)

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		category Category
		describe string
	}{
		{"royal flush", "AsKsQsJsTs", RoyalFlush, "Royal Flush"},
		{"straight flush", "9h8h7h6h5h", StraightFlush, "Straight Flush, Nine high"},
		{"steel wheel", "5d4d3d2dAd", StraightFlush, "Straight Flush, Five high"},
		{"quads", "KcKdKhKs2c", FourOfAKind, "Four of a Kind, Kings"},
		{"full house", "KcKdKhTsTc", FullHouse, "Full House, Kings over Tens"},
		{"flush", "Ah9h7h4h2h", Flush, "Flush, Ace high"},
		{"broadway", "AsKdQhJcTs", Straight, "Straight, Ace high"},
		{"wheel", "As2d3h4c5s", Straight, "Straight, Five high"},
		{"trips", "QcQdQh9s2c", ThreeOfAKind, "Three of a Kind, Queens"},
		{"two pair", "JcJd4h4s9c", TwoPair, "Two Pair, Jacks and Fours"},
		{"pair", "AcAd9h7s2c", Pair, "Pair of Aces"},
		{"high card", "Ac9d7h4s2c", HighCard, "Ace high"},
		{"seven card best five", "AsKsQsJsTs2c3d", RoyalFlush, "Royal Flush"},
		{"six card full house", "7c7d7h2s2c9h", FullHouse, "Full House, Sevens over Twos"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := Evaluate(MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.category, s.Category())
			assert.Equal(t, tt.describe, s.Describe())
		})
	}
}

func TestEvaluateTiebreakers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  []Rank
	}{
		{"KcKdKhKs2c", []Rank{King, Two}},
		{"KcKdKhTsTc", []Rank{King, Ten}},
		{"Ah9h7h4h2h", []Rank{Ace, Nine, Seven, Four, Two}},
		{"As2d3h4c5s", []Rank{Five}},
		{"QcQdQh9s2c", []Rank{Queen, Nine, Two}},
		{"JcJd4h4s9c", []Rank{Jack, Four, Nine}},
		{"AcAd9h7s2c", []Rank{Ace, Nine, Seven, Two}},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			t.Parallel()
			s := MustEvaluate(MustParseCards(tt.cards))
			assert.Equal(t, tt.want, s.Tiebreakers())
		})
	}
}

func TestEvaluateInvalid(t *testing.T) {
	t.Parallel()
	for _, cards := range []string{"AsKs", "AsKsQsJs", "AsKsQsJsTs9s8s7s", "AsAsQsJsTs"} {
		_, err := Evaluate(MustParseCards(cards))
		var herr *InvalidHandError
		assert.True(t, errors.As(err, &herr), "cards %s: %v", cards, err)
	}
}

func TestCompareOrdering(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b string
		want Outcome
	}{
		{"wheel loses to six high straight", "As2d3h4c5s", "2s3d4h5c6s", WinB},
		{"ace high straight flush beats king high", "AsKsQsJsTs", "KhQhJhTh9h", WinA},
		{"royal flushes tie", "AsKsQsJsTs", "AhKhQhJhTh", Tie},
		{"flush beats straight", "Ah9h7h4h2h", "AsKdQhJcTs", WinA},
		{"kicker decides pair", "AcAd9h7s3c", "AhAs9c7d2c", WinA},
		{"flush compares all five", "Ah9h7h4h2h", "As9s7s4s3s", WinB},
		{"board plays", "AsKdQh2c3d7h8s", "AcKcQd2h3s7c8d", Tie},
		{"second pair decides", "KcKd8h8s2c", "KhKs7c7d2d", WinA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Compare(MustParseCards(tt.a), MustParseCards(tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			reverse, err := Compare(MustParseCards(tt.b), MustParseCards(tt.a))
			require.NoError(t, err)
			assert.Equal(t, -tt.want, reverse)
		})
	}
}

func TestEvaluateOrderInvariant(t *testing.T) {
	t.Parallel()
	rng := randutil.New(5)
	for range 200 {
		deck := NewShuffledDeck(rng)
		cards, err := deck.Deal(7)
		require.NoError(t, err)
		want := MustEvaluate(cards)

		shuffled := append([]Card(nil), cards...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, MustEvaluate(shuffled))
	}
}

func TestEvaluateDoesNotAllocate(t *testing.T) {
	hands := [][]Card{
		MustParseCards("AsKsQsJsTs2c3d"),
		MustParseCards("9c9d9h4s4d2c3d"),
		MustParseCards("7c7d2h2s5c5dKh"),
		MustParseCards("Ac3d8h9sJd"),
	}
	for _, cards := range hands {
		allocs := testing.AllocsPerRun(100, func() {
			_ = MustEvaluate(cards)
		})
		assert.Zero(t, allocs, "evaluating %s", FormatCards(cards))
	}
}

func BenchmarkEvaluate7(b *testing.B) {
	cards := MustParseCards("Ah7c2d9s9hKdTc")
	b.ReportAllocs()
	for b.Loop() {
		_ = MustEvaluate(cards)
	}
}

func TestFindWinners(t *testing.T) {
	t.Parallel()
	board := MustParseCards("2c7d9hJsQh")
	with := func(hole string) []Card {
		return append(MustParseCards(hole), board...)
	}

	winners, err := FindWinners([]Entry{
		{ID: "alice", Cards: with("AhKh")},
		{ID: "bob", Cards: with("AsKd")},
		{ID: "carol", Cards: with("3c4d")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, winners)

	winners, err = FindWinners([]Entry{
		{ID: "alice", Cards: with("AhKh")},
		{ID: "bob", Cards: with("QcQs")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, winners)

	_, err = FindWinners([]Entry{{ID: "short", Cards: MustParseCards("AhKh")}})
	assert.Error(t, err)
}

func TestStrengthFraction(t *testing.T) {
	t.Parallel()
	low, err := StrengthFraction(MustParseCards("7c5d4h3s2c"))
	require.NoError(t, err)
	high, err := StrengthFraction(MustParseCards("AsKsQsJsTs"))
	require.NoError(t, err)
	mid, err := StrengthFraction(MustParseCards("KcKdKhTsTc"))
	require.NoError(t, err)

	assert.Greater(t, low, 0.0)
	assert.Less(t, low, mid)
	assert.Less(t, mid, high)
	assert.InDelta(t, 1.0, high, 1e-9)
}

// The paulhankin evaluator serves as an independent oracle for hand ordering.
func toOracle(t *testing.T, c Card) ph.Card {
	t.Helper()
	r := ph.Rank(c.Rank())
	if c.Rank() == Ace {
		r = 1
	}
	oc, err := ph.MakeCard(ph.Suit(c.Suit()), r)
	require.NoError(t, err)
	return oc
}

func oracleEval7(t *testing.T, cards []Card) int16 {
	t.Helper()
	var arr [7]ph.Card
	for i, c := range cards {
		arr[i] = toOracle(t, c)
	}
	return ph.Eval7(&arr)
}

func TestEvaluateAgreesWithOracle(t *testing.T) {
	t.Parallel()
	rng := randutil.New(2024)
	deck := NewDeck(rng)
	for range 2000 {
		deck.Shuffle()
		cards, err := deck.Deal(14)
		require.NoError(t, err)
		a, b := cards[:7], cards[7:]

		ours := MustEvaluate(a).Compare(MustEvaluate(b))
		theirs := sign(int(oracleEval7(t, a)) - int(oracleEval7(t, b)))
		require.Equal(t, theirs, ours, "%s vs %s", FormatCards(a), FormatCards(b))
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
