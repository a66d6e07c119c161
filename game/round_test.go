package game

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/potlimit/poker"
)

// stackedRound builds a hand with seat 0 on the button. Hole cards are dealt
// big blind first, so the deck is bb1 sb1 bb2 sb2 followed by the board.
func stackedRound(t *testing.T, stacks [2]int, sbHole, bbHole, board string) *Round {
	t.Helper()
	sb, bb := poker.MustParseCards(sbHole), poker.MustParseCards(bbHole)
	top := []poker.Card{bb[0], sb[0], bb[1], sb[1]}
	top = append(top, poker.MustParseCards(board)...)
	deck, err := poker.NewStackedDeck(top)
	require.NoError(t, err)

	players := []*Player{NewPlayer(0, "alice", stacks[0]), NewPlayer(1, "bob", stacks[1])}
	r, err := NewRound(players, 0, 10, 20, deck,
		WithLogger(log.NewWithOptions(io.Discard, log.Options{})), WithHandNumber(1))
	require.NoError(t, err)
	require.NoError(t, r.Start())
	return r
}

// script replays fixed decisions for one seat.
type script struct {
	decisions []Decision
}

func (s *script) Decide(_ context.Context, _ DecisionPoint) (Decision, error) {
	if len(s.decisions) == 0 {
		return Decision{}, errors.New("script exhausted")
	}
	d := s.decisions[0]
	s.decisions = s.decisions[1:]
	return d, nil
}

func TestRoundStartPostsBlinds(t *testing.T) {
	t.Parallel()
	r := stackedRound(t, [2]int{1000, 1000}, "KcKd", "AhAd", "2c7d9hJs3s")

	assert.Equal(t, Preflop, r.Street())
	assert.Equal(t, 30, r.Pot())
	assert.Equal(t, 20, r.CurrentBet())
	assert.Equal(t, 0, r.ToAct(), "button acts first preflop")
	assert.Equal(t, "SB", r.Position(0))
	assert.Equal(t, "BB", r.Position(1))

	alice, bob := r.Player(0), r.Player(1)
	assert.Equal(t, 990, alice.Stack)
	assert.Equal(t, 10, alice.StreetBet)
	assert.Equal(t, 980, bob.Stack)
	assert.Equal(t, "KcKd", poker.FormatCards(alice.HoleCards))
	assert.Equal(t, "AhAd", poker.FormatCards(bob.HoleCards))

	legal := r.LegalActions()
	assert.True(t, legal.Fold)
	assert.False(t, legal.Check)
	require.NotNil(t, legal.Call)
	assert.Equal(t, 10, legal.Call.Amount)
	assert.Equal(t, &RaiseOption{Min: 40, Max: 60}, legal.Raise)

	history := r.History()
	require.Len(t, history, 2)
	assert.Equal(t, "small_blind", history[0].Kind)
	assert.Equal(t, "big_blind", history[1].Kind)

	assert.ErrorIs(t, r.Start(), ErrAlreadyStarted)
}

func TestRoundFoldEndsHand(t *testing.T) {
	t.Parallel()
	r := stackedRound(t, [2]int{1000, 1000}, "7c2d", "AhAd", "")

	require.NoError(t, r.Act(Fold, 0))
	assert.True(t, r.IsComplete())
	assert.Equal(t, Showdown, r.Street())
	assert.Equal(t, -1, r.ToAct())
	assert.Empty(t, r.Board(), "no cards are dealt after a fold")

	res, ok := r.Result()
	require.True(t, ok)
	assert.False(t, res.Showdown)
	assert.Equal(t, []int{1}, res.Winners)
	assert.Equal(t, []int{0, 30}, res.Payouts)
	assert.Equal(t, 990, r.Player(0).Stack)
	assert.Equal(t, 1010, r.Player(1).Stack)

	assert.ErrorIs(t, r.Act(Check, 0), ErrHandComplete)
	assert.ErrorIs(t, r.AdvanceStreet(), ErrHandComplete)
}

func TestRoundCheckDownToShowdown(t *testing.T) {
	t.Parallel()
	r := stackedRound(t, [2]int{1000, 1000}, "KcKd", "AhAd", "2c7d9hJs3s")

	require.NoError(t, r.Act(Call, 0))
	assert.False(t, r.BettingComplete())
	assert.ErrorIs(t, r.AdvanceStreet(), ErrBettingIncomplete)
	assert.Equal(t, 1, r.ToAct(), "big blind has the option")
	require.NoError(t, r.Act(Check, 0))
	require.True(t, r.BettingComplete())

	for _, street := range []Street{Flop, Turn, River} {
		require.NoError(t, r.AdvanceStreet())
		assert.Equal(t, street, r.Street())
		assert.Len(t, r.Board(), street.BoardSize())
		assert.Equal(t, 40, r.Pot(), "pot carries across streets")
		assert.Zero(t, r.CurrentBet())
		assert.Equal(t, 1, r.ToAct(), "big blind acts first after the flop")

		legal := r.LegalActions()
		assert.True(t, legal.Check)
		assert.False(t, legal.Fold)
		assert.Equal(t, &RaiseOption{Min: 20, Max: 40}, legal.Raise)

		require.NoError(t, r.Act(Check, 0))
		require.NoError(t, r.Act(Check, 0))
	}
	require.NoError(t, r.AdvanceStreet())

	res, ok := r.Result()
	require.True(t, ok)
	assert.True(t, res.Showdown)
	assert.Equal(t, []int{1}, res.Winners)
	assert.Equal(t, []int{0, 40}, res.Payouts)
	require.Len(t, res.Hands, 2)
	assert.Equal(t, poker.Pair, res.Hands[1].Strength.Category())
	assert.Equal(t, 980, r.Player(0).Stack)
	assert.Equal(t, 1020, r.Player(1).Stack)
	assert.Equal(t, "2c7d9hJs3s", poker.FormatCards(r.Board()))
}

func TestRoundSplitPot(t *testing.T) {
	t.Parallel()
	r := stackedRound(t, [2]int{1000, 1000}, "2c3d", "4h5h", "AsKsQsJsTs")
	deciders := []Decider{CheckCallDecider{}, CheckCallDecider{}}
	res, err := r.Run(context.Background(), deciders)
	require.NoError(t, err)

	assert.True(t, res.Showdown)
	assert.Equal(t, []int{0, 1}, res.Winners)
	assert.Equal(t, []int{20, 20}, res.Payouts)
	assert.Equal(t, 1000, r.Player(0).Stack)
	assert.Equal(t, 1000, r.Player(1).Stack)
	assert.Equal(t, poker.RoyalFlush, res.Hands[0].Strength.Category())
}

func TestRoundAllInRunsOutBoard(t *testing.T) {
	t.Parallel()
	r := stackedRound(t, [2]int{100, 300}, "AhAd", "KcKd", "2c7d9hJs3s")

	deciders := []Decider{
		&script{decisions: []Decision{{Action: Raise, Amount: 60}, {Action: Call}}},
		&script{decisions: []Decision{{Action: Raise, Amount: 180}}},
	}
	res, err := r.Run(context.Background(), deciders)
	require.NoError(t, err)

	assert.Len(t, r.Board(), 5, "board runs out after the all-in")
	assert.True(t, res.Showdown)
	assert.Equal(t, []int{0}, res.Winners)
	require.Len(t, res.Pots, 2)
	assert.Equal(t, 200, res.Pots[0].Amount)
	assert.Equal(t, []int{1}, res.Pots[1].Eligible, "uncalled raise goes back")
	assert.Equal(t, []int{200, 80}, res.Payouts)
	assert.Equal(t, 200, r.Player(0).Stack)
	assert.Equal(t, 200, r.Player(1).Stack)

	kinds := []string{}
	for _, a := range r.History() {
		kinds = append(kinds, a.Kind)
	}
	assert.Equal(t, []string{"small_blind", "big_blind", "raise", "raise", "call"}, kinds)
}

func TestRoundShortBlindAllIn(t *testing.T) {
	t.Parallel()
	r := stackedRound(t, [2]int{5, 1000}, "AhAd", "KcKd", "2c7d9hJs3s")

	assert.True(t, r.Player(0).AllIn)
	assert.Equal(t, -1, r.ToAct(), "nobody has a decision left")
	assert.True(t, r.BettingComplete())

	res, err := r.Run(context.Background(), []Decider{CheckCallDecider{}, CheckCallDecider{}})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 15}, res.Payouts)
	assert.Equal(t, 10, r.Player(0).Stack)
	assert.Equal(t, 995, r.Player(1).Stack)
}

func TestRoundRejectsIllegalActions(t *testing.T) {
	t.Parallel()
	r := stackedRound(t, [2]int{1000, 1000}, "KcKd", "AhAd", "2c7d9hJs3s")

	var aerr *InvalidActionError
	err := r.Act(Check, 0)
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, ViolationNotLegal, aerr.Violation)

	err = r.Act(Raise, 61)
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, ViolationAboveMax, aerr.Violation)

	err = r.Act(Raise, 30)
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, ViolationBelowMin, aerr.Violation)

	err = r.ActFor(1, Call, 0)
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, ViolationOutOfTurn, aerr.Violation)

	assert.Equal(t, 30, r.Pot(), "rejected actions leave the hand untouched")
	assert.Equal(t, 0, r.ToAct())
	assert.Len(t, r.History(), 2)
}

func TestRoundRunReturnsDeciderErrors(t *testing.T) {
	t.Parallel()
	r := stackedRound(t, [2]int{1000, 1000}, "KcKd", "AhAd", "")
	_, err := r.Run(context.Background(), []Decider{&script{}, &script{}})
	assert.ErrorContains(t, err, "script exhausted")

	bad := DeciderFunc(func(context.Context, DecisionPoint) (Decision, error) {
		return Decision{Action: Raise, Amount: 10_000}, nil
	})
	r = stackedRound(t, [2]int{1000, 1000}, "KcKd", "AhAd", "")
	_, err = r.Run(context.Background(), []Decider{bad, bad})
	var aerr *InvalidActionError
	assert.True(t, errors.As(err, &aerr))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r = stackedRound(t, [2]int{1000, 1000}, "KcKd", "AhAd", "")
	_, err = r.Run(ctx, []Decider{CheckCallDecider{}, CheckCallDecider{}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRoundValidation(t *testing.T) {
	t.Parallel()
	deck := poker.NewDeck(nil)
	two := func() []*Player { return []*Player{NewPlayer(0, "a", 100), NewPlayer(1, "b", 100)} }

	_, err := NewRound(two()[:1], 0, 10, 20, deck)
	assert.ErrorIs(t, err, ErrHeadsUpOnly)
	_, err = NewRound(two(), 2, 10, 20, deck)
	assert.Error(t, err)
	_, err = NewRound(two(), 0, 20, 10, deck)
	assert.Error(t, err)
	_, err = NewRound(two(), 0, 10, 20, nil)
	assert.Error(t, err)
	_, err = NewRound([]*Player{NewPlayer(0, "a", 100), NewPlayer(1, "b", 0)}, 0, 10, 20, deck)
	assert.Error(t, err)

	r, err := NewRound(two(), 1, 10, 20, deck)
	require.NoError(t, err)
	assert.Equal(t, Dealing, r.Street())
	assert.ErrorIs(t, r.Act(Call, 0), ErrNotStarted)
	assert.ErrorIs(t, r.AdvanceStreet(), ErrNotStarted)
}

func TestRoundSnapshot(t *testing.T) {
	t.Parallel()
	r := stackedRound(t, [2]int{1000, 1000}, "KcKd", "AhAd", "2c7d9hJs3s")

	snap := r.Snapshot(0)
	assert.Equal(t, "alice", snap.Dealer)
	assert.Equal(t, "preflop", snap.Street)
	assert.Equal(t, 30, snap.Pot)
	assert.Equal(t, "alice", snap.ToAct)
	assert.Equal(t, []string{"Kc", "Kd"}, snap.Players[0].HoleCards)
	assert.Nil(t, snap.Players[1].HoleCards, "opponent cards stay hidden")
	assert.False(t, snap.Complete)

	_, err := r.Run(context.Background(), []Decider{CheckCallDecider{}, CheckCallDecider{}})
	require.NoError(t, err)

	snap = r.Snapshot(-1)
	assert.True(t, snap.Complete)
	assert.Equal(t, []string{"Ah", "Ad"}, snap.Players[1].HoleCards, "showdown reveals hands")
	assert.Equal(t, []string{"bob"}, snap.Winners)
	assert.Len(t, snap.Board, 5)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, field := range []string{"hand_number", "dealer", "street", "pot", "current_bet", "community_cards", "players", "is_complete"} {
		assert.Contains(t, decoded, field)
	}
}

func TestStreetOrder(t *testing.T) {
	t.Parallel()
	s := Dealing
	var seen []Street
	for s != Showdown {
		s = s.Next()
		seen = append(seen, s)
	}
	assert.Equal(t, []Street{Preflop, Flop, Turn, River, Showdown}, seen)
	assert.Equal(t, Showdown, Showdown.Next())
	assert.Equal(t, 3, Flop.CardsDealt())
	assert.Equal(t, 1, River.CardsDealt())
	assert.False(t, Showdown.IsBetting())
}
