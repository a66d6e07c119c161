package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/lox/potlimit/poker"
)

// ActionRecord is one entry in a hand's action history.
type ActionRecord struct {
	Street Street
	Seat   int
	Name   string
	Kind   string // "small_blind", "big_blind" or an Action name
	Added  int    // chips moved into the pot
	Total  int    // the player's street total afterwards
}

// ShowdownHand is a hand revealed at showdown.
type ShowdownHand struct {
	Seat     int
	Name     string
	Cards    []poker.Card
	Strength poker.HandStrength
}

// PotResult records how one pot was awarded.
type PotResult struct {
	Amount   int
	Eligible []int
	Winners  []int
	Shares   map[int]int
}

// Result is the settled outcome of a hand.
type Result struct {
	Showdown bool
	Pots     []PotResult
	Payouts  []int // chips awarded per seat, including uncalled bets returned
	Hands    []ShowdownHand
	Winners  []int // seats that won a contested pot, or the last player standing
}

// Decision is a player's chosen action. Amount is the raise-to total for raises.
type Decision struct {
	Action Action
	Amount int
}

// DecisionPoint is what a decider sees when it is asked to act.
type DecisionPoint struct {
	Seat  int
	Legal LegalActions
	State Snapshot
}

// Decider chooses actions for one seat.
type Decider interface {
	Decide(ctx context.Context, point DecisionPoint) (Decision, error)
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func(ctx context.Context, point DecisionPoint) (Decision, error)

func (f DeciderFunc) Decide(ctx context.Context, point DecisionPoint) (Decision, error) {
	return f(ctx, point)
}

// RoundOption configures a Round.
type RoundOption func(*Round)

// WithLogger sets the round logger.
func WithLogger(l *log.Logger) RoundOption {
	return func(r *Round) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithHandNumber labels the round for snapshots and logs.
func WithHandNumber(n int) RoundOption {
	return func(r *Round) { r.handNumber = n }
}

// Round runs a single heads-up hand from the blinds to showdown.
//
// The dealer posts the small blind and acts first preflop; the other seat
// posts the big blind and acts first on every later street. Hole cards are
// dealt one at a time starting left of the dealer, then board cards are dealt
// from the deck with no burns. A Round is not safe for concurrent use.
type Round struct {
	handNumber int
	players    []*Player
	dealer     int
	smallBlind int
	bigBlind   int
	deck       *poker.Deck

	street  Street
	board   []poker.Card
	betting *BettingState
	toAct   int
	history []ActionRecord
	result  *Result

	logger *log.Logger
}

// NewRound prepares a hand. Players keep their stacks; per-hand state is cleared by Start.
func NewRound(players []*Player, dealer, smallBlind, bigBlind int, deck *poker.Deck, opts ...RoundOption) (*Round, error) {
	if len(players) != 2 {
		return nil, ErrHeadsUpOnly
	}
	if dealer < 0 || dealer >= len(players) {
		return nil, fmt.Errorf("dealer seat %d out of range", dealer)
	}
	if smallBlind <= 0 || bigBlind < smallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", smallBlind, bigBlind)
	}
	if deck == nil {
		return nil, errors.New("deck is required")
	}
	for i, p := range players {
		if p.Seat != i {
			return nil, fmt.Errorf("player %s has seat %d, expected %d", p.Name, p.Seat, i)
		}
		if p.Stack <= 0 {
			return nil, fmt.Errorf("player %s has no chips", p.Name)
		}
	}
	r := &Round{
		players:    players,
		dealer:     dealer,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		deck:       deck,
		street:     Dealing,
		toAct:      -1,
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Start posts the blinds, deals hole cards and opens preflop betting.
func (r *Round) Start() error {
	if r.street != Dealing {
		return ErrAlreadyStarted
	}
	for _, p := range r.players {
		p.resetHand()
	}

	sb, bb := r.players[r.dealer], r.players[r.bigBlindSeat()]
	r.record("small_blind", sb, sb.commit(r.smallBlind))
	r.record("big_blind", bb, bb.commit(r.bigBlind))

	for range 2 {
		for i := range r.players {
			p := r.players[(r.dealer+1+i)%len(r.players)]
			card, err := r.deck.DealOne()
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			p.HoleCards = append(p.HoleCards, card)
		}
	}

	r.street = Preflop
	r.betting = NewBettingState(r.players, sb.TotalBet+bb.TotalBet, r.bigBlind)
	r.toAct = r.nextToAct(r.dealer)
	r.logger.Debug("hand started", "hand", r.handNumber, "dealer", sb.Name,
		"blinds", fmt.Sprintf("%d/%d", r.smallBlind, r.bigBlind))
	return nil
}

func (r *Round) bigBlindSeat() int {
	return (r.dealer + 1) % len(r.players)
}

func (r *Round) record(kind string, p *Player, added int) {
	r.history = append(r.history, ActionRecord{
		Street: r.street,
		Seat:   p.Seat,
		Name:   p.Name,
		Kind:   kind,
		Added:  added,
		Total:  p.StreetBet,
	})
}

// nextToAct returns the first seat from `from` onward that owes a decision, or -1.
func (r *Round) nextToAct(from int) int {
	if r.betting == nil {
		return -1
	}
	for i := range r.players {
		seat := (from + i) % len(r.players)
		if r.betting.NeedsAction(seat) {
			return seat
		}
	}
	return -1
}

// ToAct returns the seat due to act, or -1 when no decision is pending.
func (r *Round) ToAct() int {
	return r.toAct
}

// LegalActions returns the options for the seat due to act.
func (r *Round) LegalActions() LegalActions {
	if r.toAct < 0 || r.result != nil {
		return LegalActions{}
	}
	return r.betting.LegalActions(r.toAct)
}

// Act applies a decision for the seat due to act.
func (r *Round) Act(action Action, amount int) error {
	return r.ActFor(r.toAct, action, amount)
}

// ActFor applies a decision for seat, rejecting it if seat is not due to act.
func (r *Round) ActFor(seat int, action Action, amount int) error {
	switch {
	case r.result != nil:
		return ErrHandComplete
	case r.street == Dealing:
		return ErrNotStarted
	case r.toAct < 0:
		return ErrNoActionPending
	case seat != r.toAct:
		return &InvalidActionError{Action: action, Amount: amount, Violation: ViolationOutOfTurn, Legal: r.LegalActions()}
	}

	legal := r.betting.LegalActions(seat)
	if err := ValidateAction(action, amount, legal); err != nil {
		return err
	}
	p := r.players[seat]
	before := p.TotalBet
	if _, _, err := ApplyAction(r.betting, seat, action, amount); err != nil {
		panic(fmt.Sprintf("validated %s %d rejected by betting state: %v", action, amount, err))
	}
	r.record(action.String(), p, p.TotalBet-before)
	r.logger.Debug("action", "hand", r.handNumber, "street", r.street, "player", p.Name,
		"action", action, "total", p.StreetBet, "pot", r.betting.Pot)

	if r.liveCount() == 1 {
		return r.settle()
	}
	r.toAct = r.nextToAct(seat + 1)
	return nil
}

func (r *Round) liveCount() int {
	n := 0
	for _, p := range r.players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// BettingComplete reports whether the current street's betting is closed.
func (r *Round) BettingComplete() bool {
	return r.result == nil && r.street.IsBetting() && r.betting.Complete()
}

// AdvanceStreet moves to the next street once betting is closed, dealing the
// flop, turn or river. Advancing from the river settles the showdown.
func (r *Round) AdvanceStreet() error {
	switch {
	case r.result != nil:
		return ErrHandComplete
	case r.street == Dealing:
		return ErrNotStarted
	case !r.betting.Complete():
		return ErrBettingIncomplete
	}
	if r.street == River {
		r.street = Showdown
		return r.settle()
	}

	next := r.street.Next()
	cards, err := r.deck.Deal(next.CardsDealt())
	if err != nil {
		return fmt.Errorf("dealing %s: %w", next, err)
	}
	r.board = append(r.board, cards...)
	r.betting.ResetStreet()
	r.street = next
	r.toAct = r.nextToAct(r.bigBlindSeat())
	r.logger.Debug("street", "hand", r.handNumber, "street", next,
		"board", poker.FormatCards(r.board), "pot", r.betting.Pot)
	return nil
}

// Run drives the hand to completion, asking deciders[seat] for each decision.
// An illegal decision stops the hand and is returned as an *InvalidActionError.
func (r *Round) Run(ctx context.Context, deciders []Decider) (Result, error) {
	if len(deciders) != len(r.players) {
		return Result{}, fmt.Errorf("need %d deciders, got %d", len(r.players), len(deciders))
	}
	if r.street == Dealing {
		if err := r.Start(); err != nil {
			return Result{}, err
		}
	}
	for r.result == nil {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if r.BettingComplete() {
			if err := r.AdvanceStreet(); err != nil {
				return Result{}, err
			}
			continue
		}
		seat := r.toAct
		point := DecisionPoint{Seat: seat, Legal: r.LegalActions(), State: r.Snapshot(seat)}
		d, err := deciders[seat].Decide(ctx, point)
		if err != nil {
			return Result{}, fmt.Errorf("seat %d decision: %w", seat, err)
		}
		if err := r.ActFor(seat, d.Action, d.Amount); err != nil {
			return Result{}, err
		}
	}
	return *r.result, nil
}

// settle awards every pot and ends the hand.
func (r *Round) settle() error {
	r.toAct = -1
	showdown := r.liveCount() > 1
	if showdown && len(r.board) != 5 {
		return fmt.Errorf("showdown with %d board cards", len(r.board))
	}

	res := &Result{Showdown: showdown, Payouts: make([]int, len(r.players))}
	if showdown {
		for _, p := range r.players {
			if !p.InHand() {
				continue
			}
			cards := append(slices.Clone(p.HoleCards), r.board...)
			s, err := poker.Evaluate(cards)
			if err != nil {
				return fmt.Errorf("evaluating %s: %w", p.Name, err)
			}
			res.Hands = append(res.Hands, ShowdownHand{Seat: p.Seat, Name: p.Name, Cards: slices.Clone(p.HoleCards), Strength: s})
		}
	}

	for _, pot := range BuildPots(r.players) {
		winners := pot.Eligible
		if len(pot.Eligible) > 1 {
			entries := make([]poker.Entry, len(pot.Eligible))
			for i, seat := range pot.Eligible {
				entries[i] = poker.Entry{
					ID:    strconv.Itoa(seat),
					Cards: append(slices.Clone(r.players[seat].HoleCards), r.board...),
				}
			}
			ids, err := poker.FindWinners(entries)
			if err != nil {
				return err
			}
			winners = make([]int, len(ids))
			for i, id := range ids {
				winners[i], _ = strconv.Atoi(id)
			}
		}
		shares := SplitPot(pot.Amount, winners, r.dealer, len(r.players))
		for seat, chips := range shares {
			r.players[seat].Stack += chips
			res.Payouts[seat] += chips
		}
		if len(pot.Eligible) > 1 || !showdown {
			for _, w := range winners {
				if !slices.Contains(res.Winners, w) {
					res.Winners = append(res.Winners, w)
				}
			}
		}
		res.Pots = append(res.Pots, PotResult{Amount: pot.Amount, Eligible: pot.Eligible, Winners: winners, Shares: shares})
	}
	slices.Sort(res.Winners)

	r.street = Showdown
	r.result = res
	r.logger.Debug("hand complete", "hand", r.handNumber, "showdown", showdown,
		"board", poker.FormatCards(r.board), "winners", r.names(res.Winners), "payouts", res.Payouts)
	return nil
}

func (r *Round) names(seats []int) []string {
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = r.players[s].Name
	}
	return out
}

// HandNumber returns the hand's label.
func (r *Round) HandNumber() int { return r.handNumber }

// Dealer returns the dealer seat.
func (r *Round) Dealer() int { return r.dealer }

// Street returns the current street.
func (r *Round) Street() Street { return r.street }

// Blinds returns the small and big blind.
func (r *Round) Blinds() (small, big int) { return r.smallBlind, r.bigBlind }

// Pot returns every chip committed this hand.
func (r *Round) Pot() int {
	total := 0
	for _, p := range r.players {
		total += p.TotalBet
	}
	return total
}

// CurrentBet returns the street total to match.
func (r *Round) CurrentBet() int {
	if r.betting == nil || r.result != nil {
		return 0
	}
	return r.betting.CurrentBet
}

// Board returns the community cards dealt so far.
func (r *Round) Board() []poker.Card {
	return slices.Clone(r.board)
}

// Player returns a copy of the player in seat.
func (r *Round) Player(seat int) Player {
	p := *r.players[seat]
	p.HoleCards = slices.Clone(p.HoleCards)
	return p
}

// NumPlayers returns the number of seats.
func (r *Round) NumPlayers() int { return len(r.players) }

// Position returns "SB" for the dealer and "BB" for the other seat.
func (r *Round) Position(seat int) string {
	if seat == r.dealer {
		return "SB"
	}
	return "BB"
}

// IsComplete reports whether the hand has been settled.
func (r *Round) IsComplete() bool { return r.result != nil }

// Result returns the settled outcome once the hand is complete.
func (r *Round) Result() (Result, bool) {
	if r.result == nil {
		return Result{}, false
	}
	return *r.result, true
}

// History returns the actions taken so far, blinds included.
func (r *Round) History() []ActionRecord {
	return slices.Clone(r.history)
}

// Revealed reports whether seat's hole cards are public: players who reach a showdown show.
func (r *Round) Revealed(seat int) bool {
	return r.result != nil && r.result.Showdown && r.players[seat].InHand()
}
