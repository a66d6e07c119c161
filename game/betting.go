package game

import "fmt"

// BettingState is the betting on one street: the pot, the bet to match and who
// has acted since the last bet or raise. A Round owns one per street.
type BettingState struct {
	Players    []*Player
	Pot        int // chips committed this hand, including this street
	CurrentBet int // street total every player must match
	BigBlind   int

	acted         []bool
	lastAggressor int
}

// NewBettingState starts a street. Pot carries chips from earlier streets and
// any street bets already in front of the players (blinds).
func NewBettingState(players []*Player, pot, bigBlind int) *BettingState {
	s := &BettingState{
		Players:       players,
		Pot:           pot,
		BigBlind:      bigBlind,
		acted:         make([]bool, len(players)),
		lastAggressor: -1,
	}
	for _, p := range players {
		s.CurrentBet = max(s.CurrentBet, p.StreetBet)
	}
	return s
}

// LegalActions returns the options for the player in seat.
func (s *BettingState) LegalActions(seat int) LegalActions {
	return ComputeLegalActions(s.Players[seat], s.Players, s.CurrentBet, s.Pot, s.BigBlind)
}

// LastAggressor is the seat that made the last bet or raise on this street, or -1.
func (s *BettingState) LastAggressor() int {
	return s.lastAggressor
}

// HasActed reports whether seat has acted since the last bet or raise.
func (s *BettingState) HasActed(seat int) bool {
	return s.acted[seat]
}

// NeedsAction reports whether seat still owes a decision on this street.
func (s *BettingState) NeedsAction(seat int) bool {
	p := s.Players[seat]
	if !p.CanAct() || s.liveCount() <= 1 {
		return false
	}
	if p.StreetBet < s.CurrentBet {
		return true
	}
	// A lone player who has matched everyone else's all-in has nothing to decide.
	if s.actorCount() == 1 {
		return false
	}
	return !s.acted[seat]
}

// Complete reports whether the street's betting is closed: every player who
// can act has matched the bet and acted since the last raise.
func (s *BettingState) Complete() bool {
	for seat := range s.Players {
		if s.NeedsAction(seat) {
			return false
		}
	}
	return true
}

func (s *BettingState) liveCount() int {
	n := 0
	for _, p := range s.Players {
		if p.InHand() {
			n++
		}
	}
	return n
}

func (s *BettingState) actorCount() int {
	n := 0
	for _, p := range s.Players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

// ResetStreet clears street commitments for the next street, keeping the pot.
func (s *BettingState) ResetStreet() {
	for i, p := range s.Players {
		p.StreetBet = 0
		s.acted[i] = false
	}
	s.CurrentBet = 0
	s.lastAggressor = -1
}

// ApplyAction validates and applies a decision for seat, returning the updated
// pot and current bet.
func ApplyAction(s *BettingState, seat int, action Action, amount int) (pot, currentBet int, err error) {
	if seat < 0 || seat >= len(s.Players) {
		return s.Pot, s.CurrentBet, fmt.Errorf("seat %d out of range", seat)
	}
	legal := s.LegalActions(seat)
	if err := ValidateAction(action, amount, legal); err != nil {
		return s.Pot, s.CurrentBet, err
	}

	p := s.Players[seat]
	switch action {
	case Fold:
		p.Folded = true
	case Check:
	case Call:
		s.Pot += p.commit(legal.ToCall)
	case Raise:
		s.Pot += p.commit(amount - p.StreetBet)
		s.CurrentBet = p.StreetBet
		s.lastAggressor = seat
		for i := range s.acted {
			s.acted[i] = false
		}
	}
	s.acted[seat] = true
	return s.Pot, s.CurrentBet, nil
}
