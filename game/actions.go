package game

import (
	"fmt"
	"math"
	"strings"
)

// Action is a betting decision.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise // bet when no bet is open, raise otherwise; amounts are raise-to totals
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// ParseAction reads an action name. "bet" and "allin" are accepted as raises.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold", "f":
		return Fold, nil
	case "check", "k":
		return Check, nil
	case "call", "c":
		return Call, nil
	case "raise", "bet", "r", "b", "allin", "all-in":
		return Raise, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// CallOption describes a legal call.
type CallOption struct {
	Amount int // chips added by calling, capped at the stack
}

// RaiseOption bounds a legal bet or raise as street totals.
type RaiseOption struct {
	Min int
	Max int
}

// LegalActions is the set of decisions open to a player at one decision point.
type LegalActions struct {
	Fold   bool
	Check  bool
	Call   *CallOption  // nil when calling is not legal
	Raise  *RaiseOption // nil when betting or raising is not legal
	ToCall int
}

// Allows reports whether the action is in the legal set, ignoring amounts.
func (l LegalActions) Allows(a Action) bool {
	switch a {
	case Fold:
		return l.Fold
	case Check:
		return l.Check
	case Call:
		return l.Call != nil
	case Raise:
		return l.Raise != nil
	}
	return false
}

// Actions lists the legal actions in a stable order.
func (l LegalActions) Actions() []Action {
	var out []Action
	for _, a := range []Action{Fold, Check, Call, Raise} {
		if l.Allows(a) {
			out = append(out, a)
		}
	}
	return out
}

func (l LegalActions) String() string {
	parts := make([]string, 0, 4)
	if l.Fold {
		parts = append(parts, "fold")
	}
	if l.Check {
		parts = append(parts, "check")
	}
	if l.Call != nil {
		parts = append(parts, fmt.Sprintf("call %d", l.Call.Amount))
	}
	if l.Raise != nil {
		parts = append(parts, fmt.Sprintf("raise %d-%d", l.Raise.Min, l.Raise.Max))
	}
	return strings.Join(parts, ", ")
}

// PotLimitMax returns the largest pot-limit raise-to total before stack caps:
// the pot before acting plus the bet being faced plus the amount needed to call.
func PotLimitMax(potSize, currentBet, toCall int) int {
	return potSize + currentBet + toCall
}

// ComputeLegalActions returns what player may do facing currentBet with potSize
// chips committed to the hand so far, including this street's bets.
//
// A bet or raise runs from double the current bet (or the big blind when
// opening) up to the pot-limit maximum, capped at the player's stack. A player
// too short for the minimum may still raise all-in.
func ComputeLegalActions(player *Player, players []*Player, currentBet, potSize, bigBlind int) LegalActions {
	if !player.CanAct() {
		return LegalActions{}
	}
	toCall := max(currentBet-player.StreetBet, 0)
	legal := LegalActions{
		Fold:   toCall > 0,
		Check:  toCall == 0,
		ToCall: toCall,
	}
	if toCall > 0 {
		legal.Call = &CallOption{Amount: min(toCall, player.Stack)}
	}

	if player.Stack <= toCall || !opponentCanAct(player, players) {
		return legal
	}

	maxTotal := min(PotLimitMax(potSize, currentBet, toCall), player.StreetBet+player.Stack)
	minTotal := bigBlind
	if currentBet > 0 {
		minTotal = 2 * currentBet
	}
	minTotal = max(minTotal, currentBet+1)
	if minTotal > maxTotal {
		minTotal = maxTotal
	}
	if maxTotal > currentBet {
		legal.Raise = &RaiseOption{Min: minTotal, Max: maxTotal}
	}
	return legal
}

func opponentCanAct(player *Player, players []*Player) bool {
	for _, p := range players {
		if p != player && p.CanAct() {
			return true
		}
	}
	return false
}

// Violation names the constraint an action broke.
type Violation string

const (
	ViolationNotLegal   Violation = "not legal"
	ViolationBelowMin   Violation = "below minimum"
	ViolationAboveMax   Violation = "above maximum"
	ViolationNegative   Violation = "negative amount"
	ViolationFractional Violation = "fractional amount"
	ViolationOutOfTurn  Violation = "out of turn"
)

// InvalidActionError reports a rejected decision and the constraint it violated.
type InvalidActionError struct {
	Action    Action
	Amount    int
	Violation Violation
	Legal     LegalActions
}

func (e *InvalidActionError) Error() string {
	switch {
	case e.Violation == ViolationBelowMin && e.Legal.Raise != nil:
		return fmt.Sprintf("invalid %s to %d: below minimum %d", e.Action, e.Amount, e.Legal.Raise.Min)
	case e.Violation == ViolationAboveMax && e.Legal.Raise != nil:
		return fmt.Sprintf("invalid %s to %d: above maximum %d", e.Action, e.Amount, e.Legal.Raise.Max)
	case e.Violation == ViolationNotLegal:
		return fmt.Sprintf("invalid %s: not legal (legal: %s)", e.Action, e.Legal)
	default:
		return fmt.Sprintf("invalid %s %d: %s", e.Action, e.Amount, e.Violation)
	}
}

// ValidateAction checks a decision against the legal set. The amount is only
// consulted for raises, where it is the raise-to total.
func ValidateAction(action Action, amount int, legal LegalActions) error {
	reject := func(v Violation) error {
		return &InvalidActionError{Action: action, Amount: amount, Violation: v, Legal: legal}
	}
	if amount < 0 {
		return reject(ViolationNegative)
	}
	if !legal.Allows(action) {
		return reject(ViolationNotLegal)
	}
	if action != Raise {
		return nil
	}
	switch {
	case amount < legal.Raise.Min:
		return reject(ViolationBelowMin)
	case amount > legal.Raise.Max:
		return reject(ViolationAboveMax)
	}
	return nil
}

// ChipAmount converts an externally supplied amount into whole chips.
func ChipAmount(v float64) (int, error) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0, &InvalidActionError{Action: Raise, Violation: ViolationFractional}
	case v < 0:
		return 0, &InvalidActionError{Action: Raise, Amount: int(v), Violation: ViolationNegative}
	case v != math.Trunc(v):
		return 0, &InvalidActionError{Action: Raise, Amount: int(v), Violation: ViolationFractional}
	case v > math.MaxInt32:
		return 0, &InvalidActionError{Action: Raise, Violation: ViolationAboveMax}
	}
	return int(v), nil
}
