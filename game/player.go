package game

import "github.com/lox/potlimit/poker"

// Player is a seat at a heads-up table.
type Player struct {
	Seat      int
	Name      string
	Stack     int          // chips behind
	StreetBet int          // committed on the current street
	TotalBet  int          // committed this hand
	HoleCards []poker.Card // nil until dealt
	Folded    bool
	AllIn     bool
}

// NewPlayer creates a player with a stack.
func NewPlayer(seat int, name string, stack int) *Player {
	return &Player{Seat: seat, Name: name, Stack: stack}
}

// CanAct reports whether the player can still make decisions this hand.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// InHand reports whether the player still contests the pot.
func (p *Player) InHand() bool {
	return !p.Folded
}

// commit moves up to n chips from the stack into the pot and returns the amount moved.
func (p *Player) commit(n int) int {
	n = min(n, p.Stack)
	p.Stack -= n
	p.StreetBet += n
	p.TotalBet += n
	if p.Stack == 0 {
		p.AllIn = true
	}
	return n
}

// resetHand clears per-hand state, keeping the stack.
func (p *Player) resetHand() {
	p.StreetBet = 0
	p.TotalBet = 0
	p.HoleCards = nil
	p.Folded = false
	p.AllIn = false
}
