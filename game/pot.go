package game

import (
	"slices"
)

// Pot is a main or side pot and the seats that can win it.
type Pot struct {
	Amount   int
	Eligible []int
}

// BuildPots splits hand contributions into pots by all-in level. Chips a
// player put in beyond what any opponent matched form a pot only that player
// is eligible for, which returns the uncalled excess.
func BuildPots(players []*Player) []Pot {
	var levels []int
	for _, p := range players {
		if p.InHand() && p.TotalBet > 0 && !slices.Contains(levels, p.TotalBet) {
			levels = append(levels, p.TotalBet)
		}
	}
	slices.Sort(levels)

	var pots []Pot
	prev := 0
	for _, level := range levels {
		pot := Pot{}
		for _, p := range players {
			pot.Amount += min(p.TotalBet, level) - min(p.TotalBet, prev)
			if p.InHand() && p.TotalBet >= level {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		prev = level
		if pot.Amount == 0 {
			continue
		}
		// Neighbouring levels with the same contenders are one pot.
		if n := len(pots); n > 0 && slices.Equal(pots[n-1].Eligible, pot.Eligible) {
			pots[n-1].Amount += pot.Amount
			continue
		}
		pots = append(pots, pot)
	}

	// Folded chips above the highest live level still belong to the last pot.
	leftover := 0
	for _, p := range players {
		leftover += max(p.TotalBet-prev, 0)
	}
	if leftover > 0 && len(pots) > 0 {
		pots[len(pots)-1].Amount += leftover
	}
	return pots
}

// PotTotal sums the pots.
func PotTotal(pots []Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

// SplitPot divides amount between winners. Every winner gets an equal share and
// the odd chips go one at a time to winners in seat order starting left of the
// dealer, so heads-up the non-dealer receives the odd chip.
func SplitPot(amount int, winners []int, dealer, seats int) map[int]int {
	shares := make(map[int]int, len(winners))
	if len(winners) == 0 {
		return shares
	}
	each := amount / len(winners)
	for _, w := range winners {
		shares[w] = each
	}
	remainder := amount - each*len(winners)
	for _, seat := range OddChipOrder(winners, dealer, seats) {
		if remainder == 0 {
			break
		}
		shares[seat]++
		remainder--
	}
	return shares
}

// OddChipOrder sorts winners by distance clockwise from the seat left of the dealer.
func OddChipOrder(winners []int, dealer, seats int) []int {
	order := slices.Clone(winners)
	distance := func(seat int) int {
		return (seat - dealer - 1 + seats) % seats
	}
	slices.SortFunc(order, func(a, b int) int {
		return distance(a) - distance(b)
	})
	return order
}
