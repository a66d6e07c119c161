package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		players []*Player
		want    []Pot
	}{
		{
			name: "even contributions make one pot",
			players: []*Player{
				{Seat: 0, TotalBet: 200},
				{Seat: 1, TotalBet: 200},
			},
			want: []Pot{{Amount: 400, Eligible: []int{0, 1}}},
		},
		{
			name: "uncalled excess is returned through its own pot",
			players: []*Player{
				{Seat: 0, TotalBet: 100, AllIn: true},
				{Seat: 1, TotalBet: 180},
			},
			want: []Pot{
				{Amount: 200, Eligible: []int{0, 1}},
				{Amount: 80, Eligible: []int{1}},
			},
		},
		{
			name: "folded chips stay in the pot",
			players: []*Player{
				{Seat: 0, TotalBet: 60, Folded: true},
				{Seat: 1, TotalBet: 120},
			},
			want: []Pot{{Amount: 180, Eligible: []int{1}}},
		},
		{
			name: "three way side pot",
			players: []*Player{
				{Seat: 0, TotalBet: 50, AllIn: true},
				{Seat: 1, TotalBet: 150, AllIn: true},
				{Seat: 2, TotalBet: 150},
			},
			want: []Pot{
				{Amount: 150, Eligible: []int{0, 1, 2}},
				{Amount: 200, Eligible: []int{1, 2}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pots := BuildPots(tt.players)
			assert.Equal(t, tt.want, pots)

			committed := 0
			for _, p := range tt.players {
				committed += p.TotalBet
			}
			assert.Equal(t, committed, PotTotal(pots), "pots must account for every chip")
		})
	}
}

func TestSplitPotOddChip(t *testing.T) {
	t.Parallel()
	assert.Equal(t, map[int]int{0: 15, 1: 16}, SplitPot(31, []int{0, 1}, 0, 2), "non-dealer gets the odd chip")
	assert.Equal(t, map[int]int{0: 16, 1: 15}, SplitPot(31, []int{0, 1}, 1, 2))
	assert.Equal(t, map[int]int{0: 20, 1: 20}, SplitPot(40, []int{0, 1}, 0, 2))
	assert.Equal(t, map[int]int{1: 40}, SplitPot(40, []int{1}, 0, 2))

	// Three way with seat 2 on the button: seat 0 is first to its left.
	assert.Equal(t, map[int]int{0: 34, 1: 33, 2: 33}, SplitPot(100, []int{2, 0, 1}, 2, 3))
	assert.Equal(t, []int{0, 1, 2}, OddChipOrder([]int{2, 1, 0}, 2, 3))
	assert.Equal(t, []int{2, 0, 1}, OddChipOrder([]int{0, 1, 2}, 1, 3))
}
