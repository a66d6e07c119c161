// Package statistics aggregates per-player results over a heads-up match.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/potlimit/game"
)

// Position names for heads-up play. The dealer posts the small blind.
const (
	SmallBlind = 0
	BigBlind   = 1
)

// HandResult is one hand from a single player's point of view.
type HandResult struct {
	NetBB          float64 // big blinds won or lost
	Position       int     // SmallBlind or BigBlind
	WentToShowdown bool
	PotChips       int // every chip committed to the hand
	Street         game.Street
}

// FromHand derives seat's result from a finished hand. Contributions are summed
// from the action history, blinds included.
func FromHand(rec game.HandRecord, seat, bigBlind int) (HandResult, error) {
	if seat < 0 || seat >= len(rec.Result.Payouts) {
		return HandResult{}, fmt.Errorf("seat %d not in hand %d", seat, rec.HandNumber)
	}
	if bigBlind <= 0 {
		return HandResult{}, fmt.Errorf("invalid big blind %d", bigBlind)
	}

	res := HandResult{
		Position:       BigBlind,
		WentToShowdown: rec.Result.Showdown,
		Street:         game.Preflop,
	}
	contributed := 0
	for _, a := range rec.Actions {
		res.PotChips += a.Added
		if a.Seat == seat {
			contributed += a.Added
		}
		if a.Kind == "small_blind" && a.Seat == seat {
			res.Position = SmallBlind
		}
		if a.Street > res.Street && a.Street.IsBetting() {
			res.Street = a.Street
		}
	}
	if rec.Result.Showdown {
		res.Street = game.Showdown
	}
	res.NetBB = float64(rec.Result.Payouts[seat]-contributed) / float64(bigBlind)
	return res, nil
}

// PositionStats tracks results from one position.
type PositionStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Statistics tracks a player's results across hands.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // sum of squares for the variance
	Values []float64 // every result, for the median and percentiles

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // net from hands that reached showdown, wins and losses
	NonShowdownBB   float64
	AllBB           float64

	PositionResults [2]PositionStats
	StreetsReached  map[game.Street]int

	MaxPotChips int
	BigPots     int     // pots of at least 50 big blinds
	BigPotsBB   float64 // net from big pots
	bigBlind    int
}

// New creates statistics for a table with the given big blind.
func New(bigBlind int) *Statistics {
	return &Statistics{bigBlind: bigBlind, StreetsReached: make(map[game.Street]int)}
}

// Add incorporates a hand result.
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if netBB > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if result.Position == SmallBlind || result.Position == BigBlind {
		ps := &s.PositionResults[result.Position]
		ps.Hands++
		ps.SumBB += netBB
		ps.SumBB2 += netBB * netBB
	}
	if s.StreetsReached == nil {
		s.StreetsReached = make(map[game.Street]int)
	}
	s.StreetsReached[result.Street]++

	s.MaxPotChips = max(s.MaxPotChips, result.PotChips)
	if s.bigBlind > 0 && result.PotChips >= 50*s.bigBlind {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Mean returns big blinds won per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// BBPer100 returns the win rate in big blinds per hundred hands.
func (s *Statistics) BBPer100() float64 { return s.Mean() * 100 }

// Variance returns the sample variance of the per-hand results.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median per-hand result.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the interpolated result at p in [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns big blinds won per hand from one position.
func (s *Statistics) PositionMean(position int) float64 {
	if position != SmallBlind && position != BigBlind {
		return 0
	}
	ps := s.PositionResults[position]
	if ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// Validate checks the ledger is internally consistent.
func (s *Statistics) Validate() error {
	if math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) > 1e-6 {
		return fmt.Errorf("ledger mismatch: all=%.6f showdown=%.6f non-showdown=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length %d does not match hands %d", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("wins %d exceed hands %d", wins, s.Hands)
	}
	if n := s.PositionResults[SmallBlind].Hands + s.PositionResults[BigBlind].Hands; n != s.Hands {
		return fmt.Errorf("position hands %d do not match hands %d", n, s.Hands)
	}
	return nil
}

// Match tracks both players over a match.
type Match struct {
	Players  [2]*Statistics
	bigBlind int
}

// NewMatch creates match statistics.
func NewMatch(bigBlind int) *Match {
	return &Match{Players: [2]*Statistics{New(bigBlind), New(bigBlind)}, bigBlind: bigBlind}
}

// Record adds a finished hand for both seats. Heads-up the results are zero sum.
func (m *Match) Record(rec game.HandRecord) error {
	for seat := range m.Players {
		res, err := FromHand(rec, seat, m.bigBlind)
		if err != nil {
			return err
		}
		m.Players[seat].Add(res)
	}
	return nil
}
