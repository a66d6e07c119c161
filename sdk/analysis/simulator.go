package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/potlimit/internal/randutil"
	"github.com/lox/potlimit/poker"
)

const (
	// DefaultBatchSize is the number of trials sharing one RNG stream.
	DefaultBatchSize = 1024
	// maxDrawAttempts bounds the redraws for a trial whose two combos collide.
	maxDrawAttempts = 64
)

var (
	// ErrInvalidBoard is returned for boards that are not 0, 3, 4 or 5 cards.
	ErrInvalidBoard = errors.New("board must have 0, 3, 4 or 5 cards")
	// ErrDuplicateCard is returned when the same card appears twice across hands and board.
	ErrDuplicateCard = errors.New("duplicate card")
	// ErrInvalidSimulations is returned for a non-positive trial count.
	ErrInvalidSimulations = errors.New("simulation count must be positive")
)

// EmptyRangeError reports that a side has no combos left to sample.
type EmptyRangeError struct {
	Side string // "hero", "villain" or "matchup"
}

func (e *EmptyRangeError) Error() string {
	if e.Side == "matchup" {
		return "no valid hand matchups: every hero and villain combination shares a card"
	}
	return fmt.Sprintf("%s range is empty after removing blockers", e.Side)
}

// Simulator estimates equity by Monte Carlo sampling with a bounded worker pool.
// Trials are grouped into fixed size batches and batch b always draws from the
// RNG stream derived from (seed, b), so results do not depend on worker count.
type Simulator struct {
	workers   int
	batchSize int
	logger    *log.Logger
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithWorkers caps the number of concurrent workers.
func WithWorkers(n int) SimulatorOption {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithBatchSize sets the trials per batch. Changing it changes the sample drawn for a seed.
func WithBatchSize(n int) SimulatorOption {
	return func(s *Simulator) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithSimulatorLogger sets the logger.
func WithSimulatorLogger(l *log.Logger) SimulatorOption {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSimulator creates a simulator using up to eight workers by default.
func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		workers:   min(runtime.NumCPU(), 8),
		batchSize: DefaultBatchSize,
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// matchup is the validated input shared by every batch.
type matchup struct {
	hero, villain []Combo
	board         []poker.Card
	known         poker.Hand
}

// Simulate runs n trials of hero against villain on the given board.
func (s *Simulator) Simulate(ctx context.Context, hero, villain Holding, board []poker.Card, n int, seed uint64) (EquityResult, error) {
	m, err := prepare(hero, villain, board, n)
	if err != nil {
		return EquityResult{}, err
	}

	batches := (n + s.batchSize - 1) / s.batchSize
	results := make([]EquityResult, batches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for b := range batches {
		trials := min(s.batchSize, n-b*s.batchSize)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[b] = m.run(trials, randutil.Stream(seed, uint64(b)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	total := EquityResult{Seed: seed}
	for _, r := range results {
		total = total.add(r)
	}
	if total.Simulations == 0 {
		return EquityResult{}, &EmptyRangeError{Side: "matchup"}
	}
	s.logger.Debug("simulation complete",
		"hero", hero, "villain", villain, "board", poker.FormatCards(board),
		"requested", n, "completed", total.Simulations, "batches", batches)
	return total, nil
}

func prepare(hero, villain Holding, board []poker.Card, n int) (*matchup, error) {
	if n <= 0 {
		return nil, ErrInvalidSimulations
	}
	switch len(board) {
	case 0, 3, 4, 5:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBoard, len(board))
	}
	if hero.IsZero() || villain.IsZero() {
		return nil, errors.New("hero and villain holdings are required")
	}

	var known poker.Hand
	for _, c := range board {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: invalid board card", ErrInvalidBoard)
		}
		if known.HasCard(c) {
			return nil, fmt.Errorf("%w: %s on board", ErrDuplicateCard, c)
		}
		known.AddCard(c)
	}
	if hero.Dead().Overlaps(known) || villain.Dead().Overlaps(known|hero.Dead()) {
		return nil, fmt.Errorf("%w: hole cards overlap the board or each other", ErrDuplicateCard)
	}

	m := &matchup{
		hero:    hero.combos(known | villain.Dead()),
		villain: villain.combos(known | hero.Dead()),
		board:   board,
		known:   known,
	}
	if len(m.hero) == 0 {
		return nil, &EmptyRangeError{Side: "hero"}
	}
	if len(m.villain) == 0 {
		return nil, &EmptyRangeError{Side: "villain"}
	}
	return m, nil
}

// run plays trials with a single RNG stream.
func (m *matchup) run(trials int, rng *rand.Rand) EquityResult {
	var res EquityResult

	unseen := make([]poker.Card, 0, poker.DeckSize)
	for i := range poker.DeckSize {
		if c := poker.CardAt(i); !m.known.HasCard(c) {
			unseen = append(unseen, c)
		}
	}
	candidates := make([]poker.Card, 0, len(unseen))
	heroCards := make([]poker.Card, 7)
	villainCards := make([]poker.Card, 7)
	copy(heroCards[2:], m.board)
	copy(villainCards[2:], m.board)
	need := 5 - len(m.board)

	for range trials {
		h, v, ok := m.draw(rng)
		if !ok {
			continue
		}
		holes := h.Hand() | v.Hand()

		// Complete the board by partial Fisher-Yates over the unseen cards.
		candidates = candidates[:0]
		for _, c := range unseen {
			if !holes.HasCard(c) {
				candidates = append(candidates, c)
			}
		}
		for k := range need {
			idx := k + rng.IntN(len(candidates)-k)
			candidates[k], candidates[idx] = candidates[idx], candidates[k]
		}

		heroCards[0], heroCards[1] = h.High, h.Low
		villainCards[0], villainCards[1] = v.High, v.Low
		copy(heroCards[2+len(m.board):], candidates[:need])
		copy(villainCards[2+len(m.board):], candidates[:need])

		hs := poker.MustEvaluate(heroCards)
		vs := poker.MustEvaluate(villainCards)
		switch hs.Compare(vs) {
		case 1:
			res.Wins++
		case 0:
			res.Ties++
		default:
			res.Losses++
		}
		res.Simulations++
	}
	return res
}

// draw samples a hero and villain combo jointly, redrawing both on a shared card.
func (m *matchup) draw(rng *rand.Rand) (Combo, Combo, bool) {
	for range maxDrawAttempts {
		h := m.hero[rng.IntN(len(m.hero))]
		v := m.villain[rng.IntN(len(m.villain))]
		if !h.Hand().Overlaps(v.Hand()) {
			return h, v, true
		}
	}
	return Combo{}, Combo{}, false
}
