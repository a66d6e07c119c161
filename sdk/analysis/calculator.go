package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/potlimit/poker"
)

// DefaultSimulations is used when a query asks for zero or fewer trials.
const DefaultSimulations = 5000

// Calculator answers equity queries, normalising inputs and caching results.
type Calculator struct {
	sim         *Simulator
	cache       *Cache
	seed        uint64
	defaultSims int
	clock       quartz.Clock
	logger      *log.Logger
	simulations atomic.Int64
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithSimulator replaces the default simulator.
func WithSimulator(s *Simulator) CalculatorOption {
	return func(c *Calculator) { c.sim = s }
}

// WithCache sets the result cache. A nil cache disables caching.
func WithCache(cache *Cache) CalculatorOption {
	return func(c *Calculator) { c.cache = cache }
}

// WithSeed fixes the seed used for every query.
func WithSeed(seed uint64) CalculatorOption {
	return func(c *Calculator) { c.seed = seed }
}

// WithDefaultSimulations sets the trial count used when a query passes n <= 0.
func WithDefaultSimulations(n int) CalculatorOption {
	return func(c *Calculator) {
		if n > 0 {
			c.defaultSims = n
		}
	}
}

// WithClock sets the clock used to time queries.
func WithClock(clock quartz.Clock) CalculatorOption {
	return func(c *Calculator) { c.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) CalculatorOption {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCalculator creates a calculator with a default simulator and cache.
func NewCalculator(opts ...CalculatorOption) *Calculator {
	cache, _ := NewCache(DefaultCacheSize)
	c := &Calculator{
		cache:       cache,
		defaultSims: DefaultSimulations,
		clock:       quartz.NewReal(),
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sim == nil {
		c.sim = NewSimulator(WithSimulatorLogger(c.logger))
	}
	return c
}

// Equity estimates hero's equity against villain on board.
func (c *Calculator) Equity(ctx context.Context, hero, villain Holding, board []poker.Card, n int) (EquityResult, error) {
	if n <= 0 {
		n = c.defaultSims
	}
	key := cacheKey{
		hero:        hero.key(),
		villain:     villain.key(),
		board:       poker.NewHand(board...),
		simulations: n,
		seed:        c.seed,
	}
	if c.cache != nil {
		if res, ok := c.cache.get(key); ok {
			c.logger.Debug("equity cache hit", "hero", hero, "villain", villain)
			return res, nil
		}
	}

	start := c.clock.Now()
	c.simulations.Add(1)
	res, err := c.sim.Simulate(ctx, hero, villain, board, n, c.seed)
	if err != nil {
		return EquityResult{}, err
	}
	c.logger.Debug("equity computed",
		"hero", hero, "villain", villain, "equity", res.Equity(),
		"simulations", res.Simulations, "elapsed", c.clock.Since(start))

	if c.cache != nil {
		c.cache.add(key, res)
	}
	return res, nil
}

// EquityStrings accepts hole cards ("AhKh") or range notation for each side and a board string.
// An empty villain means any two cards.
func (c *Calculator) EquityStrings(ctx context.Context, hero, villain, board string, n int) (EquityResult, error) {
	h, err := ParseHolding(hero)
	if err != nil {
		return EquityResult{}, fmt.Errorf("hero: %w", err)
	}
	v := RandomHolding()
	if villain != "" {
		if v, err = ParseHolding(villain); err != nil {
			return EquityResult{}, fmt.Errorf("villain: %w", err)
		}
	}
	b, err := poker.ParseCards(board)
	if err != nil {
		return EquityResult{}, fmt.Errorf("board: %w", err)
	}
	return c.Equity(ctx, h, v, b, n)
}

// PreflopEquity estimates equity with no board cards.
func (c *Calculator) PreflopEquity(ctx context.Context, hero, villain Holding, n int) (EquityResult, error) {
	return c.Equity(ctx, hero, villain, nil, n)
}

// ErrPostflopBoard is returned by PostflopEquity for boards shorter than the flop.
var ErrPostflopBoard = errors.New("postflop equity needs 3 to 5 board cards")

// PostflopEquity estimates equity on a flop, turn or river board.
func (c *Calculator) PostflopEquity(ctx context.Context, hero, villain Holding, board []poker.Card, n int) (EquityResult, error) {
	if len(board) < 3 || len(board) > 5 {
		return EquityResult{}, ErrPostflopBoard
	}
	return c.Equity(ctx, hero, villain, board, n)
}

// EquityVsRandom estimates equity against any two cards.
func (c *Calculator) EquityVsRandom(ctx context.Context, hero Holding, board []poker.Card, n int) (EquityResult, error) {
	return c.Equity(ctx, hero, RandomHolding(), board, n)
}

// Simulations returns how many queries were answered by sampling rather than the cache.
func (c *Calculator) Simulations() int64 {
	return c.simulations.Load()
}

// CacheStats reports cache usage; the zero value when caching is disabled.
func (c *Calculator) CacheStats() CacheStats {
	if c.cache == nil {
		return CacheStats{}
	}
	return c.cache.Stats()
}

// ClearCache drops all cached results.
func (c *Calculator) ClearCache() {
	if c.cache != nil {
		c.cache.Purge()
	}
}
