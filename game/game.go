package game

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/potlimit/internal/randutil"
	"github.com/lox/potlimit/poker"
)

// GameConfig describes a heads-up match.
type GameConfig struct {
	Names         [2]string
	StartingStack int
	SmallBlind    int
	BigBlind      int
	Seed          uint64
	Logger        *log.Logger
}

// HandRecord summarises a finished hand.
type HandRecord struct {
	HandNumber int
	Dealer     string
	Board      []poker.Card
	Actions    []ActionRecord
	Result     Result
	Stacks     [2]int // stacks after the hand
}

// Game plays a sequence of hands between two players, rotating the dealer.
type Game struct {
	cfg        GameConfig
	players    []*Player
	deck       *poker.Deck
	dealer     int
	handNumber int
	current    *Round
	history    []HandRecord
	logger     *log.Logger
}

// NewGame seats both players. The seed fixes every shuffle in the match.
func NewGame(cfg GameConfig) (*Game, error) {
	switch {
	case cfg.StartingStack <= 0:
		return nil, errors.New("starting stack must be positive")
	case cfg.SmallBlind <= 0 || cfg.BigBlind < cfg.SmallBlind:
		return nil, fmt.Errorf("invalid blinds %d/%d", cfg.SmallBlind, cfg.BigBlind)
	case cfg.Names[0] == "" || cfg.Names[1] == "" || cfg.Names[0] == cfg.Names[1]:
		return nil, errors.New("two distinct player names are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Game{
		cfg: cfg,
		players: []*Player{
			NewPlayer(0, cfg.Names[0], cfg.StartingStack),
			NewPlayer(1, cfg.Names[1], cfg.StartingStack),
		},
		deck:   poker.NewDeck(randutil.NewUint64(cfg.Seed)),
		logger: logger,
	}, nil
}

// StartHand shuffles and deals the next hand.
func (g *Game) StartHand() (*Round, error) {
	if g.current != nil && !g.current.IsComplete() {
		return nil, ErrHandInProgress
	}
	if g.current != nil {
		g.FinishHand()
	}
	if g.IsOver() {
		return nil, ErrGameOver
	}

	g.deck.Reset()
	g.deck.Shuffle()
	g.handNumber++
	r, err := NewRound(g.players, g.dealer, g.cfg.SmallBlind, g.cfg.BigBlind, g.deck,
		WithHandNumber(g.handNumber), WithLogger(g.logger))
	if err != nil {
		return nil, err
	}
	if err := r.Start(); err != nil {
		return nil, err
	}
	g.current = r
	return r, nil
}

// FinishHand records the completed hand and moves the dealer button.
// It is a no-op when no completed hand is pending.
func (g *Game) FinishHand() {
	r := g.current
	if r == nil || !r.IsComplete() {
		return
	}
	res, _ := r.Result()
	g.history = append(g.history, HandRecord{
		HandNumber: r.HandNumber(),
		Dealer:     g.players[r.Dealer()].Name,
		Board:      r.Board(),
		Actions:    r.History(),
		Result:     res,
		Stacks:     [2]int{g.players[0].Stack, g.players[1].Stack},
	})
	g.dealer = (g.dealer + 1) % len(g.players)
	g.current = nil
	g.logger.Info("hand finished", "hand", r.HandNumber(),
		g.players[0].Name, g.players[0].Stack, g.players[1].Name, g.players[1].Stack)
}

// PlayHand deals and runs one hand to completion.
func (g *Game) PlayHand(ctx context.Context, deciders []Decider) (Result, error) {
	r, err := g.StartHand()
	if err != nil {
		return Result{}, err
	}
	res, err := r.Run(ctx, deciders)
	if err != nil {
		return Result{}, err
	}
	g.FinishHand()
	return res, nil
}

// Current returns the hand in progress, or nil.
func (g *Game) Current() *Round { return g.current }

// HandNumber returns the number of hands dealt.
func (g *Game) HandNumber() int { return g.handNumber }

// Dealer returns the seat holding the button for the next or current hand.
func (g *Game) Dealer() int { return g.dealer }

// Stack returns the chips in front of seat.
func (g *Game) Stack(seat int) int { return g.players[seat].Stack }

// IsOver reports whether a player has been eliminated.
func (g *Game) IsOver() bool {
	for _, p := range g.players {
		if p.Stack == 0 {
			return true
		}
	}
	return false
}

// Winner returns the name of the remaining player once the game is over.
func (g *Game) Winner() (string, bool) {
	if !g.IsOver() {
		return "", false
	}
	for _, p := range g.players {
		if p.Stack > 0 {
			return p.Name, true
		}
	}
	return "", false
}

// HandHistory returns the completed hands in order.
func (g *Game) HandHistory() []HandRecord {
	out := make([]HandRecord, len(g.history))
	copy(out, g.history)
	return out
}

// GameSnapshot is the serialisable state of a match.
type GameSnapshot struct {
	HandNumber int       `json:"hand_number"`
	Dealer     string    `json:"dealer"`
	Stacks     []int     `json:"stacks"`
	Hand       *Snapshot `json:"hand,omitempty"`
	GameOver   bool      `json:"game_over"`
	Winner     string    `json:"winner,omitempty"`
}

// Snapshot returns the match state as seen from viewer's seat (-1 for spectators).
func (g *Game) Snapshot(viewer int) GameSnapshot {
	s := GameSnapshot{
		HandNumber: g.handNumber,
		Dealer:     g.players[g.dealer].Name,
		Stacks:     []int{g.players[0].Stack, g.players[1].Stack},
		GameOver:   g.IsOver(),
	}
	if g.current != nil {
		hand := g.current.Snapshot(viewer)
		s.Hand = &hand
	}
	s.Winner, _ = g.Winner()
	return s
}
