package analysis

import (
	"encoding/json"
	"math"
)

// EquityResult is the immutable outcome of an equity query from the hero's perspective.
type EquityResult struct {
	Wins        int
	Ties        int
	Losses      int
	Simulations int    // completed trials; discarded trials are excluded
	Seed        uint64 // seed that produced the sample
}

// WinRate returns the fraction of trials won (0.0 to 1.0).
func (e EquityResult) WinRate() float64 {
	if e.Simulations == 0 {
		return 0.0
	}
	return float64(e.Wins) / float64(e.Simulations)
}

// TieRate returns the fraction of trials tied (0.0 to 1.0).
func (e EquityResult) TieRate() float64 {
	if e.Simulations == 0 {
		return 0.0
	}
	return float64(e.Ties) / float64(e.Simulations)
}

// LossRate returns the fraction of trials lost (0.0 to 1.0).
func (e EquityResult) LossRate() float64 {
	if e.Simulations == 0 {
		return 0.0
	}
	return float64(e.Losses) / float64(e.Simulations)
}

// Equity returns the overall equity (0.0 to 1.0).
// Wins count as 1.0, ties count as 0.5.
func (e EquityResult) Equity() float64 {
	if e.Simulations == 0 {
		return 0.0
	}
	return (float64(e.Wins) + float64(e.Ties)*0.5) / float64(e.Simulations)
}

// StdError returns the binomial standard error of Equity.
func (e EquityResult) StdError() float64 {
	if e.Simulations == 0 {
		return 0.0
	}
	eq := e.Equity()
	return math.Sqrt(eq * (1.0 - eq) / float64(e.Simulations))
}

// ConfidenceInterval returns the 95% confidence interval for equity.
func (e EquityResult) ConfidenceInterval() (lower, upper float64) {
	if e.Simulations == 0 {
		return 0.0, 0.0
	}
	equity := e.Equity()
	margin := 1.96 * e.StdError()
	return math.Max(0.0, equity-margin), math.Min(1.0, equity+margin)
}

// MarshalJSON renders the external result shape.
func (e EquityResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Equity      float64 `json:"equity"`
		WinRate     float64 `json:"win_rate"`
		TieRate     float64 `json:"tie_rate"`
		StdError    float64 `json:"std_error"`
		Simulations int     `json:"n_simulations"`
		Seed        uint64  `json:"seed"`
	}{
		Equity:      e.Equity(),
		WinRate:     e.WinRate(),
		TieRate:     e.TieRate(),
		StdError:    e.StdError(),
		Simulations: e.Simulations,
		Seed:        e.Seed,
	})
}

func (e EquityResult) add(o EquityResult) EquityResult {
	e.Wins += o.Wins
	e.Ties += o.Ties
	e.Losses += o.Losses
	e.Simulations += o.Simulations
	return e
}
