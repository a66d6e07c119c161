package game

import (
	"context"
	rand "math/rand/v2"
)

// CheckCallDecider checks when possible and otherwise calls.
type CheckCallDecider struct{}

func (CheckCallDecider) Decide(_ context.Context, point DecisionPoint) (Decision, error) {
	if point.Legal.Check {
		return Decision{Action: Check}, nil
	}
	if point.Legal.Call != nil {
		return Decision{Action: Call}, nil
	}
	return Decision{Action: Fold}, nil
}

// RandomDecider picks a uniformly random legal action, and a uniformly random
// raise size between the minimum and maximum.
type RandomDecider struct {
	rng *rand.Rand
}

// NewRandomDecider creates a RandomDecider drawing from rng.
func NewRandomDecider(rng *rand.Rand) *RandomDecider {
	return &RandomDecider{rng: rng}
}

func (d *RandomDecider) Decide(_ context.Context, point DecisionPoint) (Decision, error) {
	actions := point.Legal.Actions()
	if len(actions) == 0 {
		return Decision{Action: Fold}, nil
	}
	action := actions[d.rng.IntN(len(actions))]
	if action != Raise {
		return Decision{Action: action}, nil
	}
	r := point.Legal.Raise
	return Decision{Action: Raise, Amount: r.Min + d.rng.IntN(r.Max-r.Min+1)}, nil
}
