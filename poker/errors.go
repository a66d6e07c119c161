package poker

import "fmt"

// ParseError reports malformed card, hand or range notation.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// InvalidHandError reports a card set that cannot be evaluated.
type InvalidHandError struct {
	Count  int
	Reason string
}

func (e *InvalidHandError) Error() string {
	return fmt.Sprintf("invalid hand of %d cards: %s", e.Count, e.Reason)
}

// InsufficientDeckError is returned when more cards are requested than remain.
type InsufficientDeckError struct {
	Requested int
	Remaining int
}

func (e *InsufficientDeckError) Error() string {
	return fmt.Sprintf("cannot deal %d cards, %d remaining", e.Requested, e.Remaining)
}
