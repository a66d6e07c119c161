package game

import "errors"

var (
	ErrHeadsUpOnly       = errors.New("a hand needs exactly two players")
	ErrNotStarted        = errors.New("hand has not started")
	ErrAlreadyStarted    = errors.New("hand already started")
	ErrHandComplete      = errors.New("hand is complete")
	ErrBettingIncomplete = errors.New("betting on this street is not complete")
	ErrNoActionPending   = errors.New("no player is due to act")
	ErrHandInProgress    = errors.New("previous hand is still in progress")
	ErrGameOver          = errors.New("game over: a player has no chips")
)
