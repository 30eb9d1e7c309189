package solver

import "errors"

var (
	// ErrContradictoryFeedback means no candidate is consistent with the
	// feedback history. The engine does not backtrack; start a new game.
	ErrContradictoryFeedback = errors.New("contradictory feedback")
	// ErrInvalidFeedback is returned for pairs outside A,B >= 0, A+B <= 4.
	ErrInvalidFeedback = errors.New("invalid feedback")
	// ErrNoGuessYet is returned when feedback arrives before the opening guess.
	ErrNoGuessYet = errors.New("feedback before first guess")
)
