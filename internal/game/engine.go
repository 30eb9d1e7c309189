// internal/game/engine.go
//
// Feedback oracle for a single Guess Number game.
// Responsibilities:
//   - Create games with a given or random secret.
//   - Validate and score guesses ("aAbB").
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Scoring is digits.Score; this package only adds validation and state.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/robalobadob/guessnumber/internal/digits"
)

// DefaultMaxRounds matches the cutoff used by the self-test harness.
const DefaultMaxRounds = 10

var (
	ErrInvalidSecret = errors.New("invalid secret")
	ErrInvalidGuess  = errors.New("invalid guess")
	ErrFinished      = errors.New("game finished")
)

// New constructs a new game instance.
// If secret is empty a random one is chosen. maxRounds < 1 means DefaultMaxRounds.
func New(secret string, maxRounds int) (*Game, error) {
	s := digits.Number(strings.TrimSpace(secret))
	if s == "" {
		s = digits.Random()
	}
	if !s.Valid() {
		return nil, ErrInvalidSecret
	}
	if maxRounds < 1 {
		maxRounds = DefaultMaxRounds
	}
	return &Game{
		ID:        randomID(),
		Secret:    s,
		MaxRounds: maxRounds,
		Rounds:    []Round{},
	}, nil
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the feedback, the new state, or an error.
//
// State transitions:
//   - 4A0B → Finished = true, Won = true.
//   - Else if the number of rounds reaches MaxRounds → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (digits.Feedback, State, error) {
	if g.Finished {
		return digits.Feedback{}, g.State(), ErrFinished
	}
	n := digits.Number(strings.TrimSpace(guess))
	if !n.Valid() {
		return digits.Feedback{}, g.State(), ErrInvalidGuess
	}

	fb := digits.Score(n, g.Secret)
	g.Rounds = append(g.Rounds, Round{N: len(g.Rounds) + 1, Guess: n, Result: fb})

	if fb == digits.Solved {
		g.Finished, g.Won = true, true
	} else if len(g.Rounds) >= g.MaxRounds {
		g.Finished = true
	}
	return fb, g.State(), nil
}

// State reports the current game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
