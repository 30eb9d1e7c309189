// internal/game/types.go
//
// Core type definitions for the Guess Number oracle.
// Defines:
//   - State: coarse game state (playing/won/lost).
//   - Round: one guess and the feedback it earned.
//   - Game: state for a single in-progress or finished game.

package game

import "github.com/robalobadob/guessnumber/internal/digits"

// State is the coarse state of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Round is one applied guess.
type Round struct {
	N      int             `json:"n"`
	Guess  digits.Number   `json:"guess"`
	Result digits.Feedback `json:"result"`
}

// Game holds the state of a single game against a hidden secret.
type Game struct {
	ID        string        // Unique game identifier (random hex string).
	Secret    digits.Number // The hidden number.
	MaxRounds int           // Guesses allowed before the game is lost.
	Rounds    []Round       // Guesses made so far.
	Finished  bool          // True once the game is over (won or lost).
	Won       bool          // True if the game was finished with a win.
}
