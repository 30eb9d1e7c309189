// internal/solver/engine.go
//
// Engine plays one game at a time against caller-supplied feedback.
// Responsibilities:
//   - Keep the records still consistent with this game's feedback.
//   - Reuse guesses cached in the decision tree by earlier games.
//   - Fall back to the minimax scan on a cache miss and remember the result.
//
// Game lifecycle:
//   fresh  → Guess(nil) returns the opening guess
//   active → Guess(&fb) filters, then returns the next guess
//   solved → the caller observed 4A0B; the engine does not track this itself
//
// An Engine is not safe for concurrent use. The decision tree survives
// Initialize, so sequential games on one Engine get faster over time.

package solver

import (
	"fmt"
	"strings"

	"github.com/robalobadob/guessnumber/internal/digits"
)

// Opening is the fixed first guess of every game.
const Opening digits.Number = "0123"

// Stats are lifetime counters for one Engine.
type Stats struct {
	MinimaxRuns int `json:"minimaxRuns"`
	CacheHits   int `json:"cacheHits"`
	CacheMisses int `json:"cacheMisses"`
	TreeNodes   int `json:"treeNodes"`
}

// Engine is a bulls-and-cows solver with a memoizing decision tree.
type Engine struct {
	space    []digits.Number
	tree     *tree
	recs     records
	history  []digits.Feedback
	previous digits.Number
	started  bool
	stats    Stats
}

// New builds the candidate space and an empty decision tree.
func New() *Engine {
	e := &Engine{
		space: digits.Space(),
		tree:  newTree(Opening),
	}
	e.Initialize()
	return e
}

// Initialize resets per-game state. The decision tree is kept.
func (e *Engine) Initialize() {
	e.recs = newRecords(e.space)
	e.history = e.history[:0]
	e.previous = ""
	e.started = false
}

// Guess returns the next guess.
//
// Pass nil to start a game; the opening guess is returned and per-game state
// is reset. Otherwise prev must be the feedback for the last returned guess.
// ErrContradictoryFeedback means no secret fits the history; the engine stays
// in that state until Initialize or Guess(nil).
func (e *Engine) Guess(prev *digits.Feedback) (digits.Number, error) {
	if prev == nil {
		e.Initialize()
		e.started = true
		e.previous = Opening
		return Opening, nil
	}
	fb := *prev
	if !fb.Valid() {
		return "", fmt.Errorf("%w: %d/%d", ErrInvalidFeedback, fb.A, fb.B)
	}
	if !e.started {
		return "", ErrNoGuessYet
	}

	e.recs.filter(e.previous, fb)
	prefix := e.history
	e.history = append(e.history, fb)

	next, err := e.next(prefix, fb)
	if err != nil {
		return "", fmt.Errorf("%w after %s", err, formatHistory(e.history))
	}
	e.previous = next
	return next, nil
}

// next resolves the guess for history = prefix + fb against the current records.
func (e *Engine) next(prefix []digits.Feedback, fb digits.Feedback) (digits.Number, error) {
	switch len(e.recs) {
	case 0:
		return "", ErrContradictoryFeedback
	case 1:
		return e.recs[0], nil
	}
	if g, ok := e.tree.lookup(e.history); ok {
		e.stats.CacheHits++
		return g, nil
	}
	e.stats.CacheMisses++
	e.stats.MinimaxRuns++
	g, err := selectGuess(e.recs, e.space)
	if err != nil {
		return "", err
	}
	e.tree.insert(prefix, fb, g)
	return g, nil
}

// Remaining is the number of secrets still consistent with this game.
func (e *Engine) Remaining() int { return len(e.recs) }

// History returns a copy of this game's feedback so far.
func (e *Engine) History() []digits.Feedback {
	out := make([]digits.Feedback, len(e.history))
	copy(out, e.history)
	return out
}

// Stats returns lifetime counters, including the current tree size.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.TreeNodes = e.tree.size()
	return s
}

func formatHistory(h []digits.Feedback) string {
	parts := make([]string, len(h))
	for i, fb := range h {
		parts[i] = fb.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
