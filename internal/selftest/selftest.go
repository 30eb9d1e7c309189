// internal/selftest/selftest.go
//
// Plays the solver against the oracle.
// Responsibilities:
//   - Play: one game on a given engine, returning the round transcript.
//   - Run: sweep every valid secret in a numeric range and summarise rounds.
//
// Each worker owns one engine for its whole chunk, so the decision tree is
// reused across that worker's games. Engines are never shared between workers.

package selftest

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/guessnumber/internal/digits"
	"github.com/robalobadob/guessnumber/internal/game"
	"github.com/robalobadob/guessnumber/internal/solver"
)

// DefaultSlowThreshold flags games needing more rounds than the known bound.
const DefaultSlowThreshold = 7

// Transcript is the record of one game.
type Transcript struct {
	Secret digits.Number `json:"secret"`
	Rounds []game.Round  `json:"rounds"`
	Solved bool          `json:"solved"`
}

// Play runs one game of e against secret. maxRounds < 1 means
// game.DefaultMaxRounds. An unsolved game (cutoff reached) is not an error.
func Play(e *solver.Engine, secret digits.Number, maxRounds int) (Transcript, error) {
	g, err := game.New(string(secret), maxRounds)
	if err != nil {
		return Transcript{}, err
	}
	tr := Transcript{Secret: g.Secret}

	guess, err := e.Guess(nil)
	for err == nil {
		var fb digits.Feedback
		var state game.State
		fb, state, err = g.ApplyGuess(string(guess))
		if err != nil {
			break
		}
		if state != game.StatePlaying {
			break
		}
		guess, err = e.Guess(&fb)
	}
	tr.Rounds = g.Rounds
	tr.Solved = g.Won
	if err != nil {
		return tr, fmt.Errorf("secret %s round %d: %w", secret, len(g.Rounds)+1, err)
	}
	return tr, nil
}

// Options configures Run.
type Options struct {
	Start         int // inclusive, 0..9999
	End           int // exclusive
	Workers       int // < 1 means 1
	MaxRounds     int // per-game cutoff, < 1 means game.DefaultMaxRounds
	SlowThreshold int // games above this are listed, < 1 means DefaultSlowThreshold
}

// SlowGame is a game that took more rounds than the threshold or was not solved.
type SlowGame struct {
	Secret digits.Number `json:"secret"`
	Rounds int           `json:"rounds"`
	Solved bool          `json:"solved"`
}

// Report summarises a sweep.
type Report struct {
	Games       int         `json:"games"`
	MaxRounds   int         `json:"maxRounds"`
	TotalRounds int         `json:"totalRounds"`
	Histogram   map[int]int `json:"histogram"` // rounds → games
	Slow        []SlowGame  `json:"slow"`
	Unsolved    int         `json:"unsolved"`
}

// Mean is the average number of rounds per game.
func (r Report) Mean() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalRounds) / float64(r.Games)
}

// Secrets lists the valid Numbers whose numeric value lies in [start, end).
func Secrets(start, end int) []digits.Number {
	var out []digits.Number
	for _, n := range digits.Space() {
		v := int(n[0]-'0')*1000 + int(n[1]-'0')*100 + int(n[2]-'0')*10 + int(n[3]-'0')
		if v >= start && v < end {
			out = append(out, n)
		}
	}
	return out
}

// Run plays every valid secret in [opts.Start, opts.End).
func Run(ctx context.Context, opts Options) (Report, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.SlowThreshold < 1 {
		opts.SlowThreshold = DefaultSlowThreshold
	}
	secrets := Secrets(opts.Start, opts.End)
	log.Info().Int("start", opts.Start).Int("end", opts.End).Int("secrets", len(secrets)).
		Int("workers", opts.Workers).Msg("self-test starting")

	chunks := split(secrets, opts.Workers)
	results := make([][]Transcript, len(chunks))

	g, gCtx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			e := solver.New()
			out := make([]Transcript, 0, len(chunk))
			for _, secret := range chunk {
				if err := gCtx.Err(); err != nil {
					return err
				}
				tr, err := Play(e, secret, opts.MaxRounds)
				if err != nil {
					return err
				}
				out = append(out, tr)
			}
			results[i] = out
			log.Debug().Int("worker", i).Int("games", len(out)).
				Int("treeNodes", e.Stats().TreeNodes).Msg("self-test worker done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rep := Report{Histogram: map[int]int{}}
	for _, chunk := range results {
		for _, tr := range chunk {
			n := len(tr.Rounds)
			rep.Games++
			rep.TotalRounds += n
			rep.Histogram[n]++
			if n > rep.MaxRounds {
				rep.MaxRounds = n
			}
			if !tr.Solved {
				rep.Unsolved++
			}
			if n > opts.SlowThreshold || !tr.Solved {
				rep.Slow = append(rep.Slow, SlowGame{Secret: tr.Secret, Rounds: n, Solved: tr.Solved})
			}
		}
	}
	sort.Slice(rep.Slow, func(i, j int) bool { return rep.Slow[i].Secret < rep.Slow[j].Secret })
	return rep, nil
}

// split cuts s into at most n contiguous, non-empty chunks.
func split(s []digits.Number, n int) [][]digits.Number {
	if len(s) == 0 {
		return nil
	}
	if n > len(s) {
		n = len(s)
	}
	size := (len(s) + n - 1) / n
	var out [][]digits.Number
	for i := 0; i < len(s); i += size {
		end := i + size
		if end > len(s) {
			end = len(s)
		}
		out = append(out, s[i:end])
	}
	return out
}
