// internal/httpserver/routes_solver.go
//
// Solver endpoints: the server guesses, the caller scores.
//   - POST /solver/new      → start a session, returns the opening guess
//   - POST /solver/feedback → report "aAbB" for the last guess, get the next one
//   - POST /solver/solve    → let the solver play a known secret end to end
//
// A session checks an engine out of the pool for its whole lifetime and
// returns it when the game ends (4A0B, contradiction, or round limit), so
// the decision tree keeps growing across sessions.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessnumber/internal/digits"
	"github.com/robalobadob/guessnumber/internal/game"
	"github.com/robalobadob/guessnumber/internal/selftest"
	"github.com/robalobadob/guessnumber/internal/solver"
)

// solverSession is one game where the engine guesses.
type solverSession struct {
	mu     sync.Mutex
	id     string
	engine *solver.Engine // nil once the session has ended
	round  int
	guess  digits.Number
}

// mountSolver registers all /solver routes.
func (s *Server) mountSolver(r chi.Router) {
	r.Route("/solver", func(r chi.Router) {
		r.Post("/new", s.handleSolverNew)
		r.Post("/feedback", s.handleSolverFeedback)
		r.Post("/solve", s.handleSolverSolve)
	})
}

type solverNewRes struct {
	SessionID string        `json:"sessionId"`
	Guess     digits.Number `json:"guess"`
	Round     int           `json:"round"`
}

func (s *Server) handleSolverNew(w http.ResponseWriter, r *http.Request) {
	e := s.pool.Get()
	g, err := e.Guess(nil)
	if err != nil {
		s.pool.Put(e)
		http.Error(w, `{"error":"solver_failed"}`, http.StatusInternalServerError)
		return
	}
	sess := &solverSession{id: genID(), engine: e, round: 1, guess: g}
	if err := s.sessions.Save(r.Context(), sess.id, sess); err != nil {
		s.pool.Put(e)
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	s.recordGameStart(r.Context(), sess.id, "solver", userFrom(r), s.ownerID(w, r))
	s.metrics.gamesStarted.WithLabelValues("solver").Inc()
	_ = json.NewEncoder(w).Encode(solverNewRes{SessionID: sess.id, Guess: g, Round: 1})
}

type solverFeedbackReq struct {
	SessionID string `json:"sessionId"`
	Result    string `json:"result"` // "aAbB" for the last guess
}

type solverFeedbackRes struct {
	Guess     digits.Number `json:"guess,omitempty"`
	Round     int           `json:"round"`
	Remaining int           `json:"remaining"`
	Solved    bool          `json:"solved"`
	State     game.State    `json:"state"`
}

func (s *Server) handleSolverFeedback(w http.ResponseWriter, r *http.Request) {
	var req solverFeedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	fb, err := digits.ParseFeedback(req.Result)
	if err != nil {
		http.Error(w, `{"error":"malformed_result"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.SessionID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.engine == nil {
		http.Error(w, `{"error":"session_finished"}`, http.StatusConflict)
		return
	}

	if fb == digits.Solved {
		s.endSolverSession(r, sess, game.StateWon)
		_ = json.NewEncoder(w).Encode(solverFeedbackRes{Round: sess.round, Remaining: 1, Solved: true, State: game.StateWon})
		return
	}
	if sess.round >= s.cfg.MaxRounds {
		s.endSolverSession(r, sess, game.StateLost)
		_ = json.NewEncoder(w).Encode(solverFeedbackRes{Round: sess.round, Remaining: sess.engine.Remaining(), State: game.StateLost})
		return
	}

	before := sess.engine.Stats()
	start := time.Now()
	next, err := sess.engine.Guess(&fb)
	s.metrics.guessLatency.Observe(time.Since(start).Seconds())
	s.metrics.observeSolver(before, sess.engine.Stats())
	if errors.Is(err, solver.ErrContradictoryFeedback) {
		log.Info().Str("session", sess.id).Err(err).Msg("solver session ended by contradiction")
		s.metrics.contradictions.Inc()
		s.endSolverSession(r, sess, game.StateLost)
		http.Error(w, `{"error":"contradictory_feedback"}`, http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"invalid_feedback"}`, http.StatusBadRequest)
		return
	}

	sess.round++
	sess.guess = next
	s.recordRound(r.Context(), sess.id, userFrom(r), sess.round-1, game.StatePlaying)
	_ = json.NewEncoder(w).Encode(solverFeedbackRes{
		Guess:     next,
		Round:     sess.round,
		Remaining: sess.engine.Remaining(),
		State:     game.StatePlaying,
	})
}

// endSolverSession returns the engine to the pool and records the outcome.
// Caller holds sess.mu.
func (s *Server) endSolverSession(r *http.Request, sess *solverSession, state game.State) {
	s.pool.Put(sess.engine)
	sess.engine = nil
	_ = s.sessions.Delete(r.Context(), sess.id)
	s.recordRound(r.Context(), sess.id, userFrom(r), sess.round, state)
	s.metrics.gamesFinished.WithLabelValues("solver", string(state)).Inc()
}

type solverSolveReq struct {
	Secret string `json:"secret"`
}

func (s *Server) handleSolverSolve(w http.ResponseWriter, r *http.Request) {
	var req solverSolveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if !digits.IsValid(req.Secret) {
		http.Error(w, `{"error":"invalid_secret"}`, http.StatusBadRequest)
		return
	}
	e := s.pool.Get()
	defer s.pool.Put(e)

	before := e.Stats()
	tr, err := selftest.Play(e, digits.Number(req.Secret), s.cfg.MaxRounds)
	s.metrics.observeSolver(before, e.Stats())
	if err != nil {
		log.Error().Err(err).Str("secret", req.Secret).Msg("solver failed on a valid secret")
		http.Error(w, `{"error":"solver_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(tr)
}
