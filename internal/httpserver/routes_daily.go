// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start a daily game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's daily game
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each player can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on win.
// The secret is chosen deterministically from date + salt.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessnumber/internal/daily"
	"github.com/robalobadob/guessnumber/internal/digits"
	"github.com/robalobadob/guessnumber/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	space    []digits.Number
	now      func() time.Time
	sessions map[string]*dailySession // active sessions keyed by owner|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily game.
type dailySession struct {
	playSession
	date        string
	secretIndex int
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		space:    digits.Space(),
		now:      time.Now,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key, secret index and secret.
func (d *dailyServer) today() (string, int, digits.Number) {
	now := d.now().UTC()
	idx, secret := daily.Secret(now, d.srv.cfg.DailySalt, d.space)
	return daily.DateKey(now), idx, secret
}

// newRes is returned by /daily/new.
type newRes struct {
	GameID    string `json:"gameId"`
	Date      string `json:"date"`
	Played    bool   `json:"played"`
	MaxRounds int    `json:"maxRounds"`
}

// handleNew creates or reuses a daily session for the current date.
//   - If the player already has a DB row for today → Played=true.
//   - Otherwise create/reuse an in-memory session and return GameID.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner := d.srv.ownerID(w, r)
	date, idx, secret := d.today()

	if played, err := d.store.AlreadyPlayed(r.Context(), owner, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(newRes{Date: date, Played: true})
		return
	}

	key := owner + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	if sess, ok := d.sessions[key]; ok {
		_ = json.NewEncoder(w).Encode(newRes{GameID: sess.game.ID, Date: date, MaxRounds: sess.game.MaxRounds})
		return
	}
	g, err := game.New(string(secret), d.srv.cfg.MaxRounds)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("daily secret")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	sess := &dailySession{
		playSession: playSession{game: g, owner: owner, start: time.Now()},
		date:        date,
		secretIndex: idx,
	}
	d.sessions[key] = sess
	d.srv.metrics.gamesStarted.WithLabelValues("daily").Inc()

	_ = json.NewEncoder(w).Encode(newRes{GameID: g.ID, Date: date, MaxRounds: g.MaxRounds})
}

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Result string `json:"result,omitempty"`
	State  string `json:"state"` // playing | won | lost | locked
	Rounds int    `json:"rounds"`
}

// handleGuess validates and applies a guess for today's daily session,
// persisting the result on a win.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	owner := d.srv.ownerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.GameID == "" {
		http.Error(w, `{"error":"bad_request"}`, http.StatusBadRequest)
		return
	}

	date, _, _ := d.today()
	d.mu.Lock()
	sess, ok := d.sessions[owner+"|"+date]
	d.mu.Unlock()
	if !ok || sess.game.ID != p.GameID {
		http.Error(w, `{"error":"no_session"}`, http.StatusConflict)
		return
	}

	sess.mu.Lock()
	fb, state, err := sess.game.ApplyGuess(p.Guess)
	rounds := len(sess.game.Rounds)
	sess.mu.Unlock()
	switch {
	case errors.Is(err, game.ErrFinished):
		_ = json.NewEncoder(w).Encode(dailyGuessRes{State: "locked", Rounds: rounds})
		return
	case err != nil:
		http.Error(w, `{"error":"invalid_guess"}`, http.StatusBadRequest)
		return
	}

	if state == game.StateWon {
		elapsed := int(time.Since(sess.start).Milliseconds())
		if err := d.store.InsertResult(r.Context(), daily.Result{
			UserID: owner, Date: sess.date, SecretIndex: sess.secretIndex, Rounds: rounds, ElapsedMs: elapsed,
		}); err != nil {
			log.Warn().Err(err).Str("owner", owner).Msg("insert daily result")
		}
	}
	if state != game.StatePlaying {
		d.srv.metrics.gamesFinished.WithLabelValues("daily", string(state)).Inc()
	}
	_ = json.NewEncoder(w).Encode(dailyGuessRes{Result: fb.String(), State: string(state), Rounds: rounds})
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.today()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
