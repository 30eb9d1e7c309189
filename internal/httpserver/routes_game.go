// internal/httpserver/routes_game.go
//
// Human-vs-oracle games:
//   - POST /game/new   → create a game with a random (or given) secret
//   - POST /game/guess → score a guess as "aAbB"
//
// Games live in memory; the games table keeps an owner row for history/stats.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessnumber/internal/game"
)

// playSession guards one oracle game against concurrent guesses.
type playSession struct {
	mu    sync.Mutex
	game  *game.Game
	owner string
	start time.Time
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Secret string `json:"secret"` // optional fixed secret (testing)
}
type newGameRes struct {
	GameID    string `json:"gameId"`
	MaxRounds int    `json:"maxRounds"`
}

// handleNewGame creates a new in-memory game and persists an owner row.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	g, err := game.New(req.Secret, s.cfg.MaxRounds)
	if err != nil {
		http.Error(w, `{"error":"invalid_secret"}`, http.StatusBadRequest)
		return
	}
	sess := &playSession{game: g, owner: s.ownerID(w, r), start: time.Now()}
	if err := s.games.Save(r.Context(), g.ID, sess); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	s.recordGameStart(r.Context(), g.ID, "human", userFrom(r), sess.owner)
	s.metrics.gamesStarted.WithLabelValues("human").Inc()

	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, MaxRounds: g.MaxRounds})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Result string     `json:"result"` // "aAbB"
	A      int        `json:"a"`
	B      int        `json:"b"`
	State  game.State `json:"state"`
	Rounds int        `json:"rounds"`
	Secret string     `json:"secret,omitempty"` // revealed once the game is lost
}

// handleGuess applies a guess to an in-memory game and persists progress.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	sess.mu.Lock()
	fb, state, err := sess.game.ApplyGuess(req.Guess)
	rounds := len(sess.game.Rounds)
	sess.mu.Unlock()
	switch {
	case errors.Is(err, game.ErrFinished):
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
		return
	case err != nil:
		http.Error(w, `{"error":"invalid_guess"}`, http.StatusBadRequest)
		return
	}

	s.recordRound(r.Context(), req.GameID, userFrom(r), rounds, state)
	res := guessRes{Result: fb.String(), A: fb.A, B: fb.B, State: state, Rounds: rounds}
	if state != game.StatePlaying {
		s.metrics.gamesFinished.WithLabelValues("human", string(state)).Inc()
		if state == game.StateLost {
			res.Secret = string(sess.game.Secret)
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// ---------------------------- persistence ----------------------------------

// recordGameStart inserts the owner row for a new game (best effort).
func (s *Server) recordGameStart(ctx context.Context, id, mode string, me *authUser, owner string) {
	now := time.Now().UTC().Format(time.RFC3339)
	var err error
	if me != nil {
		_, err = s.db.ExecContext(ctx, `INSERT INTO games (id, user_id, mode, status, rounds, started_at)
		                               VALUES (?,?,?,?,0,?)`, id, me.ID, mode, string(game.StatePlaying), now)
	} else {
		_, err = s.db.ExecContext(ctx, `INSERT INTO games (id, anonymous_id, mode, status, rounds, started_at)
		                               VALUES (?,?,?,?,0,?)`, id, owner, mode, string(game.StatePlaying), now)
	}
	if err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("insert game row")
	}
}

// recordRound updates the round counter and, for finished games, the status
// and the signed-in player's stats. Failures are logged, not returned.
func (s *Server) recordRound(ctx context.Context, id string, me *authUser, rounds int, state game.State) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin round tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET rounds=? WHERE id=?`, rounds, id); err != nil {
		log.Warn().Err(err).Msg("update rounds")
	}
	if state != game.StatePlaying {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=?`,
			string(state), time.Now().UTC().Format(time.RFC3339), id); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := bumpStats(tx, me.ID, state == game.StateWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit round")
	}
}
