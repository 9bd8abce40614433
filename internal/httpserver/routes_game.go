// internal/httpserver/routes_game.go
//
// HTTP routes for regular rounds.
// Responsibilities:
//   - /game/new, /game/guess, /game/forfeit, GET /game/{id}.
//   - Rendering rounds as roundView (the answer only once a round is over).
//
// Rounds belong to the caller's owner id (account or anonymous cookie).
// Daily rounds can be viewed here but are guessed only through /daily/*;
// /game/guess and /game/forfeit answer not_found for them.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/store"
)

// roundView is the client's view of a round. The answer is only
// revealed once the round is over.
type roundView struct {
	ID         string                   `json:"id"`
	Difficulty string                   `json:"difficulty"`
	Daily      string                   `json:"daily,omitempty"`
	Status     game.Status              `json:"status"`
	MaxGuesses int                      `json:"maxGuesses"`
	Remaining  int                      `json:"remaining"`
	History    []game.GuessResult       `json:"history"`
	Keyboard   map[string]game.Feedback `json:"keyboard"`
	Answer     string                   `json:"answer,omitempty"`
}

func viewOf(s store.Session) roundView {
	v := roundView{
		ID:         s.ID,
		Difficulty: s.Difficulty,
		Daily:      s.Daily,
		Status:     s.Round.Status,
		MaxGuesses: s.Round.MaxGuesses,
		Remaining:  game.RemainingGuesses(s.Round),
		History:    s.Round.History,
		Keyboard:   game.Keyboard(s.Round.History),
	}
	if v.History == nil {
		v.History = []game.GuessResult{}
	}
	if s.Round.Over() {
		v.Answer = s.Round.Secret
	}
	return v
}

// mountGame registers /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/guess", s.handleGuess)
		r.Post("/forfeit", s.handleForfeit)
		r.Get("/{id}", s.handleGetGame)
	})
}

type newGameReq struct {
	Difficulty string `json:"difficulty"`
}

// handleNewGame starts a round. An empty body means medium difficulty.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	sess, err := s.Sessions.Start(r.Context(), s.Auth.Owner(w, r), req.Difficulty)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Result game.GuessResult `json:"result"`
	Round  roundView        `json:"round"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	sess, res, err := s.Sessions.Guess(r.Context(), req.GameID, s.Auth.Owner(w, r), req.Guess)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Result: res, Round: viewOf(sess)})
}

type forfeitReq struct {
	GameID string `json:"gameId"`
}

// handleForfeit gives up a round and reveals the answer.
func (s *Server) handleForfeit(w http.ResponseWriter, r *http.Request) {
	var req forfeitReq
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.Sessions.Forfeit(r.Context(), req.GameID, s.Auth.Owner(w, r))
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"answer":      sess.Round.Secret,
		"guessesUsed": sess.Round.GuessesUsed(),
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"), s.Auth.Owner(w, r))
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}
