// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's round (or report it was played)
//   - POST /daily/guess       → submit a guess for a daily round
//   - GET  /daily/leaderboard → today's winners (or ?date=YYYY-MM-DD)
//
// Each player can finish one daily round per day (enforced by the
// daily_results table). Rounds themselves live in the session store like
// regular rounds.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Post("/guess", s.handleDailyGuess)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

type dailyNewRes struct {
	Date   string     `json:"date"`
	Played bool       `json:"played"`
	Round  *roundView `json:"round,omitempty"`
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	date, _ := s.Daily.Today()
	sess, err := s.Daily.Start(r.Context(), s.Auth.Owner(w, r))
	if errors.Is(err, daily.ErrAlreadyPlayed) {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	v := viewOf(sess)
	writeJSON(w, http.StatusOK, dailyNewRes{Date: sess.Daily, Round: &v})
}

func (s *Server) handleDailyGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	sess, res, err := s.Daily.Guess(r.Context(), req.GameID, s.Auth.Owner(w, r), req.Guess)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Result: res, Round: viewOf(sess)})
}

func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Daily.Leaderboard(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}
