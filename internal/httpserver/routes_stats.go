// internal/httpserver/routes_stats.go
//
// Statistics routes.
// Responsibilities:
//   - /stats/me, /stats/history, /stats/import (signed-in players).
//   - Public /leaderboard.
package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/internal/auth"
	"github.com/robalobadob/wordle/internal/stats"
)

// mountStats registers /stats (authenticated) and the public /leaderboard.
func (s *Server) mountStats(r chi.Router) {
	r.Route("/stats", func(r chi.Router) {
		r.Use(s.Auth.Require)
		r.Get("/me", s.handleStatsMe)
		r.Get("/history", s.handleStatsHistory)
		r.Post("/import", s.handleStatsImport)
	})
	r.Get("/leaderboard", s.handleLeaderboard)
}

type statsRes struct {
	stats.Aggregates
	WinRate      float64            `json:"winRate"`
	Distribution stats.Distribution `json:"distribution"`
}

func (s *Server) handleStatsMe(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r.Context())
	agg, err := s.Stats.Aggregates(r.Context(), me.ID)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	dist, err := s.Stats.Distribution(r.Context(), me.ID)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsRes{Aggregates: agg, WinRate: agg.WinRate(), Distribution: dist})
}

func (s *Server) handleStatsHistory(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	h, err := s.Stats.History(r.Context(), me.ID, limit)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// handleStatsImport seeds the account with totals kept on a device. It is
// a no-op once the account has any statistics.
func (s *Server) handleStatsImport(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r.Context())
	var body stats.Aggregates
	if !decode(w, r, &body) {
		return
	}
	if !body.Consistent() {
		writeError(w, http.StatusBadRequest, "invalid_stats")
		return
	}
	ok, err := s.Stats.Import(r.Context(), me.ID, body)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"imported": ok})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Stats.Leaderboard(r.Context(), stats.DefaultLeaderboardMinGames, stats.DefaultLeaderboardLimit)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	if rows == nil {
		rows = []stats.LeaderboardRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}
