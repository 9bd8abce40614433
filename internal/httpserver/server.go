// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts,
//     JSON content type, credentialed CORS).
//   - Diagnostics: "/", "/health", "/metrics", "/debug/words".
//   - Game endpoints (optional auth): /game/*.
//   - Daily Challenge endpoints (optional auth): /daily/*.
//   - Accounts and statistics: /auth/*, /stats/*, /leaderboard.
//
// Notes:
//   - Guests play under an anonymous cookie id; registered players under
//     their user id.
//   - Errors are JSON objects {"error": code}.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/auth"
	"github.com/robalobadob/wordle/internal/daily"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/metrics"
	"github.com/robalobadob/wordle/internal/session"
	"github.com/robalobadob/wordle/internal/stats"
	"github.com/robalobadob/wordle/internal/users"
	"github.com/robalobadob/wordle/internal/words"
)

// Deps are the services behind the HTTP API.
type Deps struct {
	Sessions *session.Service
	Daily    *daily.Service
	Users    *users.Registry
	Stats    *stats.SQLStore
	Auth     *auth.Issuer
	Lexicon  *words.Lexicon

	// ClientOrigin is the single origin allowed to make credentialed calls.
	ClientOrigin string
	// Timeout bounds handler time; 0 means 10s.
	Timeout time.Duration
}

// Server bundles the router and its dependencies.
type Server struct {
	r *chi.Mux
	Deps
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.Timeout <= 0 {
		d.Timeout = 10 * time.Second
	}
	if d.ClientOrigin == "" {
		d.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), Deps: d}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(d.Timeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{d.ClientOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-go",
			"endpoints": []string{
				"/health", "POST /game/new", "POST /game/guess", "POST /game/forfeit", "GET /game/{id}",
				"/daily/*", "/auth/*", "/stats/*", "/leaderboard",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Handle("/metrics", metrics.Handler())
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.Lexicon.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
	})

	// Game + Daily Challenge: optional auth (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.Auth.Optional)
		s.mountGame(r)
		if s.Daily != nil {
			s.mountDaily(r)
		}
	})

	s.mountAuth(s.r)
	s.mountStats(s.r)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decode reads a JSON body; it writes 400 bad_json and returns false on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}

// writeGameError maps service and engine errors onto status codes.
func writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, game.ErrWrongLength):
		writeError(w, http.StatusBadRequest, "wrong_length")
	case errors.Is(err, game.ErrNotInWordList):
		writeError(w, http.StatusBadRequest, "not_in_word_list")
	case errors.Is(err, game.ErrRoundAlreadyOver):
		writeError(w, http.StatusConflict, "round_over")
	case errors.Is(err, session.ErrNotFound), errors.Is(err, daily.ErrNotDaily):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, words.ErrUnknownDifficulty):
		writeError(w, http.StatusBadRequest, "unknown_difficulty")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}
