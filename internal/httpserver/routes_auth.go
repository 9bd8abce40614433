// internal/httpserver/routes_auth.go
//
// Account routes: /auth/register, /auth/login, /auth/logout, /auth/me.
// Accounts are username-only; a successful register or login returns a
// token and sets the session cookie.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/internal/auth"
	"github.com/robalobadob/wordle/internal/users"
)

// mountAuth registers /auth routes. Accounts are username-only.
func (s *Server) mountAuth(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.With(s.Auth.Require).Get("/me", s.handleMe)
	})
}

type credentials struct {
	Username string `json:"username"`
}

type sessionRes struct {
	User  users.User `json:"user"`
	Token string     `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if !decode(w, r, &body) {
		return
	}
	u, err := s.Users.Register(r.Context(), body.Username)
	switch {
	case errors.Is(err, users.ErrInvalidUsername):
		writeError(w, http.StatusBadRequest, "invalid_username")
		return
	case errors.Is(err, users.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username_taken")
		return
	case err != nil:
		writeGameError(w, r, err)
		return
	}
	s.issue(w, r, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if !decode(w, r, &body) {
		return
	}
	u, err := s.Users.ByUsername(r.Context(), body.Username)
	if errors.Is(err, users.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	s.issue(w, r, u)
}

// issue signs a token for u and sets the auth cookie.
func (s *Server) issue(w http.ResponseWriter, r *http.Request, u users.User) {
	tok, exp, err := s.Auth.Sign(auth.User{ID: u.ID, Username: u.Username})
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	s.Auth.SetCookie(w, tok, exp)
	writeJSON(w, http.StatusOK, sessionRes{User: u, Token: tok})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Auth.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleMe returns the current user; tokens for deleted users are rejected.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r.Context())
	u, err := s.Users.ByID(r.Context(), me.ID)
	if errors.Is(err, users.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
