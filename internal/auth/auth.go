// internal/auth/auth.go
//
// Identity tokens and request identity.
// Responsibilities:
//   - Sign/parse HS256 JWTs carrying {id, username, exp, iat}.
//   - Set and clear the auth cookie; read tokens from "Authorization: Bearer"
//     or the cookie.
//   - Middleware: Optional attaches a user if a valid token is present,
//     Require rejects requests without one.
//   - Anonymous owners: a long-lived random cookie identifies players who
//     have not registered.
package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

var ErrInvalidToken = errors.New("auth: invalid token")

// User is the identity carried by a token.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// DeriveKey expands secret into a 32-byte key for label (HKDF-SHA256).
func DeriveKey(secret, label string) []byte {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(label))
	if _, err := io.ReadFull(r, key); err != nil {
		panic(fmt.Sprintf("auth: hkdf: %v", err))
	}
	return key
}

type Config struct {
	Key          []byte
	TTL          time.Duration
	CookieName   string
	AnonCookie   string
	SecureCookie bool
}

type Issuer struct {
	cfg Config
	now func() time.Time
}

func NewIssuer(cfg Config) *Issuer {
	if cfg.TTL <= 0 {
		cfg.TTL = 14 * 24 * time.Hour
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "wordle_token"
	}
	if cfg.AnonCookie == "" {
		cfg.AnonCookie = "wordle_anon"
	}
	return &Issuer{cfg: cfg, now: time.Now}
}

type claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Sign returns a token for u and its expiry.
func (i *Issuer) Sign(u User) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.cfg.TTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ID:       u.ID,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := token.SignedString(i.cfg.Key)
	return ss, exp, err
}

// Parse validates the signature, algorithm and expiry of s.
func (i *Issuer) Parse(s string) (User, error) {
	var c claims
	token, err := jwt.ParseWithClaims(s, &c, func(t *jwt.Token) (interface{}, error) {
		return i.cfg.Key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return User{}, ErrInvalidToken
	}
	if c.ID == "" || c.Username == "" {
		return User{}, ErrInvalidToken
	}
	return User{ID: c.ID, Username: c.Username}, nil
}

func (i *Issuer) SetCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, i.cookie(i.cfg.CookieName, token, exp))
}

func (i *Issuer) ClearCookie(w http.ResponseWriter) {
	c := i.cookie(i.cfg.CookieName, "", time.Time{})
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (i *Issuer) cookie(name, value string, exp time.Time) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if i.cfg.SecureCookie {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   i.cfg.SecureCookie,
		SameSite: sameSite,
		Expires:  exp,
	}
}

func (i *Issuer) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(i.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

type contextKey string

const userCtxKey = contextKey("user")

// Optional attaches the token's user to the request context when the token
// is valid; invalid or missing tokens are ignored.
func (i *Issuer) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := i.bearerOrCookie(r); tok != "" {
			if u, err := i.Parse(tok); err == nil {
				r = r.WithContext(WithUser(r.Context(), u))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Require answers 401 {"error":"unauthorized"} without a valid token.
func (i *Issuer) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := i.Parse(i.bearerOrCookie(r))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}` + "\n"))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userCtxKey).(User)
	return u, ok
}

// Owner identifies the player behind r: the user ID when authenticated,
// otherwise an anonymous id kept in a cookie (issued on first use).
func (i *Issuer) Owner(w http.ResponseWriter, r *http.Request) string {
	if u, ok := CurrentUser(r.Context()); ok {
		return u.ID
	}
	if c, err := r.Cookie(i.cfg.AnonCookie); err == nil && strings.HasPrefix(c.Value, "anon-") {
		return c.Value
	}
	id := "anon-" + uuid.NewString()
	http.SetCookie(w, i.cookie(i.cfg.AnonCookie, id, i.now().Add(365*24*time.Hour)))
	return id
}
