// internal/users/users.go
//
// Username-only accounts.
// Usernames are unauthenticated identifiers: registering claims a name and
// logging in only proves the name exists. They key stats and leaderboards.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound        = errors.New("users: not found")
	ErrUsernameTaken   = errors.New("users: username taken")
	ErrInvalidUsername = errors.New("users: username must be 3-24 letters, digits or underscores")
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type registration struct {
	Username string `json:"username" validate:"required,min=3,max=24,username"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				return false
			}
		}
		return true
	})
	return v
}

// ValidateUsername reports ErrInvalidUsername, wrapping the failed rule.
func ValidateUsername(name string) error {
	if err := validate.Struct(registration{Username: name}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w (%s)", ErrInvalidUsername, verrs[0].Tag())
		}
		return ErrInvalidUsername
	}
	return nil
}

type Registry struct {
	db  *sql.DB
	now func() time.Time
}

func NewRegistry(db *sql.DB) *Registry {
	return &Registry{db: db, now: time.Now}
}

// Register claims username. Names are unique ignoring case; the spelling
// given at registration is kept.
func (r *Registry) Register(ctx context.Context, username string) (User, error) {
	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return User{}, err
	}
	u := User{ID: uuid.NewString(), Username: username, CreatedAt: r.now().UTC().Truncate(time.Second)}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, created_at) VALUES (?, ?, ?)`,
		u.ID, u.Username, u.CreatedAt.Format(time.RFC3339),
	)
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
		return User{}, ErrUsernameTaken
	}
	if err != nil {
		return User{}, fmt.Errorf("users: insert: %w", err)
	}
	return u, nil
}

func (r *Registry) ByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM users WHERE lower(username)=lower(?)`,
		strings.TrimSpace(username)))
}

func (r *Registry) ByID(ctx context.Context, id string) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM users WHERE id=?`, id))
}

func scanUser(row *sql.Row) (User, error) {
	var (
		u       User
		created string
	)
	if err := row.Scan(&u.ID, &u.Username, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return u, nil
}
