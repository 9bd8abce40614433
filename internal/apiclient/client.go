// Package apiclient talks to a running Wordle server from the terminal
// client. It covers what the CLI needs to move local statistics into an
// account: log in, then import aggregates.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/robalobadob/wordle/internal/stats"
)

// Error is a non-2xx response carrying the server's error code.
type Error struct {
	Status int
	Code   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("apiclient: %d %s", e.Status, e.Code)
}

// ErrNoToken means a login response carried no token.
var ErrNoToken = errors.New("apiclient: server returned no token")

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A nil http client gets a 10s timeout.
func New(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: client}
}

// Login returns a bearer token for username.
func (c *Client) Login(ctx context.Context, username string) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &res); err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", ErrNoToken
	}
	return res.Token, nil
}

// ImportStats seeds the account behind token with a. It reports false when
// the account already had statistics.
func (c *Client) ImportStats(ctx context.Context, token string, a stats.Aggregates) (bool, error) {
	var res struct {
		Imported bool `json:"imported"`
	}
	if err := c.do(ctx, http.MethodPost, "/stats/import", token, a, &res); err != nil {
		return false, err
	}
	return res.Imported, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &Error{Status: resp.StatusCode, Code: e.Error}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
