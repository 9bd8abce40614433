package words

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/robalobadob/wordle/internal/metrics"
)

const DefaultDictionaryURL = "https://api.dictionaryapi.dev/api/v2"

// Dictionary checks words against the Free Dictionary API.
type Dictionary struct {
	baseURL string
	client  *http.Client
}

func NewDictionary(baseURL string, client *http.Client) *Dictionary {
	if baseURL == "" {
		baseURL = DefaultDictionaryURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Dictionary{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Lookup reports whether the dictionary has an entry for word.
// 200 means yes, 404 means no; anything else is an error.
func (d *Dictionary) Lookup(ctx context.Context, word string) (_ bool, err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.RemoteDuration.WithLabelValues("dictionary", result).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		d.baseURL+"/entries/en/"+url.PathEscape(strings.ToLower(word)), nil)
	if err != nil {
		return false, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("words: dictionary request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	}
	return false, fmt.Errorf("words: dictionary status %d", resp.StatusCode)
}
