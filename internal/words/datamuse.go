// internal/words/datamuse.go
//
// Remote frequency-ranked word source backed by the Datamuse API.
//
// One request fetches up to 1000 five-letter words with frequency metadata
// (`sp=?????&md=f&max=1000`). Words are ranked by their `f:<per-million>`
// tag, falling back to the API score and finally to a random value, then
// split into difficulty tiers. The result is cached for TTL.
package words

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/robalobadob/wordle/internal/metrics"
)

const DefaultDatamuseURL = "https://api.datamuse.com"

var ErrNoRemoteWords = errors.New("words: no valid words received from api")

// Datamuse fetches and caches difficulty tiers. Safe for concurrent use.
// Concurrent refreshes share one request, and readers of the cache never
// wait on the network.
type Datamuse struct {
	baseURL string
	client  *http.Client
	ttl     time.Duration
	now     func() time.Time

	flight  singleflight.Group
	mu      sync.RWMutex
	tiers   Tiers
	fetched time.Time
}

// NewDatamuse creates a client. A zero ttl disables caching.
func NewDatamuse(baseURL string, client *http.Client, ttl time.Duration) *Datamuse {
	if baseURL == "" {
		baseURL = DefaultDatamuseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Datamuse{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Tiers returns cached tiers when fresh, otherwise fetches new ones.
// A failed refresh leaves the previous cache untouched.
func (d *Datamuse) Tiers(ctx context.Context) (Tiers, error) {
	if t, ok := d.fresh(); ok {
		return t, nil
	}
	v, err, _ := d.flight.Do("tiers", func() (any, error) {
		if t, ok := d.fresh(); ok {
			return t, nil
		}
		t, err := d.fetch(ctx)
		if err != nil {
			return Tiers{}, err
		}
		d.mu.Lock()
		d.tiers, d.fetched = t, d.now()
		d.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return Tiers{}, err
	}
	return v.(Tiers), nil
}

// Cached returns the last fetched tiers without touching the network.
func (d *Datamuse) Cached() (Tiers, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.fetched.IsZero() {
		return Tiers{}, false
	}
	return d.tiers, true
}

func (d *Datamuse) fresh() (Tiers, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ok := !d.fetched.IsZero() && d.tiers.Len() > 0 && d.now().Sub(d.fetched) < d.ttl
	return d.tiers, ok
}

// datamuseWord is one element of the API response.
type datamuseWord struct {
	Word  string   `json:"word"`
	Score float64  `json:"score"`
	Tags  []string `json:"tags"`
}

func (d *Datamuse) fetch(ctx context.Context) (_ Tiers, err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.RemoteDuration.WithLabelValues("datamuse", result).Observe(time.Since(start).Seconds())
	}()

	q := url.Values{}
	q.Set("sp", "?????")
	q.Set("md", "f")
	q.Set("max", "1000")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/words?"+q.Encode(), nil)
	if err != nil {
		return Tiers{}, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return Tiers{}, fmt.Errorf("words: datamuse request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Tiers{}, fmt.Errorf("words: datamuse status %d", resp.StatusCode)
	}

	var data []datamuseWord
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Tiers{}, fmt.Errorf("words: datamuse decode: %w", err)
	}
	ranked := rankByFrequency(data)
	if len(ranked) == 0 {
		return Tiers{}, ErrNoRemoteWords
	}
	return Split(ranked), nil
}

// rankByFrequency keeps valid words and orders them most frequent first.
func rankByFrequency(data []datamuseWord) []string {
	type ranked struct {
		word string
		freq float64
	}
	seen := make(map[string]struct{}, len(data))
	rs := make([]ranked, 0, len(data))
	for _, w := range data {
		word := strings.ToLower(w.Word)
		if !valid(word) {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		rs = append(rs, ranked{word, frequency(w)})
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].freq > rs[j].freq })

	out := make([]string, len(rs))
	for i := range rs {
		out[i] = rs[i].word
	}
	return out
}

func frequency(w datamuseWord) float64 {
	for _, tag := range w.Tags {
		if v, ok := strings.CutPrefix(tag, "f:"); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f != 0 {
				return f
			}
		}
	}
	if w.Score != 0 {
		return w.Score
	}
	return rand.Float64()
}
