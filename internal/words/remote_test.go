package words

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datamuseBody = `[
	{"word":"about","score":100,"tags":["f:1200.5"]},
	{"word":"zesty","score":90,"tags":["f:0.4"]},
	{"word":"fjord","score":80,"tags":["f:1.2"]},
	{"word":"large","score":70,"tags":["f:300"]},
	{"word":"new york","score":60,"tags":["f:900"]},
	{"word":"it's","score":50},
	{"word":"Crane","score":40,"tags":["f:12"]},
	{"word":"plumb","score":30,"tags":["f:2"]},
	{"word":"haiku","score":20,"tags":["f:3"]},
	{"word":"water","score":10,"tags":["f:500"]},
	{"word":"ghost","score":5,"tags":["f:40"]},
	{"word":"opera","score":7}
]`

func datamuseServer(t *testing.T, hits *atomic.Int32, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/words", r.URL.Path)
		assert.Equal(t, "?????", r.URL.Query().Get("sp"))
		assert.Equal(t, "f", r.URL.Query().Get("md"))
		assert.Equal(t, "1000", r.URL.Query().Get("max"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDatamuse_RanksAndSplits(t *testing.T) {
	var hits atomic.Int32
	srv := datamuseServer(t, &hits, http.StatusOK, datamuseBody)
	d := NewDatamuse(srv.URL, srv.Client(), time.Hour)

	tiers, err := d.Tiers(context.Background())
	require.NoError(t, err)

	// 10 valid words ranked by f: tag (opera has none, falls back to score 7)
	assert.Equal(t, []string{"about", "water", "large"}, tiers.Easy)
	assert.Equal(t, []string{"ghost", "crane", "opera", "haiku"}, tiers.Medium)
	assert.Equal(t, []string{"plumb", "fjord", "zesty"}, tiers.Hard)
	assert.False(t, tiers.Contains("new york"))
}

func TestDatamuse_CachesForTTL(t *testing.T) {
	var hits atomic.Int32
	srv := datamuseServer(t, &hits, http.StatusOK, datamuseBody)
	d := NewDatamuse(srv.URL, srv.Client(), time.Hour)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	_, cached := d.Cached()
	assert.False(t, cached)

	_, err := d.Tiers(context.Background())
	require.NoError(t, err)
	_, err = d.Tiers(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())

	now = now.Add(61 * time.Minute)
	_, err = d.Tiers(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, hits.Load())

	tiers, cached := d.Cached()
	assert.True(t, cached)
	assert.Equal(t, 10, tiers.Len())
}

func TestDatamuse_CachedDoesNotWaitForRefresh(t *testing.T) {
	release := make(chan struct{})
	arrived := make(chan struct{}, 4)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) > 1 {
			arrived <- struct{}{}
			<-release
		}
		_, _ = w.Write([]byte(datamuseBody))
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	var stale atomic.Bool
	d := NewDatamuse(srv.URL, srv.Client(), time.Hour)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time {
		if stale.Load() {
			return base.Add(2 * time.Hour)
		}
		return base
	}
	_, err := d.Tiers(context.Background())
	require.NoError(t, err)

	stale.Store(true)
	refreshed := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := d.Tiers(context.Background())
			refreshed <- err
		}()
	}
	<-arrived

	done := make(chan bool)
	go func() {
		_, ok := d.Cached()
		done <- ok
	}()
	select {
	case ok := <-done:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Cached blocked behind an in-flight refresh")
	}

	release <- struct{}{}
	require.NoError(t, <-refreshed)
	require.NoError(t, <-refreshed)
	assert.EqualValues(t, 2, hits.Load(), "concurrent refreshes share one request")
}

func TestDatamuse_Errors(t *testing.T) {
	var hits atomic.Int32

	srv := datamuseServer(t, &hits, http.StatusInternalServerError, `oops`)
	_, err := NewDatamuse(srv.URL, srv.Client(), time.Hour).Tiers(context.Background())
	assert.Error(t, err)

	empty := datamuseServer(t, &hits, http.StatusOK, `[{"word":"a b"}]`)
	_, err = NewDatamuse(empty.URL, empty.Client(), time.Hour).Tiers(context.Background())
	assert.ErrorIs(t, err, ErrNoRemoteWords)

	garbage := datamuseServer(t, &hits, http.StatusOK, `{not json`)
	_, err = NewDatamuse(garbage.URL, garbage.Client(), time.Hour).Tiers(context.Background())
	assert.Error(t, err)
}

func TestDictionary_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/entries/en/quirk":
			_, _ = w.Write([]byte(`[{"word":"quirk"}]`))
		case "/entries/en/zzzzz":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}))
	defer srv.Close()
	d := NewDictionary(srv.URL, srv.Client())

	ok, err := d.Lookup(context.Background(), "QUIRK")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.Lookup(context.Background(), "zzzzz")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = d.Lookup(context.Background(), "other")
	assert.Error(t, err)
}
