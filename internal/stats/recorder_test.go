package stats

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/metrics"
)

type failingStore struct{ Store }

func (failingStore) Record(context.Context, Outcome) error { return errors.New("disk full") }

func TestRecorder_SwallowsFailures(t *testing.T) {
	good := NewFileStore(filepath.Join(t.TempDir(), "stats.json"))
	r := NewRecorder(
		Named{Name: "broken", Store: failingStore{}},
		Named{Name: "file", Store: good},
	)

	before := testutil.ToFloat64(metrics.StatsFailures.WithLabelValues("broken"))
	wonBefore := testutil.ToFloat64(metrics.RoundsFinished.WithLabelValues("won"))

	n := r.Record(context.Background(), Outcome{Secret: "crane", Won: true, GuessesUsed: 3})
	assert.Equal(t, 1, n)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StatsFailures.WithLabelValues("broken")))
	assert.Equal(t, wonBefore+1, testutil.ToFloat64(metrics.RoundsFinished.WithLabelValues("won")))

	agg, err := good.Aggregates(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, agg.TotalWins)
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	assert.Equal(t, 0, r.Record(context.Background(), Outcome{Secret: "crane", GuessesUsed: 6}))
}
