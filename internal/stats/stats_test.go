package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregates_Consistent(t *testing.T) {
	tests := []struct {
		name string
		agg  Aggregates
		want bool
	}{
		{"empty", Aggregates{}, true},
		{"played", Aggregates{TotalGames: 7, TotalWins: 5, TotalLosses: 2, CurrentStreak: 1, MaxStreak: 4}, true},
		{"negative", Aggregates{TotalGames: -1, TotalLosses: -1}, false},
		{"totals do not add up", Aggregates{TotalGames: 3, TotalWins: 1}, false},
		{"current above max", Aggregates{TotalGames: 3, TotalWins: 3, CurrentStreak: 3, MaxStreak: 2}, false},
		{"streak above wins", Aggregates{TotalGames: 5, TotalWins: 5, CurrentStreak: 1, MaxStreak: 500}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.agg.Consistent())
		})
	}

	// totals built by play are always consistent
	var a Aggregates
	for _, won := range []bool{true, true, false, true, false, false, true} {
		a = a.Apply(won)
		assert.True(t, a.Consistent(), "%+v", a)
	}
}

func TestHistoryLimit(t *testing.T) {
	assert.Equal(t, DefaultHistoryLimit, historyLimit(0))
	assert.Equal(t, DefaultHistoryLimit, historyLimit(-4))
	assert.Equal(t, 7, historyLimit(7))
	assert.Equal(t, MaxHistoryLimit, historyLimit(1<<40))
}
