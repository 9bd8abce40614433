package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"", Medium, false},
		{"easy", Easy, false},
		{" HARD ", Hard, false},
		{"medium", Medium, false},
		{"nightmare", Medium, true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownDifficulty)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestSplit(t *testing.T) {
	ranked := []string{"w0", "w1", "w2", "w3", "w4", "w5", "w6", "w7", "w8", "w9"}
	tiers := Split(ranked)
	assert.Equal(t, []string{"w0", "w1", "w2"}, tiers.Easy)
	assert.Equal(t, []string{"w3", "w4", "w5", "w6"}, tiers.Medium)
	assert.Equal(t, []string{"w7", "w8", "w9"}, tiers.Hard)
	assert.Equal(t, 10, tiers.Len())
	assert.Equal(t, tiers.Hard, tiers.For(Hard))
	assert.Equal(t, tiers.Medium, tiers.For("bogus"))
	assert.True(t, tiers.Contains("w5"))
	assert.False(t, tiers.Contains("w10"))
}

func TestSplit_Floors(t *testing.T) {
	tiers := Split([]string{"a", "b", "c", "d"})
	// floor(1.2)=1, floor(2.8)=2
	assert.Equal(t, []string{"a"}, tiers.Easy)
	assert.Equal(t, []string{"b"}, tiers.Medium)
	assert.Equal(t, []string{"c", "d"}, tiers.Hard)

	assert.Zero(t, Split(nil).Len())
}

func TestSplit_AppendDoesNotBleed(t *testing.T) {
	tiers := Split([]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"})
	_ = append(tiers.Easy, "x")
	require.Equal(t, "d", tiers.Medium[0])
}

func TestRankByCommonness(t *testing.T) {
	// "tears" has 5 common letters, "jazzy" has 1 ('a'), "fjord" has 3 (o,r,d)
	got := RankByCommonness([]string{"jazzy", "fjord", "tears", "notes"})
	assert.Equal(t, []string{"tears", "notes", "fjord", "jazzy"}, got)
}
