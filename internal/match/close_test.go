package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titles = []string{
	"Avatar",
	"Avenger",
	"Spectre",
	"The Dark Knight Rises",
	"John Carter",
	"Heat",
	"Pirates of the Caribbean: At World's End",
}

func TestBest(t *testing.T) {
	m := NewMatcher(titles)

	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
		score  float64
	}{
		{"exact", "Avatar", "Avatar", true, 1.0},
		{"typo", "avtaar", "Avatar", true, 0.8333},
		{"case insensitive", "AVENGERS", "Avenger", true, 0.9333},
		{"truncated", "spectr", "Spectre", true, 0.9231},
		{"partial title", "dark knight", "The Dark Knight Rises", true, 0.6875},
		{"gibberish", "xqzvw", "", false, 0},
		{"empty", "", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Best(tt.query)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.Title)
			assert.InDelta(t, tt.score, got.Score, 0.0001)
		})
	}
}

func TestCloseMatchesOrdering(t *testing.T) {
	got := CloseMatches("heat", []string{"HEAT", "Heat", "Heath", "Hat"}, 10, DefaultCutoff)
	require.Len(t, got, 4)

	// Equal scores fall back to descending title order.
	assert.Equal(t, "Heat", got[0].Title)
	assert.Equal(t, "HEAT", got[1].Title)
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, "Heath", got[2].Title)
	assert.Equal(t, "Hat", got[3].Title)
	assert.Greater(t, got[2].Score, got[3].Score)
}

func TestCloseMatchesLimitAndDefaults(t *testing.T) {
	m := NewMatcher([]string{"aaaa", "aaab", "aabb", "abbb"})

	assert.Len(t, m.CloseMatches("aaaa", 2, 0), 2)
	assert.Len(t, m.CloseMatches("aaaa", 0, 0), DefaultN)

	// Out-of-range cutoffs fall back to DefaultCutoff.
	got := m.CloseMatches("aaaa", 10, 7)
	for _, g := range got {
		assert.GreaterOrEqual(t, g.Score, DefaultCutoff)
	}
}

func TestBestWithCutoff(t *testing.T) {
	m := NewMatcher(titles)

	_, ok := m.BestWithCutoff("dark knight", 0.9)
	assert.False(t, ok)

	got, ok := m.BestWithCutoff("dark knight", 0.5)
	require.True(t, ok)
	assert.Equal(t, "The Dark Knight Rises", got.Title)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("Avatar", "avatar"))
	assert.InDelta(t, 0.8333, Ratio("Avatar", "avtaar"), 0.0001)
	assert.Equal(t, 0.0, Ratio("abc", ""))
}

func TestMatcherEmpty(t *testing.T) {
	m := NewMatcher(nil)
	assert.Equal(t, 0, m.Len())
	_, ok := m.Best("Avatar")
	assert.False(t, ok)
}
