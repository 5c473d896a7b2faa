package fuzzy_test

import (
	"testing"

	"github.com/aretw0/ecoguia/pkg/fuzzy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, fuzzy.Ratio("otamendi", "otamendi"))
	assert.Equal(t, 0.0, fuzzy.Ratio("abc", "xyz"))
	// 7 matching runes over 16 total.
	assert.InDelta(t, 0.875, fuzzy.Ratio("otamendy", "otamendi"), 1e-9)
	// Runes, not bytes: "ó" counts once.
	assert.InDelta(t, 2.0/3.0, fuzzy.Ratio("ajó", "ajo"), 1e-9)
	assert.Equal(t, 1.0, fuzzy.Ratio("", ""))
}

func TestCloseMatches(t *testing.T) {
	candidates := []string{"otamendi", "laguna de los padres", "punta lara", "otamendi norte"}

	got := fuzzy.CloseMatches("otamendy", candidates, 5, 0.6)
	require.NotEmpty(t, got)
	assert.Equal(t, "otamendi", got[0])
	assert.NotContains(t, got, "punta lara")
}

func TestCloseMatches_Cutoff(t *testing.T) {
	candidates := []string{"punta lara", "punta rasa"}
	assert.Empty(t, fuzzy.CloseMatches("mar chiquita", candidates, 5, 0.6))
	assert.Len(t, fuzzy.CloseMatches("punta lara", candidates, 5, 0.0), 2)
}

func TestCloseMatches_LimitAndOrder(t *testing.T) {
	candidates := []string{"aaaa", "aaab", "aabb", "aaaa", "abbb"}

	got := fuzzy.CloseMatches("aaaa", candidates, 2, 0.1)
	assert.Equal(t, []string{"aaaa", "aaab"}, got)

	assert.Nil(t, fuzzy.CloseMatches("aaaa", candidates, 0, 0.1))
	assert.Nil(t, fuzzy.CloseMatches("aaaa", nil, 3, 0.1))
}

func TestRank_TiesKeepCandidateOrder(t *testing.T) {
	// Every candidate differs from the query by one rune.
	candidates := []string{"cat", "bat", "hat"}
	ranked := fuzzy.Rank("mat", candidates, 5, 0.5)
	require.Len(t, ranked, 3)
	assert.Equal(t, "cat", ranked[0].Candidate)
	assert.Equal(t, "bat", ranked[1].Candidate)
	assert.Equal(t, "hat", ranked[2].Candidate)
	assert.Equal(t, 2, ranked[2].Index)
}

func TestRank_DuplicatesReportFirstOccurrence(t *testing.T) {
	ranked := fuzzy.Rank("delta", []string{"x", "delta", "delta"}, 5, 0.6)
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, ranked[0].Index)
}
