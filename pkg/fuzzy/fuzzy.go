// Package fuzzy ranks candidate strings by approximate similarity to a query.
//
// Similarity is the matching-blocks ratio 2*M/T, where M is the number of
// characters in the longest matching blocks and T the combined length of both
// strings. It is computed per rune, so accented input is never split mid-character.
package fuzzy

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

// Match is a candidate that scored at or above the cutoff.
type Match struct {
	Candidate string
	Index     int // position of the first occurrence in the candidate list
	Score     float64
}

// Ratio returns the similarity of a and b in [0, 1].
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(symbols(a), symbols(b)).Ratio()
}

// Rank scores every distinct candidate against query and returns at most n
// matches whose score is >= cutoff, best first. Equal scores keep candidate
// order. n <= 0 yields no matches; cutoff is clamped to [0, 1].
func Rank(query string, candidates []string, n int, cutoff float64) []Match {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}
	cutoff = clamp(cutoff)

	// The query is the second sequence so its junk analysis is done once.
	m := difflib.NewMatcher(nil, symbols(query))

	seen := make(map[string]struct{}, len(candidates))
	var matches []Match
	for i, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}

		m.SetSeq1(symbols(c))
		// Cheap upper bounds first.
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		score := m.Ratio()
		if score < cutoff {
			continue
		}
		matches = append(matches, Match{Candidate: c, Index: i, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > n {
		matches = matches[:n]
	}
	return matches
}

// CloseMatches is Rank reduced to the candidate strings.
func CloseMatches(query string, candidates []string, n int, cutoff float64) []string {
	ranked := Rank(query, candidates, n, cutoff)
	if len(ranked) == 0 {
		return nil
	}
	out := make([]string, len(ranked))
	for i, m := range ranked {
		out[i] = m.Candidate
	}
	return out
}

func symbols(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
