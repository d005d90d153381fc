// Package match finds the known titles closest to free-text input.
package match

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// DefaultCutoff is the minimum similarity ratio for a candidate to count as a match.
	DefaultCutoff = 0.6
	// DefaultN is the number of candidates returned by CloseMatches when n <= 0.
	DefaultN = 3
)

// Match is a candidate title and its similarity ratio in [0, 1].
type Match struct {
	Title string
	Score float64
}

// Matcher scores free text against a fixed list of titles.
// Titles are compared case-insensitively, character by character, with the
// ratio 2*M/T used by difflib's SequenceMatcher.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	titles []string
	seqs   [][]string
}

// NewMatcher prepares titles for matching. Duplicates are kept.
func NewMatcher(titles []string) *Matcher {
	m := &Matcher{
		titles: make([]string, len(titles)),
		seqs:   make([][]string, len(titles)),
	}
	copy(m.titles, titles)
	for i, t := range titles {
		m.seqs[i] = runes(t)
	}
	return m
}

// Len returns the number of titles.
func (m *Matcher) Len() int {
	return len(m.titles)
}

// CloseMatches returns up to n titles whose ratio against word is at least
// cutoff, best first. Equal scores are ordered by title, descending.
func (m *Matcher) CloseMatches(word string, n int, cutoff float64) []Match {
	if n <= 0 {
		n = DefaultN
	}
	if cutoff < 0 || cutoff > 1 {
		cutoff = DefaultCutoff
	}

	sm := difflib.NewMatcher(nil, runes(word))
	var found []Match
	for i, seq := range m.seqs {
		sm.SetSeq1(seq)
		if sm.RealQuickRatio() < cutoff || sm.QuickRatio() < cutoff {
			continue
		}
		if ratio := sm.Ratio(); ratio >= cutoff {
			found = append(found, Match{Title: m.titles[i], Score: ratio})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Score != found[j].Score {
			return found[i].Score > found[j].Score
		}
		return found[i].Title > found[j].Title
	})
	if len(found) > n {
		found = found[:n]
	}
	return found
}

// Best returns the single closest title above DefaultCutoff.
func (m *Matcher) Best(word string) (Match, bool) {
	return m.BestWithCutoff(word, DefaultCutoff)
}

// BestWithCutoff returns the single closest title above cutoff.
func (m *Matcher) BestWithCutoff(word string, cutoff float64) (Match, bool) {
	found := m.CloseMatches(word, 1, cutoff)
	if len(found) == 0 {
		return Match{}, false
	}
	return found[0], true
}

// CloseMatches is a convenience wrapper for one-off lookups.
func CloseMatches(word string, possibilities []string, n int, cutoff float64) []Match {
	return NewMatcher(possibilities).CloseMatches(word, n, cutoff)
}

// Ratio returns the case-insensitive similarity ratio of a and b.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// runes lowercases s and splits it into one element per character.
func runes(s string) []string {
	lower := strings.ToLower(s)
	out := make([]string, 0, len(lower))
	for _, r := range lower {
		out = append(out, string(r))
	}
	return out
}
