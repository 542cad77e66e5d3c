package foodparse

import (
	"sort"

	"macrolog/internal/food"
)

const (
	// DefaultThreshold is the minimum similarity for a catalog item to count
	// as a match at all.
	DefaultThreshold = 0.3

	// bestMatchCutoff is the score above which the top match is trusted for
	// auto-logging; at or below it the caller should ask the user.
	bestMatchCutoff = 0.5

	maxMatches = 5
)

// Match pairs a catalog item with its similarity score against a query.
type Match struct {
	Food  food.Item
	Score float64
}

// EntryMatches is one parsed entry with its ranked catalog candidates. Best
// is nil when no candidate is confident enough to log without confirmation.
type EntryMatches struct {
	Entry   ParsedEntry
	Matches []Match
	Best    *Match
}

// Matcher ranks a saved-food catalog against parsed entry names. Cost is
// O(catalog × name length) per call, fine for personal-scale catalogs.
type Matcher struct {
	threshold float64
}

// NewMatcher builds a Matcher. A non-positive threshold falls back to
// DefaultThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Rank scores query against every catalog item and returns those at or above
// the threshold, sorted by descending score. The sort is stable so ties keep
// catalog order.
func (m *Matcher) Rank(query string, catalog []food.Item) []Match {
	var matches []Match
	for _, item := range catalog {
		score := Similarity(query, item.Name)
		if score >= m.threshold {
			matches = append(matches, Match{Food: item, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// MatchEntry ranks the catalog against one parsed entry, keeping the top
// five candidates and promoting the leader to Best only above the confidence
// cutoff.
func (m *Matcher) MatchEntry(entry ParsedEntry, catalog []food.Item) EntryMatches {
	matches := m.Rank(entry.FoodName, catalog)
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	var best *Match
	if len(matches) > 0 && matches[0].Score > bestMatchCutoff {
		best = &matches[0]
	}

	return EntryMatches{Entry: entry, Matches: matches, Best: best}
}

// MatchAll matches every parsed entry against the catalog, preserving entry
// order.
func (m *Matcher) MatchAll(entries []ParsedEntry, catalog []food.Item) []EntryMatches {
	results := make([]EntryMatches, 0, len(entries))
	for _, entry := range entries {
		results = append(results, m.MatchEntry(entry, catalog))
	}
	return results
}
