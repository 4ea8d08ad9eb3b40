package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// rankMatches filters names against a fuzzy query and orders the
// survivors best-first. An empty query returns the input order.
func rankMatches(names []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return names
	}
	type match struct {
		name  string
		score int
	}
	var out []match
	for _, name := range names {
		matched, score := fuzzyScore(name, q)
		if !matched {
			continue
		}
		out = append(out, match{name: name, score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return strings.ToLower(out[i].name) < strings.ToLower(out[j].name)
	})
	names = make([]string, 0, len(out))
	for _, m := range out {
		names = append(names, m.name)
	}
	return names
}

// fuzzyScore matches query as a subsequence of candidate. Substring
// hits rank above bare subsequences, prefixes above both, and edit
// distance breaks the remaining ties so near-exact names win.
func fuzzyScore(candidate, query string) (bool, int) {
	c := strings.ToLower(candidate)
	if !isSubsequence(c, query) {
		return false, 0
	}
	score := 0
	switch {
	case strings.HasPrefix(c, query):
		score += 200
	case strings.Contains(c, query):
		score += 100
	}
	score -= levenshtein.ComputeDistance(c, query)
	return true, score
}

func isSubsequence(s, sub string) bool {
	i := 0
	for _, r := range s {
		if i < len(sub) && byte(r) == sub[i] {
			i++
		}
	}
	return i == len(sub)
}
