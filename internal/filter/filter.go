// Package filter decides which catalog records match the current search text
// and division chip. Every function here is pure.
package filter

import (
	"strings"

	"github.com/legacycrew/toolshub/internal/catalog"
)

// MatchesDivision reports whether r belongs to division. The All sentinel
// and an empty division match everything.
func MatchesDivision(r catalog.Record, division string) bool {
	division = strings.TrimSpace(division)
	if division == "" || strings.EqualFold(division, catalog.All) {
		return true
	}
	return r.Division.Contains(division)
}

// Haystack is the lowercased text a search query is matched against: name,
// division tags, type and description, blank fields omitted.
func Haystack(r catalog.Record) string {
	parts := make([]string, 0, 4)
	for _, field := range []string{r.Name, r.Division.String(), r.Type, r.Description} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// NormalizeQuery trims and lowercases a search string.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// MatchesText reports whether r matches the free-text query. A blank query
// matches everything.
func MatchesText(r catalog.Record, query string) bool {
	q := NormalizeQuery(query)
	if q == "" {
		return true
	}
	return strings.Contains(Haystack(r), q)
}

// Matches composes both predicates.
func Matches(r catalog.Record, query, division string) bool {
	return MatchesDivision(r, division) && MatchesText(r, query)
}

// Apply returns the records matching query and division in their original
// order. The result is never nil.
func Apply(records []catalog.Record, query, division string) []catalog.Record {
	out := make([]catalog.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, query, division) {
			out = append(out, r)
		}
	}
	return out
}
