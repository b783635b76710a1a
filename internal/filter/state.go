package filter

import (
	"strings"

	"github.com/legacycrew/toolshub/internal/catalog"
)

// State is the active division chip and search text for one browsing
// session. It is a plain value: callers own it and pass it around.
type State struct {
	Division string
	Search   string
}

// NewState returns the initial state: All divisions, empty search.
func NewState() State {
	return State{Division: catalog.All}
}

// SetDivision returns a copy of s with the division changed. A blank
// division resets to All.
func (s State) SetDivision(division string) State {
	if strings.TrimSpace(division) == "" {
		division = catalog.All
	}
	s.Division = division
	return s
}

// SetSearch returns a copy of s with the search text changed.
func (s State) SetSearch(search string) State {
	s.Search = search
	return s
}

// IsActive reports whether chip is the selected division.
func (s State) IsActive(chip string) bool {
	if isAll(s.Division) {
		return isAll(chip)
	}
	return strings.EqualFold(strings.TrimSpace(chip), strings.TrimSpace(s.Division))
}

// Apply filters records with this state.
func (s State) Apply(records []catalog.Record) []catalog.Record {
	return Apply(records, s.Search, s.Division)
}

func isAll(division string) bool {
	division = strings.TrimSpace(division)
	return division == "" || strings.EqualFold(division, catalog.All)
}
