// Package render turns a list of matching records into displayable cards for
// the terminal, plain text output and HTML.
package render

import (
	"github.com/legacycrew/toolshub/internal/catalog"
)

// EmptyMessage is shown instead of cards when nothing matches. It covers
// both an empty catalog and a filter with no hits.
const EmptyMessage = "No matches. Clear the search or pick another division to show tools."

// LabelSeparator joins the division and type on a card.
const LabelSeparator = " • "

// Card is the display form of one record. Fields hold raw catalog text;
// each medium escapes them on output.
type Card struct {
	Name        string
	Label       string
	Description string
	URL         string
	Repo        string
}

// NewCard builds the card for r, substituting display defaults.
func NewCard(r catalog.Record) Card {
	return Card{
		Name:        r.Name,
		Label:       r.DisplayDivision() + LabelSeparator + r.DisplayType(),
		Description: r.Description,
		URL:         r.LinkURL(),
		Repo:        r.LinkRepo(),
	}
}

// HasURL reports whether the card links somewhere real.
func (c Card) HasURL() bool { return c.URL != catalog.NoLink }

// HasRepo reports whether the card has a source link.
func (c Card) HasRepo() bool { return c.Repo != catalog.NoLink }

// Result is what every medium draws: the cards plus the visible count.
type Result struct {
	Cards []Card
	Count int
}

// Build converts matching records into a Result, preserving order.
func Build(records []catalog.Record) Result {
	cards := make([]Card, 0, len(records))
	for _, r := range records {
		cards = append(cards, NewCard(r))
	}
	return Result{Cards: cards, Count: len(cards)}
}

// Empty reports whether the placeholder should be shown.
func (r Result) Empty() bool { return len(r.Cards) == 0 }
