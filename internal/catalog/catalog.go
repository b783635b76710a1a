// Package catalog holds the static directory of tool records shown by the
// hub. A catalog is loaded once at startup and never mutated afterwards.
package catalog

import (
	"strings"
)

// All is the division sentinel that matches every record.
const All = "All"

// Display defaults substituted for missing record fields.
const (
	Placeholder  = "—"
	NoLink       = "#"
	UntitledName = "Untitled tool"
)

// Divisions is an ordered set of division tags. Membership is
// case-insensitive and the first spelling of a tag wins.
type Divisions []string

// NewDivisions normalizes tags into a Divisions set: blank tags are dropped,
// surrounding space is trimmed and duplicates (ignoring case) are removed.
func NewDivisions(tags ...string) Divisions {
	var out Divisions
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || out.Contains(tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// Contains reports whether tag is in the set, ignoring case.
func (d Divisions) Contains(tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, have := range d {
		if strings.EqualFold(have, tag) {
			return true
		}
	}
	return false
}

// String joins the tags with single spaces, the form used for searching.
func (d Divisions) String() string {
	return strings.Join(d, " ")
}

// Label joins the tags for display on a card.
func (d Divisions) Label() string {
	return strings.Join(d, ", ")
}

// Record is one tool entry in the catalog.
type Record struct {
	Name        string    `json:"name"`
	Division    Divisions `json:"division"`
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Repo        string    `json:"repo,omitempty"`
}

// DisplayDivision returns the division label or the placeholder glyph.
func (r Record) DisplayDivision() string {
	if len(r.Division) == 0 {
		return Placeholder
	}
	return r.Division.Label()
}

// DisplayType returns the category label or the placeholder glyph.
func (r Record) DisplayType() string {
	if strings.TrimSpace(r.Type) == "" {
		return Placeholder
	}
	return r.Type
}

// LinkURL returns the tool link, or a no-op anchor when absent.
func (r Record) LinkURL() string {
	return linkOr(r.URL)
}

// LinkRepo returns the source link, or a no-op anchor when absent.
func (r Record) LinkRepo() string {
	return linkOr(r.Repo)
}

func linkOr(link string) string {
	if link = strings.TrimSpace(link); link == "" {
		return NoLink
	}
	return link
}

func (r Record) clone() Record {
	r.Division = append(Divisions(nil), r.Division...)
	return r
}

// Catalog is the immutable collection of records plus the closed division
// enumeration used to build filter chips.
type Catalog struct {
	title     string
	divisions Divisions
	records   []Record
	source    string
	raw       []byte
}

// New builds a catalog directly from records. When divisions is empty the
// enumeration is derived from the records in first-seen order.
func New(title string, divisions []string, records []Record) *Catalog {
	c := &Catalog{
		title:     title,
		divisions: NewDivisions(divisions...),
		records:   make([]Record, 0, len(records)),
		source:    "memory",
	}
	for _, r := range records {
		c.records = append(c.records, r.clone())
	}
	if len(c.divisions) == 0 {
		c.divisions = deriveDivisions(c.records)
	}
	if strings.TrimSpace(c.title) == "" {
		c.title = DefaultTitle
	}
	return c
}

// DefaultTitle names the hub when the catalog does not.
const DefaultTitle = "Legacy Crew Tools Hub"

// Title returns the hub name.
func (c *Catalog) Title() string { return c.title }

// Source describes where the catalog was loaded from.
func (c *Catalog) Source() string { return c.source }

// Raw returns the catalog document as it was read, if any.
func (c *Catalog) Raw() []byte { return append([]byte(nil), c.raw...) }

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Records returns a copy of the records in catalog order.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	for i, r := range c.records {
		out[i] = r.clone()
	}
	return out
}

// Divisions returns the division enumeration without the All sentinel.
func (c *Catalog) Divisions() Divisions {
	return append(Divisions(nil), c.divisions...)
}

// Chips returns the ordered filter choices: All first, then each division.
func (c *Catalog) Chips() []string {
	chips := make([]string, 0, len(c.divisions)+1)
	chips = append(chips, All)
	return append(chips, c.divisions...)
}

// IsChip reports whether tag is one of the chips, ignoring case, and
// returns its canonical spelling.
func (c *Catalog) IsChip(tag string) (string, bool) {
	for _, chip := range c.Chips() {
		if strings.EqualFold(chip, strings.TrimSpace(tag)) {
			return chip, true
		}
	}
	return "", false
}

func deriveDivisions(records []Record) Divisions {
	var tags []string
	for _, r := range records {
		tags = append(tags, r.Division...)
	}
	return NewDivisions(tags...)
}
