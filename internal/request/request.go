// Package request builds the plain-text "tool request" a user pastes into a
// ticket or chat when asking for a new tool.
package request

import (
	"context"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/legacycrew/toolshub/internal/catalog"
)

// Placeholders substituted for empty draft fields.
const (
	NamePlaceholder        = "[name]"
	UsersPlaceholder       = "[who will use it]"
	DescriptionPlaceholder = "[describe what it should do]"
)

// notes are appended to every request.
var notes = []string{
	"- Must be usable in-browser (GitHub Pages).",
	"- Must include a 'Back to Tools Hub' link.",
}

var lineBreaks = regexp.MustCompile(`(\r?\n)+`)

// Draft holds the three free-text fields of a request.
type Draft struct {
	Name        string
	Description string
	Users       string
}

// IsEmpty reports whether every field is blank.
func (d Draft) IsEmpty() bool {
	return strings.TrimSpace(d.Name) == "" &&
		strings.TrimSpace(d.Description) == "" &&
		strings.TrimSpace(d.Users) == ""
}

// Bullets turns description text into "- " prefixed lines, one per
// non-blank line of input.
func Bullets(description string) []string {
	var out []string
	for _, line := range lineBreaks.Split(strings.TrimSpace(description), -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, "- "+line)
	}
	return out
}

// Generate renders the request text for a hub titled title.
func Generate(title string, d Draft) string {
	if strings.TrimSpace(title) == "" {
		title = catalog.DefaultTitle
	}
	name := orPlaceholder(d.Name, NamePlaceholder)
	users := orPlaceholder(d.Users, UsersPlaceholder)

	requirements := Bullets(d.Description)
	if len(requirements) == 0 {
		requirements = []string{"- " + DescriptionPlaceholder}
	}

	lines := []string{
		"TOOL REQUEST — " + title,
		"",
		"Name: " + name,
		"Target users: " + users,
		"",
		"Requirements:",
	}
	lines = append(lines, requirements...)
	lines = append(lines, "", "Notes:")
	lines = append(lines, notes...)
	return strings.Join(lines, "\n")
}

func orPlaceholder(s, placeholder string) string {
	if s = strings.TrimSpace(s); s == "" {
		return placeholder
	}
	return s
}

// Clipboard writes text to the host clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

// WriteText implements Clipboard.
func (SystemClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return clipboard.WriteAll(text)
}
