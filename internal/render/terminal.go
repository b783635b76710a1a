package render

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"unicode"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/legacycrew/toolshub/internal/catalog"
)

// SanitizeTerminal makes catalog text safe to print: escape sequences are
// removed and remaining control characters become spaces.
func SanitizeTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// SanitizeTerminalLines is SanitizeTerminal applied per line, keeping the
// line breaks.
func SanitizeTerminalLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = SanitizeTerminal(line)
	}
	return strings.Join(lines, "\n")
}

// CardStyles controls how terminal cards look.
type CardStyles struct {
	Card     lipgloss.Style
	Selected lipgloss.Style
	Name     lipgloss.Style
	Label    lipgloss.Style
	Desc     lipgloss.Style
	Link     lipgloss.Style
	Empty    lipgloss.Style
}

// NewCardStyles builds card styles from an accent and a muted color.
func NewCardStyles(accent, muted color.Color) CardStyles {
	return CardStyles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Name:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Label: lipgloss.NewStyle().Foreground(muted),
		Desc:  lipgloss.NewStyle(),
		Link:  lipgloss.NewStyle().Foreground(muted).Underline(true),
		Empty: lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}

// TerminalCard renders one card at the given outer width.
func TerminalCard(c Card, width int, selected bool, st CardStyles) string {
	box := st.Card
	if selected {
		box = st.Selected
	}
	inner := max(10, width-box.GetHorizontalFrameSize())

	var b strings.Builder
	b.WriteString(st.Name.Render(SanitizeTerminal(c.Name)))
	b.WriteString("\n")
	b.WriteString(st.Label.Render(SanitizeTerminal(c.Label)))
	if desc := SanitizeTerminal(c.Description); desc != "" {
		b.WriteString("\n")
		b.WriteString(st.Desc.Width(inner).Render(desc))
	}
	b.WriteString("\n")
	b.WriteString(st.Link.Render("Open Tool: " + linkText(c.URL)))
	b.WriteString("  ")
	b.WriteString(st.Link.Render("Repo: " + linkText(c.Repo)))

	return box.Width(width).Render(b.String())
}

func linkText(link string) string {
	if link == catalog.NoLink {
		return catalog.Placeholder
	}
	return SanitizeTerminal(link)
}

// TerminalCards renders every card stacked vertically, or the empty-state
// placeholder. selected is the index of the highlighted card, -1 for none.
func TerminalCards(r Result, width, selected int, st CardStyles) string {
	if r.Empty() {
		return st.Empty.Render(EmptyMessage)
	}
	cards := make([]string, 0, len(r.Cards))
	for i, c := range r.Cards {
		cards = append(cards, TerminalCard(c, width, i == selected, st))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// PlainList writes r as plain text blocks, one per card, followed by the
// count. decorate styles the tool name (pass nil for none).
func PlainList(w io.Writer, r Result, decorate func(string) string) {
	if decorate == nil {
		decorate = func(s string) string { return s }
	}
	if r.Empty() {
		fmt.Fprintf(w, "  %s\n", EmptyMessage)
	}
	for _, c := range r.Cards {
		fmt.Fprintf(w, "\n  %s\n", decorate(SanitizeTerminal(c.Name)))
		fmt.Fprintf(w, "    %s\n", SanitizeTerminal(c.Label))
		if desc := SanitizeTerminal(c.Description); desc != "" {
			fmt.Fprintf(w, "    %s\n", desc)
		}
		fmt.Fprintf(w, "    Open Tool: %s\n", linkText(c.URL))
		fmt.Fprintf(w, "    Repo:      %s\n", linkText(c.Repo))
	}
	fmt.Fprintf(w, "\n  %d tools\n", r.Count)
}
