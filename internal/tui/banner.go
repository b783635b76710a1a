package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// SectionBanner renders a bold section header with a horizontal rule.
//
//	──────────────────────────────
//	▶ Title
func (t *Theme) SectionBanner(title string) string {
	rule := lipgloss.NewStyle().Foreground(t.Secondary).Render(strings.Repeat("─", 40))
	heading := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Render("▶ " + title)
	return fmt.Sprintf("\n%s\n  %s\n", rule, heading)
}

// Flash renders a one-line status: green with a check mark, or red with a cross.
func (t *Theme) Flash(msg string, ok bool) string {
	if ok {
		return lipgloss.NewStyle().Foreground(t.Success).Bold(true).Render("✓ " + msg)
	}
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true).Render("✗ " + msg)
}

// KeyHints renders a footer of "key description" pairs.
func (t *Theme) KeyHints(pairs ...[2]string) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, t.HelpKey.Render(p[0])+" "+t.HelpDesc.Render(p[1]))
	}
	return strings.Join(parts, "  ")
}
