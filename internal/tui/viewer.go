package tui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/legacycrew/toolshub/internal/render"
)

// scrollbarWidth is the space reserved for the scrollbar column (space + char).
const scrollbarWidth = 2

const (
	viewerHeaderLines = 4 // section banner
	viewerFooterLines = 2 // blank line + help text
)

// renderScrollbar returns a single-column string (one char per row) showing
// a scrollbar track with a proportional thumb. Returns empty string when
// all content fits on screen.
func renderScrollbar(trackHeight, totalLines, visibleLines int, scrollPercent float64, theme *Theme) string {
	if totalLines <= visibleLines || trackHeight < 1 {
		return ""
	}
	thumbSize := max(1, trackHeight*visibleLines/totalLines)
	thumbStart := int(scrollPercent * float64(trackHeight-thumbSize))
	thumbStart = min(max(0, thumbStart), trackHeight-thumbSize)

	track := lipgloss.NewStyle().Foreground(theme.Muted)
	thumb := lipgloss.NewStyle().Foreground(theme.Secondary)

	lines := make([]string, trackHeight)
	for i := range lines {
		if i >= thumbStart && i < thumbStart+thumbSize {
			lines[i] = thumb.Render("┃")
		} else {
			lines[i] = track.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

// viewerContentMsg carries loaded content to the viewer.
type viewerContentMsg struct {
	content string
}

// viewerErrorMsg carries an error from the async loader.
type viewerErrorMsg struct {
	err string
}

// ViewerModel is a scrollable read-only text page with a copy key. It is
// used for tool details and the catalog document.
type ViewerModel struct {
	title    string
	content  string
	viewport viewport.Model
	theme    *Theme
	ready    bool
	loading  bool
	err      string
	copied   bool
	loader   func() (string, error)
	width    int
	height   int
}

// NewViewer creates a viewer with content already available. Content is
// sanitized for the terminal.
func NewViewer(title, content string, theme *Theme) *ViewerModel {
	return &ViewerModel{
		title:   title,
		content: render.SanitizeTerminalLines(content),
		theme:   theme,
	}
}

// NewLoadingViewer creates a viewer that shows "Loading..." and runs loader
// asynchronously to fetch content.
func NewLoadingViewer(title string, loader func() (string, error), theme *Theme) *ViewerModel {
	return &ViewerModel{
		title:   title,
		theme:   theme,
		loading: true,
		loader:  loader,
	}
}

// SetSize sizes the viewport without waiting for a WindowSizeMsg.
func (m *ViewerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	vpHeight := max(1, height-viewerHeaderLines-viewerFooterLines)
	vpWidth := max(1, width-scrollbarWidth)
	if !m.ready {
		m.viewport = viewport.New(viewport.WithWidth(vpWidth), viewport.WithHeight(vpHeight))
		m.viewport.SoftWrap = true
		m.viewport.SetContent(m.content)
		m.ready = true
		return
	}
	m.viewport.SetWidth(vpWidth)
	m.viewport.SetHeight(vpHeight)
}

func (m *ViewerModel) Init() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	loader := m.loader
	return func() tea.Msg {
		content, err := loader()
		if err != nil {
			return viewerErrorMsg{err: err.Error()}
		}
		return viewerContentMsg{content: content}
	}
}

func (m *ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case viewerContentMsg:
		m.loading = false
		m.content = render.SanitizeTerminalLines(msg.content)
		if m.ready {
			m.viewport.SetContent(m.content)
		}
		return m, nil

	case viewerErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case flashDoneMsg:
		m.copied = false
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", keyCtrlC, keyEsc:
			return m, popView
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		case "y":
			if m.content == "" {
				return m, nil
			}
			m.copied = true
			return m, tea.Batch(
				tea.SetClipboard(m.content),
				tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{} }),
			)
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *ViewerModel) View() tea.View {
	var b strings.Builder

	b.WriteString(m.theme.SectionBanner(render.SanitizeTerminal(m.title)))

	if m.loading {
		b.WriteString("\n  Loading...")
		return tea.NewView(b.String())
	}

	if m.err != "" {
		b.WriteString("\n  ")
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.err))
		b.WriteString("\n\n  Press q to go back.\n")
		return tea.NewView(b.String())
	}

	if m.ready {
		vpContent := m.viewport.View()
		vpHeight := m.viewport.Height()
		bar := renderScrollbar(vpHeight, m.viewport.TotalLineCount(), vpHeight, m.viewport.ScrollPercent(), m.theme)
		if bar != "" {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, vpContent, " ", bar))
		} else {
			b.WriteString(vpContent)
		}
	} else {
		b.WriteString(m.content)
	}
	b.WriteString("\n\n")

	trail := m.theme.HelpKey.Render(fmt.Sprintf("%d", int(m.viewport.ScrollPercent()*100))) + "%"
	if m.copied {
		trail = lipgloss.NewStyle().Foreground(m.theme.Success).Bold(true).Render("Copied!")
	}
	b.WriteString(m.theme.KeyHints(
		[2]string{"j/k", "scroll"},
		[2]string{"g/G", "top/bottom"},
		[2]string{"y", "copy"},
		[2]string{keyEsc, "back"},
	))
	b.WriteString("  " + trail)

	return tea.NewView(b.String())
}
