package tui

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/legacycrew/toolshub/internal/render"
	"github.com/legacycrew/toolshub/internal/request"
)

// Field positions in the request form.
const (
	fieldName = iota
	fieldDescription
	fieldUsers
	fieldCount
)

// terminalClipboard turns a clipboard write into a tea command that sets the
// terminal clipboard (OSC 52), so it also works over SSH.
type terminalClipboard struct {
	cmd tea.Cmd
}

func (c *terminalClipboard) WriteText(_ context.Context, text string) error {
	c.cmd = tea.SetClipboard(text)
	return nil
}

// requestViewModel is the request composer: three fields, a generated text
// and generate/copy/clear actions.
type requestViewModel struct {
	env      *env
	composer *request.Composer
	name     textinput.Model
	desc     textarea.Model
	users    textinput.Model
	focus    int
	width    int

	flash   string
	flashOK bool
}

func newRequestView(e *env) *requestViewModel {
	name := textinput.New()
	name.Placeholder = "Tool name"
	name.Prompt = ""
	name.Focus()

	desc := textarea.New()
	desc.Placeholder = "What should it do? One requirement per line."
	desc.ShowLineNumbers = false
	desc.SetHeight(4)

	users := textinput.New()
	users.Placeholder = "Who will use it?"
	users.Prompt = ""

	return &requestViewModel{
		env:      e,
		composer: request.NewComposer(e.catalog.Title()),
		name:     name,
		desc:     desc,
		users:    users,
	}
}

func (m *requestViewModel) draft() request.Draft {
	return request.Draft{
		Name:        m.name.Value(),
		Description: m.desc.Value(),
		Users:       m.users.Value(),
	}
}

func (m *requestViewModel) setFocus(i int) tea.Cmd {
	m.focus = (i + fieldCount) % fieldCount
	m.name.Blur()
	m.desc.Blur()
	m.users.Blur()
	switch m.focus {
	case fieldName:
		return m.name.Focus()
	case fieldDescription:
		return m.desc.Focus()
	default:
		return m.users.Focus()
	}
}

func (m *requestViewModel) generate() {
	m.composer.SetDraft(m.draft())
	m.composer.Generate()
	m.flash = ""
	m.env.logger.Debug("request generated", zap.Bool("empty_draft", m.composer.Draft.IsEmpty()))
}

func (m *requestViewModel) copyOutput() tea.Cmd {
	cb := &terminalClipboard{}
	ok, err := m.composer.Copy(context.Background(), cb)
	switch {
	case err != nil:
		m.env.logger.Warn("copy failed", zap.Error(err))
		return m.setFlash("Copy failed: "+err.Error(), false)
	case !ok:
		return nil
	}
	return tea.Batch(cb.cmd, m.setFlash("Copied!", true))
}

func (m *requestViewModel) clear() tea.Cmd {
	m.composer.Clear()
	m.name.Reset()
	m.desc.Reset()
	m.users.Reset()
	m.flash = ""
	return m.setFocus(fieldName)
}

func (m *requestViewModel) setFlash(text string, ok bool) tea.Cmd {
	m.flash = text
	m.flashOK = ok
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{} })
}

func (m *requestViewModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *requestViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := max(20, msg.Width-4)
		m.name.SetWidth(w)
		m.desc.SetWidth(w)
		m.users.SetWidth(w)
		return m, nil

	case flashDoneMsg:
		m.flash = ""
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case keyCtrlC:
			return m, tea.Quit
		case keyEsc:
			return m, popView
		case keyTab:
			return m, m.setFocus(m.focus + 1)
		case "shift+tab":
			return m, m.setFocus(m.focus - 1)
		case keyGenerate:
			m.generate()
			return m, nil
		case keyCopy:
			return m, m.copyOutput()
		case keyClear:
			return m, m.clear()
		case keyEnter:
			if m.focus != fieldDescription {
				return m, m.setFocus(m.focus + 1)
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldDescription:
		m.desc, cmd = m.desc.Update(msg)
	default:
		m.users, cmd = m.users.Update(msg)
	}
	return m, cmd
}

func (m *requestViewModel) View() tea.View {
	theme := m.env.theme
	var b strings.Builder

	b.WriteString(theme.SectionBanner("Request a tool"))
	b.WriteString("\n")

	label := lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	fields := []struct {
		title string
		view  string
	}{
		{"Tool name", m.name.View()},
		{"What should it do?", m.desc.View()},
		{"Who will use it?", m.users.View()},
	}
	for i, f := range fields {
		title := f.title
		if i == m.focus {
			title = "> " + title
		} else {
			title = "  " + title
		}
		b.WriteString(label.Render(title) + "\n")
		b.WriteString("  " + strings.ReplaceAll(f.view, "\n", "\n  ") + "\n\n")
	}

	if out := m.composer.Output(); out != "" {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Muted).
			Padding(0, 1)
		b.WriteString(box.Render(render.SanitizeTerminalLines(out)))
		b.WriteString("\n")
	}

	if m.flash != "" {
		b.WriteString(theme.Flash(m.flash, m.flashOK))
		b.WriteString("\n")
	}
	b.WriteString(theme.KeyHints(
		[2]string{keyTab, "next field"},
		[2]string{keyGenerate, "generate"},
		[2]string{keyCopy, "copy"},
		[2]string{keyClear, "clear"},
		[2]string{keyEsc, "back"},
	))
	return tea.NewView(b.String())
}
