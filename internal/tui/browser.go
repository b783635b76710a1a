package tui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/legacycrew/toolshub/internal/catalog"
	"github.com/legacycrew/toolshub/internal/filter"
	"github.com/legacycrew/toolshub/internal/render"
)

const flashDuration = 2 * time.Second

// browserModel is the catalog browser: a chip row for divisions, a search
// box and the matching cards. The filter state is the single source of
// truth; the active chip, the count and the cards are all derived from it.
type browserModel struct {
	env      *env
	records  []catalog.Record
	chips    []string
	state    filter.State
	result   render.Result
	chipIdx  int // chip under the cursor
	selected int // highlighted card, -1 when there are none

	search    textinput.Model
	searching bool
	viewport  viewport.Model
	ready     bool
	width     int
	height    int

	flash   string
	flashOK bool
}

func newBrowser(e *env) *browserModel {
	ti := textinput.New()
	ti.Placeholder = "Search tools"
	ti.Prompt = "/ "
	ti.CharLimit = 120

	m := &browserModel{
		env:     e,
		records: e.catalog.Records(),
		chips:   e.catalog.Chips(),
		state:   filter.NewState(),
		search:  ti,
	}
	m.apply()
	return m
}

// State returns the current filter state.
func (m *browserModel) State() filter.State { return m.state }

// Result returns what is currently drawn.
func (m *browserModel) Result() render.Result { return m.result }

// selectChip makes chips[i] the active division.
func (m *browserModel) selectChip(i int) {
	if i < 0 || i >= len(m.chips) {
		return
	}
	m.chipIdx = i
	m.state = m.state.SetDivision(m.chips[i])
	m.apply()
}

func (m *browserModel) setSearch(s string) {
	if s == m.state.Search {
		return
	}
	m.state = m.state.SetSearch(s)
	m.apply()
}

// clearFilters resets to every tool, which is the way out of the empty state.
func (m *browserModel) clearFilters() {
	m.search.SetValue("")
	m.state = filter.NewState()
	m.chipIdx = 0
	m.apply()
}

// apply recomputes the visible cards from the filter state and redraws.
func (m *browserModel) apply() {
	m.result = render.Build(m.state.Apply(m.records))
	switch {
	case m.result.Empty():
		m.selected = -1
	case m.selected < 0:
		m.selected = 0
	case m.selected >= m.result.Count:
		m.selected = m.result.Count - 1
	}
	m.env.logger.Debug("filter applied",
		zap.String("division", m.state.Division),
		zap.String("search", m.state.Search),
		zap.Int("visible", m.result.Count))
	m.refreshContent()
}

func (m *browserModel) cardWidth() int {
	return max(20, m.width-scrollbarWidth)
}

func (m *browserModel) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(render.TerminalCards(m.result, m.cardWidth(), m.selected, m.env.theme.Cards))
	if m.selected <= 0 {
		m.viewport.GotoTop()
		return
	}
	m.scrollToSelected()
}

// scrollToSelected keeps the highlighted card fully on screen when it fits.
func (m *browserModel) scrollToSelected() {
	top := 0
	for i := 0; i < m.selected; i++ {
		top += lipgloss.Height(render.TerminalCard(m.result.Cards[i], m.cardWidth(), false, m.env.theme.Cards))
	}
	bottom := top + lipgloss.Height(render.TerminalCard(m.result.Cards[m.selected], m.cardWidth(), true, m.env.theme.Cards))
	switch {
	case top < m.viewport.YOffset():
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset()+m.viewport.Height():
		m.viewport.SetYOffset(max(top, bottom-m.viewport.Height()))
	}
}

func (m *browserModel) header() string {
	theme := m.env.theme
	var b strings.Builder
	b.WriteString(theme.Title.Render(render.SanitizeTerminal(m.env.catalog.Title())))
	b.WriteString("\n")
	b.WriteString(m.chipBar())
	b.WriteString("\n")
	if m.searching || m.state.Search != "" {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(theme.HelpDesc.Render("/ to search"))
	}
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d tools", m.result.Count)))
	return b.String()
}

func (m *browserModel) chipBar() string {
	theme := m.env.theme
	parts := make([]string, 0, len(m.chips))
	for i, label := range m.chips {
		style := theme.Chip
		if m.state.IsActive(label) {
			style = theme.ChipActive
		}
		if i == m.chipIdx && !m.searching {
			style = style.Inherit(theme.ChipCursor)
		}
		parts = append(parts, style.Render(render.SanitizeTerminal(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *browserModel) footer() string {
	theme := m.env.theme
	if m.flash != "" {
		return theme.Flash(m.flash, m.flashOK)
	}
	if m.searching {
		return theme.KeyHints(
			[2]string{"type", "filter"},
			[2]string{keyEnter + "/" + keyEsc, "done"},
		)
	}
	return theme.KeyHints(
		[2]string{"←/→ " + keyEnter, "division"},
		[2]string{"0-9 " + keyTab, "jump"},
		[2]string{"↑/↓", "tool"},
		[2]string{"o/r", "open tool/repo"},
		[2]string{"v", "details"},
		[2]string{"c", "clear"},
		[2]string{"n", "request"},
		[2]string{keyEsc, "back"},
	)
}

func (m *browserModel) resize() {
	headerH := lipgloss.Height(m.header())
	vpHeight := max(1, m.height-headerH-2)
	if !m.ready {
		m.viewport = viewport.New(viewport.WithWidth(max(1, m.width)), viewport.WithHeight(vpHeight))
		m.ready = true
	} else {
		m.viewport.SetWidth(max(1, m.width))
		m.viewport.SetHeight(vpHeight)
	}
	m.search.SetWidth(max(10, m.width-4))
	m.refreshContent()
}

func (m *browserModel) Init() tea.Cmd { return nil }

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.env.logger.Warn("open link failed", zap.String("link", msg.link), zap.Error(msg.err))
			return m, m.setFlash(msg.err.Error(), false)
		}
		return m, m.setFlash("Opened "+msg.link, true)

	case flashDoneMsg:
		m.flash = ""
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == keyCtrlC {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *browserModel) updateSearch(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc, keyTab:
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setSearch(m.search.Value())
	return m, cmd
}

func (m *browserModel) updateKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if i, ok := chipIndex(msg, len(m.chips)); ok {
		m.selectChip(i)
		return m, nil
	}

	switch msg.String() {
	case "q", keyEsc:
		return m, popView
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "left", "h":
		if m.chipIdx > 0 {
			m.chipIdx--
		}
	case "right", "l":
		if m.chipIdx < len(m.chips)-1 {
			m.chipIdx++
		}
	case keyEnter, "space":
		m.selectChip(m.chipIdx)
	case keyTab:
		m.selectChip((m.activeChip() + 1) % len(m.chips))
	case "shift+tab":
		m.selectChip((m.activeChip() - 1 + len(m.chips)) % len(m.chips))
	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.refreshContent()
		}
	case "down", "j":
		if m.selected >= 0 && m.selected < m.result.Count-1 {
			m.selected++
			m.refreshContent()
		}
	case "pgup":
		m.viewport.PageUp()
	case "pgdown":
		m.viewport.PageDown()
	case "c":
		m.clearFilters()
	case "o":
		if card, ok := m.selectedCard(); ok {
			return m, m.openLink(card.URL)
		}
	case "r":
		if card, ok := m.selectedCard(); ok {
			return m, m.openLink(card.Repo)
		}
	case "v":
		if card, ok := m.selectedCard(); ok {
			return m, pushView(NewViewer(render.SanitizeTerminal(card.Name), cardDetails(card), m.env.theme))
		}
	case "n":
		return m, pushView(newRequestView(m.env))
	case "?":
		return m, pushView(NewHelp(m.env.theme))
	}
	return m, nil
}

// activeChip is the index of the chip matching the current division.
func (m *browserModel) activeChip() int {
	for i, label := range m.chips {
		if m.state.IsActive(label) {
			return i
		}
	}
	return 0
}

func (m *browserModel) selectedCard() (render.Card, bool) {
	if m.selected < 0 || m.selected >= len(m.result.Cards) {
		return render.Card{}, false
	}
	return m.result.Cards[m.selected], true
}

func (m *browserModel) openLink(link string) tea.Cmd {
	open := m.env.open
	return func() tea.Msg {
		return openedMsg{link: link, err: open(link)}
	}
}

func (m *browserModel) setFlash(text string, ok bool) tea.Cmd {
	m.flash = render.SanitizeTerminal(text)
	m.flashOK = ok
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{} })
}

// cardDetails is the plain text shown in the detail viewer.
func cardDetails(c render.Card) string {
	var b strings.Builder
	render.PlainList(&b, render.Result{Cards: []render.Card{c}, Count: 1}, nil)
	return strings.TrimSuffix(b.String(), "\n  1 tools\n")
}

func (m *browserModel) View() tea.View {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	if m.ready {
		vpContent := m.viewport.View()
		totalLines := m.viewport.TotalLineCount()
		vpHeight := m.viewport.Height()
		bar := renderScrollbar(vpHeight, totalLines, vpHeight, m.viewport.ScrollPercent(), m.env.theme)
		if bar != "" {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, vpContent, " ", bar))
		} else {
			b.WriteString(vpContent)
		}
	} else {
		b.WriteString(render.TerminalCards(m.result, 60, m.selected, m.env.theme.Cards))
	}
	b.WriteString("\n")
	b.WriteString(m.footer())
	return tea.NewView(b.String())
}
