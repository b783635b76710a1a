package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/legacycrew/toolshub/internal/render"
)

// menuItem represents a single entry in the home menu.
type menuItem struct {
	name   string
	desc   string
	icon   string
	action string
}

// menuGroup represents a section of related entries.
type menuGroup struct {
	title string
	items []menuItem
}

// launcherModel is the home menu shown when the UI starts.
type launcherModel struct {
	env         *env
	catalogPath string
	groups      []menuGroup
	cursor      int // flat index across all items
	total       int // total number of items
	width       int
	height      int
	quitting    bool
}

func newLauncher(e *env, catalogPath string) *launcherModel {
	groups := []menuGroup{
		{
			title: "Tools",
			items: []menuItem{
				{name: "Browse tools", desc: "Filter the catalog by division and search", icon: "🔎", action: "browse"},
				{name: "Request a tool", desc: "Draft a request for something missing", icon: "📝", action: "request"},
			},
		},
		{
			title: "Catalog",
			items: []menuItem{
				{name: "Catalog source", desc: "Show the catalog document being used", icon: "📄", action: "source"},
				{name: "Serve in browser", desc: "Exit and serve the hub page over HTTP", icon: "🌐", action: "serve"},
			},
		},
		{
			title: "Help",
			items: []menuItem{
				{name: "Keyboard shortcuts", desc: "Every key the hub understands", icon: "❔", action: "help"},
			},
		},
	}

	total := 0
	for _, g := range groups {
		total += len(g.items)
	}

	return &launcherModel{
		env:         e,
		catalogPath: catalogPath,
		groups:      groups,
		total:       total,
	}
}

// selectedItem returns the currently selected menu item.
func (m *launcherModel) selectedItem() menuItem {
	idx := 0
	for _, g := range m.groups {
		for _, item := range g.items {
			if idx == m.cursor {
				return item
			}
			idx++
		}
	}
	return menuItem{}
}

func (m *launcherModel) Init() tea.Cmd {
	return nil
}

func (m *launcherModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if IsQuit(msg) {
			m.quitting = true
			return m, tea.Quit
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.total-1 {
				m.cursor++
			}
		case keyEnter:
			return m, m.activate(m.selectedItem())
		case "b", "/":
			return m, pushView(newBrowser(m.env))
		case "?":
			return m, pushView(NewHelp(m.env.theme))
		}
	}
	return m, nil
}

// activate returns the command for the selected item. Most entries push a
// view; serving needs the terminal, so it exits the UI first.
func (m *launcherModel) activate(item menuItem) tea.Cmd {
	switch item.action {
	case "browse":
		return pushView(newBrowser(m.env))
	case "request":
		return pushView(newRequestView(m.env))
	case "source":
		return pushView(m.sourceViewer())
	case "serve":
		var args []string
		if m.catalogPath != "" {
			args = append(args, "--catalog", m.catalogPath)
		}
		return runCommand("serve", args)
	case "help":
		return pushView(NewHelp(m.env.theme))
	}
	return nil
}

func (m *launcherModel) sourceViewer() *ViewerModel {
	c := m.env.catalog
	return NewLoadingViewer(render.SanitizeTerminal(c.Source()), func() (string, error) {
		raw := c.Raw()
		if len(raw) == 0 {
			return "", errors.New("catalog was built in memory and has no source document")
		}
		return string(raw), nil
	}, m.env.theme)
}

func (m *launcherModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	theme := m.env.theme
	var b strings.Builder

	// Banner
	title := theme.Title.Render(fmt.Sprintf("%s  %s", render.SanitizeTerminal(m.env.catalog.Title()), m.env.version))
	subtitle := theme.Subtitle.Render(fmt.Sprintf("%d tools across %d divisions",
		m.env.catalog.Len(), len(m.env.catalog.Divisions())))
	b.WriteString(theme.Banner.Render(title + "\n" + subtitle))
	b.WriteString("\n")

	// Compute max name width for column alignment
	maxName := 0
	for _, group := range m.groups {
		for _, item := range group.items {
			if len(item.name) > maxName {
				maxName = len(item.name)
			}
		}
	}

	flatIdx := 0
	for _, group := range m.groups {
		b.WriteString(theme.SectionHead.Render(group.title))
		b.WriteString("\n")

		for _, item := range group.items {
			selected := flatIdx == m.cursor

			// Pad name to fixed width before styling
			paddedName := fmt.Sprintf("%-*s", maxName, item.name)

			cursor := "  "
			icon := lipgloss.NewStyle().Foreground(theme.Muted).Render(item.icon)
			name := paddedName
			desc := lipgloss.NewStyle().Foreground(theme.Muted).Render(item.desc)

			if selected {
				cursor = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("> ")
				name = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(paddedName)
				icon = lipgloss.NewStyle().Foreground(theme.Primary).Render(item.icon)
			}

			fmt.Fprintf(&b, "%s%s %s  %s\n", cursor, icon, name, desc)
			flatIdx++
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.KeyHints(
		[2]string{"↑/↓", "navigate"},
		[2]string{keyEnter, "select"},
		[2]string{"b", "browse"},
		[2]string{"?", "help"},
		[2]string{"q", "quit"},
	))
	b.WriteString("\n")

	return tea.NewView(b.String())
}
