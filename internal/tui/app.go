package tui

import (
	"fmt"
	"os"
	"os/exec"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/legacycrew/toolshub/internal/catalog"
	"github.com/legacycrew/toolshub/internal/platform"
)

// Options configures the interactive UI.
type Options struct {
	Catalog *catalog.Catalog
	Version string
	// CatalogPath is forwarded to subcommands started from the menu so they
	// read the same catalog. Empty means the default resolution.
	CatalogPath string
	Logger      *zap.Logger
}

// appModel is the root model that manages the navigation stack.
type appModel struct {
	stack       []tea.Model // view navigation stack
	width       int
	height      int
	theme       Theme
	logger      *zap.Logger
	pendingCmd  string   // command to run after TUI exits
	pendingArgs []string // args for pending command
}

// env bundles what every view needs.
type env struct {
	catalog *catalog.Catalog
	theme   *Theme
	logger  *zap.Logger
	version string
	// open hands a link to the system browser.
	open func(string) error
}

func newApp(opts Options) *appModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &appModel{
		theme:  DefaultTheme(),
		logger: logger,
	}
	e := &env{
		catalog: opts.Catalog,
		theme:   &app.theme,
		logger:  logger,
		version: opts.Version,
		open:    platform.OpenURL,
	}
	app.stack = []tea.Model{newLauncher(e, opts.CatalogPath)}
	return app
}

// Run starts the interactive TUI. It is called for "toolshub browse" and
// when toolshub is invoked with no arguments on a TTY. Callers check
// IsAccessible first and print the plain list instead.
func Run(opts Options) error {
	if IsAccessible() {
		return nil
	}
	if opts.Catalog == nil {
		return catalog.ErrNoCatalog
	}

	app := newApp(opts)
	app.logger.Debug("tui started", zap.Int("tools", opts.Catalog.Len()))

	p := tea.NewProgram(app)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// If a command was selected, execute it after the TUI exits
	if m, ok := result.(*appModel); ok && m.pendingCmd != "" {
		m.logger.Debug("running command after tui", zap.String("command", m.pendingCmd))
		return execCommand(m.pendingCmd, m.pendingArgs)
	}

	return nil
}

func (m *appModel) Init() tea.Cmd {
	if len(m.stack) > 0 {
		return m.stack[len(m.stack)-1].Init()
	}
	return nil
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if len(m.stack) > 0 {
			current := m.stack[len(m.stack)-1]
			updated, cmd := current.Update(msg)
			m.stack[len(m.stack)-1] = updated
			return m, cmd
		}
		return m, nil

	case PushViewMsg:
		m.stack = append(m.stack, msg.Model)
		initCmd := msg.Model.Init()
		// Forward current window size to newly pushed view.
		var sizeCmd tea.Cmd
		if m.width > 0 && m.height > 0 {
			size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
			updated, cmd := msg.Model.Update(size)
			m.stack[len(m.stack)-1] = updated
			sizeCmd = cmd
		}
		return m, tea.Batch(initCmd, sizeCmd)

	case PopViewMsg:
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
		} else {
			return m, tea.Quit
		}
		return m, nil

	case commandMsg:
		// User picked something that needs the plain terminal: store it and quit TUI
		m.pendingCmd = msg.command
		m.pendingArgs = msg.args
		return m, tea.Quit
	}

	// Forward all other messages to the current view
	if len(m.stack) > 0 {
		current := m.stack[len(m.stack)-1]
		updated, cmd := current.Update(msg)
		m.stack[len(m.stack)-1] = updated
		return m, cmd
	}

	return m, nil
}

func (m *appModel) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if len(m.stack) > 0 {
		inner := m.stack[len(m.stack)-1].View()
		v.Content = inner.Content
		v.Cursor = inner.Cursor
	}
	return v
}

// execCommand runs a toolshub subcommand in the user's terminal.
func execCommand(command string, args []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("finding executable: %w", err)
	}

	cmdArgs := append([]string{command}, args...)
	cmd := exec.Command(exe, cmdArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
