package tui

import (
	tea "charm.land/bubbletea/v2"
)

// PopViewMsg is sent when a view wants to pop itself from the navigation stack.
type PopViewMsg struct{}

// PushViewMsg is sent when a view wants to push a new view onto the navigation stack.
type PushViewMsg struct {
	Model tea.Model
}

// commandMsg asks the app to exit and run a CLI subcommand in the user's
// terminal, e.g. "serve", which needs the terminal for its own output.
type commandMsg struct {
	command string
	args    []string
}

// openedMsg reports the result of handing a link to the system browser.
type openedMsg struct {
	link string
	err  error
}

// flashDoneMsg clears a transient status line.
type flashDoneMsg struct{}

func pushView(model tea.Model) tea.Cmd {
	return func() tea.Msg {
		return PushViewMsg{Model: model}
	}
}

func popView() tea.Msg { return PopViewMsg{} }

func runCommand(command string, args []string) tea.Cmd {
	return func() tea.Msg {
		return commandMsg{command: command, args: args}
	}
}
