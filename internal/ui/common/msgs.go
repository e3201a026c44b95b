package common

import tea "github.com/charmbracelet/bubbletea"

type (
	// CloseViewMsg asks the overlay hosting the sender to close.
	CloseViewMsg struct{}
	// StatusMsg is shown in the status line until the next one arrives.
	StatusMsg struct {
		Text string
		Err  error
	}
)

func Close() tea.Msg {
	return CloseViewMsg{}
}

func Status(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}

func StatusError(err error) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: err.Error(), Err: err}
	}
}

func IsInputMessage(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		return true
	default:
		return false
	}
}
