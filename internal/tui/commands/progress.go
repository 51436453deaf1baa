// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/log"
	"github.com/deepcode-dev/deepcode/internal/progress"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// ConnectProgressCmd opens the push channel subscription for a new
// submission. Failure is not fatal: the submission runs without live
// progress and the processing screen says so.
func ConnectProgressCmd(url string, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		listener, err := progress.Dial(url, logger)
		if err != nil {
			return tui.ProgressUnavailableMsg{Err: err}
		}
		return tui.ProgressConnectedMsg{Listener: listener}
	}
}

// WaitProgressCmd blocks on the next push channel frame. The router
// reissues it after every frame, Bubble Tea's one-message-per-command
// discipline.
func WaitProgressCmd(listener *progress.Listener) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-listener.Events()
		if !ok {
			return tui.ProgressClosedMsg{}
		}
		return tui.ProgressEventMsg{Event: ev}
	}
}
