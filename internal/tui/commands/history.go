// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/bridge"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// LoadHistoryCmd fetches the processing history and orders it newest
// first, whatever order the engine returned.
func LoadHistoryCmd(sidecar *bridge.Sidecar) tea.Cmd {
	return func() tea.Msg {
		if sidecar == nil {
			return tui.HistoryLoadedMsg{}
		}
		entries, err := sidecar.History()
		if err != nil {
			return tui.HistoryErrorMsg{Err: err}
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		})
		return tui.HistoryLoadedMsg{Entries: entries}
	}
}

// ClearHistoryCmd deletes the engine-side history.
func ClearHistoryCmd(sidecar *bridge.Sidecar) tea.Cmd {
	return func() tea.Msg {
		if sidecar == nil {
			return tui.HistoryClearedMsg{}
		}
		if err := sidecar.ClearHistory(); err != nil {
			return tui.HistoryErrorMsg{Err: err}
		}
		return tui.HistoryClearedMsg{}
	}
}
