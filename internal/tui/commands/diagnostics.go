// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/bridge"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// reloadDelay gives the engine a moment to settle after a state reset
// before the UI resynchronizes all panels.
const reloadDelay = 1500 * time.Millisecond

// LoadDiagnosticsCmd fetches the engine's runtime snapshot.
func LoadDiagnosticsCmd(sidecar *bridge.Sidecar) tea.Cmd {
	return func() tea.Msg {
		if sidecar == nil {
			return tui.DiagnosticsErrorMsg{Err: errors.New("diagnostics need the engine sidecar")}
		}
		diag, err := sidecar.Diagnostics()
		if err != nil {
			return tui.DiagnosticsErrorMsg{Err: err}
		}
		return tui.DiagnosticsLoadedMsg{Diagnostics: diag}
	}
}

// ResetStateCmd asks the engine to drop all transient state.
func ResetStateCmd(sidecar *bridge.Sidecar) tea.Cmd {
	return func() tea.Msg {
		if sidecar == nil {
			return tui.DiagnosticsErrorMsg{Err: errors.New("state reset needs the engine sidecar")}
		}
		if err := sidecar.ResetApplicationState(); err != nil {
			return tui.DiagnosticsErrorMsg{Err: err}
		}
		return tui.StateResetMsg{}
	}
}

// ScheduleReloadCmd emits ReloadMsg after the post-reset settle delay.
func ScheduleReloadCmd() tea.Cmd {
	return tea.Tick(reloadDelay, func(time.Time) tea.Msg {
		return tui.ReloadMsg{}
	})
}
