// Package views provides TUI view components for the DeepCode client.
package views

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// ResetStateRequestMsg asks the engine to reset its application state.
// Sent only after the user confirms; a full UI reload follows.
type ResetStateRequestMsg struct{}

// ============================================================================
// DiagnosticsModel
// ============================================================================

// maxDiagnosticsWidth is the maximum width for the diagnostics box.
const maxDiagnosticsWidth = 80

// DiagnosticsModel is the view model for the system diagnostics panel:
// a read-only snapshot plus the guarded state-reset action.
type DiagnosticsModel struct {
	diag       *backend.SystemDiagnostics
	confirming bool
	resetting  bool
	status     string
	isErr      bool
	width      int
	height     int
}

// NewDiagnosticsModel creates an empty DiagnosticsModel; the snapshot
// arrives via DiagnosticsLoadedMsg.
func NewDiagnosticsModel(width, height int) DiagnosticsModel {
	return DiagnosticsModel{width: width, height: height}
}

// Init returns the initial command for the diagnostics view.
func (m DiagnosticsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the diagnostics view.
func (m DiagnosticsModel) Update(msg tea.Msg) (DiagnosticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.DiagnosticsLoadedMsg:
		m.diag = msg.Diagnostics
		m.resetting = false
		m.status = ""
		m.isErr = false
		return m, nil

	case tui.StateResetMsg:
		m.resetting = true
		m.status = "State reset; reloading..."
		m.isErr = false
		return m, nil

	case tui.DiagnosticsErrorMsg:
		m.confirming = false
		m.status = msg.Err.Error()
		m.isErr = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DiagnosticsModel) handleKey(msg tea.KeyMsg) (DiagnosticsModel, tea.Cmd) {
	keys := tui.DefaultKeyMap

	if m.confirming {
		switch msg.String() {
		case "y":
			m.confirming = false
			return m, func() tea.Msg {
				return ResetStateRequestMsg{}
			}
		case "n", "esc":
			m.confirming = false
			return m, nil
		}
		return m, nil
	}

	if key.Matches(msg, keys.Reset) && !m.resetting {
		m.confirming = true
	}
	return m, nil
}

// View renders the diagnostics view.
func (m DiagnosticsModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("System Diagnostics"))
	b.WriteString("\n\n")

	if m.diag == nil {
		b.WriteString(tui.DimStyle.Render("Loading diagnostics..."))
		b.WriteString("\n")
	} else {
		b.WriteString(tui.DimStyle.Render("Platform"))
		b.WriteString("\n")
		for _, k := range sortedKeys(m.diag.Platform) {
			b.WriteString("  " + padDiag(k) + m.diag.Platform[k] + "\n")
		}

		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("Modules"))
		b.WriteString("\n")
		for _, k := range sortedModules(m.diag.Modules) {
			mark := tui.ErrorStyle.Render("✗ unavailable")
			if m.diag.Modules[k] {
				mark = tui.SuccessStyle.Render("✓ loaded")
			}
			b.WriteString("  " + padDiag(k) + mark + "\n")
		}

		b.WriteString("\n")
		loop := tui.ErrorStyle.Render("stopped")
		if m.diag.EventLoopRunning {
			loop = tui.SuccessStyle.Render("running")
		}
		b.WriteString("  " + padDiag("Event loop") + loop + "\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.isErr {
			b.WriteString(tui.ErrorStyle.Render(m.status))
		} else {
			b.WriteString(tui.WarningStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirming {
		b.WriteString(tui.WarningStyle.Render("Reset application state? All panels will reload. (y/n)"))
	} else {
		b.WriteString(tui.DimStyle.Render("R: Reset state · Tab: Next panel"))
	}

	boxWidth := maxDiagnosticsWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}

	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}

func padDiag(s string) string {
	const col = 22
	if len(s) >= col {
		return s + " "
	}
	return s + strings.Repeat(" ", col-len(s))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedModules(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Confirming reports whether the reset confirmation is pending.
func (m DiagnosticsModel) Confirming() bool {
	return m.confirming
}
