// Package views provides TUI view components for the DeepCode client.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// ClearHistoryRequestMsg asks the engine to clear the processing
// history. Sent only after the user confirms.
type ClearHistoryRequestMsg struct{}

// ============================================================================
// HistoryModel
// ============================================================================

// maxHistoryWidth is the maximum width for the history box.
const maxHistoryWidth = 90

// historyPageSize bounds how many entries render at once.
const historyPageSize = 12

// HistoryModel is the view model for the processing history panel. The
// history lives on the engine; this view only lists and clears it.
type HistoryModel struct {
	entries    []backend.ProcessingHistoryEntry
	cursor     int
	offset     int
	confirming bool
	status     string
	isErr      bool
	loaded     bool
	width      int
	height     int
}

// NewHistoryModel creates an empty HistoryModel; entries arrive via
// HistoryLoadedMsg.
func NewHistoryModel(width, height int) HistoryModel {
	return HistoryModel{width: width, height: height}
}

// Init returns the initial command for the history view.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.HistoryLoadedMsg:
		m.entries = msg.Entries
		m.cursor = 0
		m.offset = 0
		m.loaded = true
		m.status = ""
		m.isErr = false
		return m, nil

	case tui.HistoryClearedMsg:
		// The engine confirmed the clear; reflect it locally without a
		// round trip.
		m.entries = nil
		m.cursor = 0
		m.offset = 0
		m.confirming = false
		m.status = "History cleared"
		m.isErr = false
		return m, nil

	case tui.HistoryErrorMsg:
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

func (m HistoryModel) handleKey(msg tea.KeyMsg) (HistoryModel, tea.Cmd) {
	keys := tui.DefaultKeyMap

	if m.confirming {
		switch msg.String() {
		case "y":
			m.confirming = false
			return m, func() tea.Msg {
				return ClearHistoryRequestMsg{}
			}
		case "n", "esc":
			m.confirming = false
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			if m.cursor >= m.offset+historyPageSize {
				m.offset = m.cursor - historyPageSize + 1
			}
		}
		return m, nil

	case key.Matches(msg, keys.Clear):
		if len(m.entries) > 0 {
			m.confirming = true
		}
		return m, nil
	}
	return m, nil
}

// View renders the history view.
func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Processing History"))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(tui.DimStyle.Render("Loading history..."))
		b.WriteString("\n")

	case len(m.entries) == 0:
		b.WriteString(tui.DimStyle.Render("No processing history."))
		b.WriteString("\n")

	default:
		end := m.offset + historyPageSize
		if end > len(m.entries) {
			end = len(m.entries)
		}
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderEntry(i))
		}
		if len(m.entries) > historyPageSize {
			b.WriteString("\n")
			b.WriteString(tui.DimStyle.Render(
				fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(m.entries))))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.isErr {
			b.WriteString(tui.ErrorStyle.Render(m.status))
		} else {
			b.WriteString(tui.SuccessStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirming {
		b.WriteString(tui.WarningStyle.Render("Clear all history? (y/n)"))
	} else {
		b.WriteString(tui.DimStyle.Render("↑↓: Navigate · c: Clear · Tab: Next panel"))
	}

	boxWidth := maxHistoryWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}

	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}

func (m HistoryModel) renderEntry(i int) string {
	e := m.entries[i]

	cursor := "  "
	if i == m.cursor {
		cursor = tui.SelectedStyle.Render("❯ ")
	}

	badge := tui.SuccessStyle.Render("✓")
	if e.Status == backend.StatusError {
		badge = tui.ErrorStyle.Render("✗")
	}

	source := e.InputSource
	if len(source) > 44 {
		source = source[:41] + "..."
	}

	line := fmt.Sprintf("%s%s %s  %-4s  %s\n",
		cursor, badge, e.Timestamp.Local().Format("2006-01-02 15:04"), e.InputType, source)

	if i == m.cursor && e.Status == backend.StatusError && e.Error != "" {
		errText := e.Error
		if len(errText) > 70 {
			errText = errText[:67] + "..."
		}
		line += "      " + tui.ErrorStyle.Render(errText) + "\n"
	}
	return line
}

// Entries returns the listed entries; exported for tests.
func (m HistoryModel) Entries() []backend.ProcessingHistoryEntry {
	return m.entries
}

// Confirming reports whether the clear confirmation is pending.
func (m HistoryModel) Confirming() bool {
	return m.confirming
}
