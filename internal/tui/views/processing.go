// Package views provides TUI view components for the DeepCode client.
package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/progress"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// ============================================================================
// ProcessingModel
// ============================================================================

// maxProcessingWidth is the maximum width for the processing box.
const maxProcessingWidth = 70

// ProcessingModel renders the fixed 8-stage pipeline while a submission
// is in flight. Stage position comes from the push channel; with no
// channel the view shows an indeterminate spinner only.
type ProcessingModel struct {
	stageIndex  int
	lastMessage string
	haveChannel bool
	channelDown bool
	spinner     spinner.Model
	startTime   time.Time
	width       int
	height      int
}

// NewProcessingModel creates a ProcessingModel for a new session.
func NewProcessingModel(width, height int) ProcessingModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.WarningStyle

	return ProcessingModel{
		spinner:   sp,
		startTime: time.Now(),
		width:     width,
		height:    height,
	}
}

// Init returns the initial command for the processing view.
func (m ProcessingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages for the processing view.
func (m ProcessingModel) Update(msg tea.Msg) (ProcessingModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tui.ProgressConnectedMsg:
		m.haveChannel = true
		return m, nil

	case tui.ProgressEventMsg:
		// Events apply in arrival order; the last message wins.
		m.stageIndex = progress.StageIndex(msg.Event.Progress)
		m.lastMessage = msg.Event.Message
		return m, nil

	case tui.ProgressClosedMsg:
		// Logged upstream and abandoned; processing continues blind.
		m.channelDown = true
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// View renders the processing view.
func (m ProcessingModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Processing..."))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.statusLine()))
	b.WriteString("\n\n")

	// Pipeline: stages before the current index are complete, the
	// current index is active, the rest are pending.
	for i, name := range progress.StageNames {
		var icon string
		switch {
		case i < m.stageIndex:
			icon = tui.StageDone
		case i == m.stageIndex:
			icon = tui.StageActive
		default:
			icon = tui.StagePending
		}

		line := fmt.Sprintf("  %s %s", icon, name)
		if i == m.stageIndex {
			b.WriteString(tui.SelectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if m.channelDown {
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("Progress channel closed; waiting for the final response."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	elapsed := time.Since(m.startTime).Round(time.Second)
	b.WriteString(tui.DimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)))

	boxWidth := maxProcessingWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}

	return tui.BoxStyle.
		Width(boxWidth).
		Render(b.String())
}

func (m ProcessingModel) statusLine() string {
	if m.lastMessage != "" {
		return m.lastMessage
	}
	if m.haveChannel {
		return "Working..."
	}
	return "Working (no live progress available)..."
}
