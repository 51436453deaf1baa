// Package views provides TUI view components for the DeepCode client.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deepcode-dev/deepcode/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// SubmitInputMsg is sent when the user submits an input for processing.
// Exactly one outbound call results: a bridge call for file input, a
// network call for chat/url input.
type SubmitInputMsg struct {
	Kind           tui.InputKind
	Source         string
	EnableIndexing bool
}

// StartWizardMsg is sent when the user opens the guided wizard.
type StartWizardMsg struct{}

// ============================================================================
// HomeModel
// ============================================================================

// maxHomeWidth is the maximum width for the home box.
const maxHomeWidth = 80

// inputKindLabels are the selector labels, indexed by tui.InputKind.
var inputKindLabels = []string{"Chat", "URL", "File"}

var inputKindPlaceholders = []string{
	"Describe what you want to build...",
	"https://arxiv.org/abs/...",
	"/path/to/document.pdf",
}

// HomeModel is the view model for the input capture screen.
type HomeModel struct {
	kind           tui.InputKind
	textInput      textinput.Model
	enableIndexing bool
	warning        string
	busy           bool
	Err            error
	width          int
	height         int
}

// NewHomeModel creates a new HomeModel.
func NewHomeModel(width, height int) HomeModel {
	ti := textinput.New()
	ti.Placeholder = inputKindPlaceholders[0]
	ti.CharLimit = 4000
	ti.Width = maxHomeWidth - 12
	ti.Focus()

	return HomeModel{
		kind:           tui.InputKindChat,
		textInput:      ti,
		enableIndexing: true,
		width:          width,
		height:         height,
	}
}

// SetBusy marks a submission as in flight; submit is disabled until the
// response arrives, so at most one request is ever outstanding.
func (m *HomeModel) SetBusy(busy bool) {
	m.busy = busy
}

// Init returns the initial command for the home view.
func (m HomeModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the home view.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter:
			return m.handleSubmit()

		case "ctrl+t":
			m.kind = (m.kind + 1) % 3
			m.textInput.Placeholder = inputKindPlaceholders[m.kind]
			m.warning = ""
			return m, nil

		case "ctrl+n":
			m.enableIndexing = !m.enableIndexing
			return m, nil

		case "ctrl+w":
			return m, func() tea.Msg {
				return StartWizardMsg{}
			}

		case tui.KeyEsc:
			m.warning = ""
			m.Err = nil
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// handleSubmit validates locally and emits SubmitInputMsg. Empty input
// never produces an outbound call; the warning is shown synchronously
// and the view stays idle.
func (m HomeModel) handleSubmit() (HomeModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	value := strings.TrimSpace(m.textInput.Value())
	if value == "" {
		m.warning = "Please provide an input before submitting."
		return m, nil
	}

	m.warning = ""
	kind := m.kind
	indexing := m.enableIndexing
	return m, func() tea.Msg {
		return SubmitInputMsg{
			Kind:           kind,
			Source:         value,
			EnableIndexing: indexing,
		}
	}
}

// View renders the home view.
func (m HomeModel) View() string {
	var b strings.Builder

	// Header
	b.WriteString(tui.TitleStyle.Render("DeepCode"))
	b.WriteString(tui.DimStyle.Render("  paper & requirements to code"))
	b.WriteString("\n\n")

	// Input type selector
	var kinds []string
	for i, label := range inputKindLabels {
		if tui.InputKind(i) == m.kind {
			kinds = append(kinds, tui.ActiveTabStyle.Render(label))
		} else {
			kinds = append(kinds, tui.InactiveTabStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, kinds...))
	b.WriteString("\n\n")

	// Text input
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	// Indexing toggle
	check := "[ ]"
	if m.enableIndexing {
		check = tui.SuccessStyle.Render("[x]")
	}
	b.WriteString(check + " Index generated repository")
	b.WriteString("\n")

	// Busy indicator / warnings / errors
	if m.busy {
		b.WriteString("\n")
		b.WriteString(tui.WarningStyle.Render("Processing... submit disabled until the current task finishes."))
		b.WriteString("\n")
	}
	if m.warning != "" {
		b.WriteString("\n")
		b.WriteString(tui.WarningStyle.Render(m.warning))
		b.WriteString("\n")
	}
	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	footer := "Enter: Submit · Ctrl+T: Input type · Ctrl+N: Indexing · Ctrl+W: Wizard · Tab: Panels"
	b.WriteString(tui.DimStyle.Render(footer))

	// Determine box width
	boxWidth := maxHomeWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}

	return tui.BoxStyle.
		Width(boxWidth).
		Render(b.String())
}
