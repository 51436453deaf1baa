// Package views provides TUI view components for the DeepCode client.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/tui"
	"github.com/deepcode-dev/deepcode/internal/wizard"
)

// ============================================================================
// Message Types
// ============================================================================

// WizardQuestionsRequestMsg asks for clarifying questions for the
// initial requirement.
type WizardQuestionsRequestMsg struct {
	Requirement string
}

// WizardSynthesizeRequestMsg asks for the detailed requirements
// document. Answers is sparse; skipped questions are absent.
type WizardSynthesizeRequestMsg struct {
	Requirement string
	Answers     map[int]string
}

// WizardEditRequestMsg asks for a revision of the current requirements.
type WizardEditRequestMsg struct {
	Current  string
	Feedback string
}

// WizardConfirmMsg hands the final requirements text to the submission
// dispatcher and exits the wizard.
type WizardConfirmMsg struct {
	Requirements string
}

// WizardCancelMsg abandons the wizard and returns home.
type WizardCancelMsg struct{}

// ============================================================================
// WizardModel
// ============================================================================

// maxWizardWidth is the maximum width for the wizard box.
const maxWizardWidth = 90

// WizardModel is the view model for the guided requirements wizard.
type WizardModel struct {
	wiz      *wizard.Wizard
	current  int // index of the question being answered
	busy     bool
	errText  string
	input    textinput.Model
	area     textarea.Model
	viewport viewport.Model
	width    int
	height   int
}

// NewWizardModel creates a wizard view at the initial empty state.
func NewWizardModel(width, height int) WizardModel {
	ti := textinput.New()
	ti.Placeholder = "Your answer (leave empty to skip)..."
	ti.CharLimit = 1000
	ti.Width = maxWizardWidth - 12

	ta := textarea.New()
	ta.Placeholder = "Describe the system you want built..."
	ta.CharLimit = 8000
	ta.SetWidth(maxWizardWidth - 8)
	ta.SetHeight(6)
	ta.Focus()

	vp := viewport.New(maxWizardWidth-8, height-14)

	return WizardModel{
		wiz:      wizard.New(),
		input:    ti,
		area:     ta,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the wizard view.
func (m WizardModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the wizard view.
func (m WizardModel) Update(msg tea.Msg) (WizardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.QuestionsGeneratedMsg:
		m.busy = false
		m.errText = ""
		m.wiz.BeginQuestions(msg.Questions)
		m.current = 0
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case tui.RequirementsGeneratedMsg:
		m.busy = false
		m.errText = ""
		m.wiz.BeginSummary(msg.Text)
		m.viewport.SetContent(msg.Text)
		m.viewport.GotoTop()
		return m, nil

	case tui.RequirementsEditedMsg:
		m.busy = false
		m.errText = ""
		m.wiz.ApplyEdit(msg.Text)
		m.area.SetValue("")
		m.viewport.SetContent(msg.Text)
		m.viewport.GotoTop()
		return m, nil

	case tui.WizardErrorMsg:
		// Stay on the current step; user-entered text is untouched.
		m.busy = false
		m.errText = msg.Err.Error()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m.updateComponents(msg)
}

func (m WizardModel) handleKey(msg tea.KeyMsg) (WizardModel, tea.Cmd) {
	switch m.wiz.Step {
	case wizard.StepInput:
		return m.handleInputKey(msg)
	case wizard.StepQuestions:
		return m.handleQuestionsKey(msg)
	case wizard.StepSummary:
		return m.handleSummaryKey(msg)
	case wizard.StepEditing:
		return m.handleEditingKey(msg)
	}
	return m, nil
}

func (m WizardModel) handleInputKey(msg tea.KeyMsg) (WizardModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.wiz.InitialRequirement = m.area.Value()
		if err := m.wiz.ValidateRequirement(); err != nil {
			// Blocked locally; no engine call is made and the text stays.
			m.errText = err.Error()
			return m, nil
		}
		m.busy = true
		m.errText = ""
		requirement := m.wiz.InitialRequirement
		return m, func() tea.Msg {
			return WizardQuestionsRequestMsg{Requirement: requirement}
		}

	case tui.KeyEsc:
		return m, func() tea.Msg {
			return WizardCancelMsg{}
		}
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m WizardModel) handleQuestionsKey(msg tea.KeyMsg) (WizardModel, tea.Cmd) {
	switch msg.String() {
	case tui.KeyEnter:
		// Record (or skip) the current answer and advance. The last
		// question triggers synthesis.
		m.wiz.SetAnswer(m.current, m.input.Value())
		if m.current < len(m.wiz.Questions)-1 {
			m.current++
			m.input.SetValue("")
			return m, nil
		}
		m.busy = true
		m.errText = ""
		requirement := m.wiz.InitialRequirement
		answers := m.wiz.Answers
		return m, func() tea.Msg {
			return WizardSynthesizeRequestMsg{Requirement: requirement, Answers: answers}
		}

	case tui.KeyUp:
		if m.current > 0 {
			m.wiz.SetAnswer(m.current, m.input.Value())
			m.current--
			m.input.SetValue(m.wiz.Answers[m.current])
		}
		return m, nil

	case tui.KeyEsc:
		return m.startOver()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m WizardModel) handleSummaryKey(msg tea.KeyMsg) (WizardModel, tea.Cmd) {
	switch msg.String() {
	case "c":
		requirements := m.wiz.Confirmed()
		return m, func() tea.Msg {
			return WizardConfirmMsg{Requirements: requirements}
		}

	case "e":
		m.wiz.EnterEditing()
		m.area.SetValue(m.wiz.EditFeedback)
		m.area.Placeholder = "What should change in the requirements?"
		m.area.Focus()
		return m, textarea.Blink

	case "s":
		return m.startOver()

	case tui.KeyEsc:
		return m, func() tea.Msg {
			return WizardCancelMsg{}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m WizardModel) handleEditingKey(msg tea.KeyMsg) (WizardModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.wiz.EditFeedback = m.area.Value()
		if err := m.wiz.ValidateFeedback(); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		m.busy = true
		m.errText = ""
		current := m.wiz.DetailedRequirements
		feedback := m.wiz.EditFeedback
		return m, func() tea.Msg {
			return WizardEditRequestMsg{Current: current, Feedback: feedback}
		}

	case tui.KeyEsc:
		// Back to the summary without an edit call; feedback is kept.
		m.wiz.EditFeedback = m.area.Value()
		m.wiz.Step = wizard.StepSummary
		return m, nil
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

// startOver clears every wizard field and returns to the input step.
func (m WizardModel) startOver() (WizardModel, tea.Cmd) {
	m.wiz.StartOver()
	m.current = 0
	m.errText = ""
	m.input.SetValue("")
	m.area.SetValue("")
	m.area.Placeholder = "Describe the system you want built..."
	m.area.Focus()
	return m, textarea.Blink
}

func (m WizardModel) updateComponents(msg tea.Msg) (WizardModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.wiz.Step {
	case wizard.StepInput, wizard.StepEditing:
		m.area, cmd = m.area.Update(msg)
		cmds = append(cmds, cmd)
	case wizard.StepQuestions:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	case wizard.StepSummary:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// Wizard exposes the underlying state machine, mainly for tests.
func (m WizardModel) Wizard() *wizard.Wizard {
	return m.wiz
}

// View renders the wizard view.
func (m WizardModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Guided Requirements Wizard"))
	b.WriteString(tui.DimStyle.Render(fmt.Sprintf("  step %d of 4", m.wiz.Step+1)))
	b.WriteString("\n\n")

	switch m.wiz.Step {
	case wizard.StepInput:
		b.WriteString("Describe your requirement. The engine will ask clarifying questions.\n\n")
		b.WriteString(m.area.View())
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Ctrl+S: Generate questions · Esc: Home"))

	case wizard.StepQuestions:
		if len(m.wiz.Questions) == 0 {
			b.WriteString("No clarifying questions needed.\n\n")
			b.WriteString(tui.DimStyle.Render("Enter: Generate requirements · Esc: Start over"))
			break
		}
		q := m.wiz.Questions[m.current]
		b.WriteString(tui.DimStyle.Render(fmt.Sprintf("Question %d of %d", m.current+1, len(m.wiz.Questions))))
		b.WriteString("\n\n")
		b.WriteString(q.Question)
		b.WriteString("\n")
		if q.Category != "" || q.Importance != "" {
			meta := strings.TrimSpace(q.Category + " " + renderImportance(q.Importance))
			b.WriteString(tui.DimStyle.Render(meta))
			b.WriteString("\n")
		}
		if q.Hint != "" {
			b.WriteString(tui.DimStyle.Render("Hint: " + q.Hint))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Enter: Next (empty skips) · ↑: Previous · Esc: Start over"))

	case wizard.StepSummary:
		b.WriteString(tui.SuccessStyle.Render("Detailed requirements"))
		b.WriteString(tui.DimStyle.Render(fmt.Sprintf("  (%d of %d questions answered)",
			m.wiz.AnsweredCount(), len(m.wiz.Questions))))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("c: Confirm & submit · e: Edit · s: Start over · ↑↓: Scroll"))

	case wizard.StepEditing:
		b.WriteString("Describe what should change:\n\n")
		b.WriteString(m.area.View())
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Ctrl+S: Apply edit · Esc: Back to summary"))
	}

	if m.busy {
		b.WriteString("\n\n")
		b.WriteString(tui.WarningStyle.Render("Waiting for the engine..."))
	}
	if m.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(tui.ErrorStyle.Render("Error: " + m.errText))
	}

	boxWidth := maxWizardWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}

	return tui.BoxStyle.
		Width(boxWidth).
		Render(b.String())
}

func renderImportance(importance string) string {
	if importance == "" {
		return ""
	}
	return "[" + importance + "]"
}
