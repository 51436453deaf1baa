package views

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/tui"
	"github.com/deepcode-dev/deepcode/internal/wizard"
)

func ctrlS() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyCtrlS}
}

func typeArea(m WizardModel, text string) WizardModel {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestWizardShortRequirementBlocksLocally(t *testing.T) {
	m := NewWizardModel(90, 30)
	m = typeArea(m, "too short")

	m, cmd := m.Update(ctrlS())
	if cmd != nil {
		t.Fatal("short requirement produced a command; the gate is local")
	}
	if !strings.Contains(m.View(), "at least 10 characters") {
		t.Error("validation error not rendered")
	}
	// The typed text survives the rejection.
	if m.Wizard().InitialRequirement != "too short" {
		t.Errorf("requirement: got %q", m.Wizard().InitialRequirement)
	}
}

func TestWizardValidRequirementRequestsQuestions(t *testing.T) {
	m := NewWizardModel(90, 30)
	m = typeArea(m, "a service that converts CSV files to JSON")

	m, cmd := m.Update(ctrlS())
	if cmd == nil {
		t.Fatal("valid requirement produced no command")
	}
	msg, ok := cmd().(WizardQuestionsRequestMsg)
	if !ok {
		t.Fatalf("command msg: got %T, want WizardQuestionsRequestMsg", cmd())
	}
	if msg.Requirement != "a service that converts CSV files to JSON" {
		t.Errorf("requirement: got %q", msg.Requirement)
	}
}

func TestWizardAnswerFlowEndsInSynthesis(t *testing.T) {
	m := NewWizardModel(90, 30)
	m = typeArea(m, "a service that converts CSV files to JSON")
	m, _ = m.Update(ctrlS())

	m, _ = m.Update(tui.QuestionsGeneratedMsg{Questions: []backend.Question{
		{Question: "Which dialect?"},
		{Question: "Streaming?"},
	}})
	if m.Wizard().Step != wizard.StepQuestions {
		t.Fatalf("step: got %v, want Questions", m.Wizard().Step)
	}

	// Answer the first, skip the second.
	m = typeArea(m, "RFC 4180")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("last question produced no synthesis request")
	}

	msg, ok := cmd().(WizardSynthesizeRequestMsg)
	if !ok {
		t.Fatalf("command msg: got %T, want WizardSynthesizeRequestMsg", cmd())
	}
	if len(msg.Answers) != 1 || msg.Answers[0] != "RFC 4180" {
		t.Errorf("answers: got %v, want one sparse entry", msg.Answers)
	}
}

func TestWizardErrorKeepsStepAndText(t *testing.T) {
	m := NewWizardModel(90, 30)
	m = typeArea(m, "a service that converts CSV files to JSON")
	m, _ = m.Update(ctrlS())

	m, _ = m.Update(tui.WizardErrorMsg{Err: errors.New("engine offline")})
	if m.Wizard().Step != wizard.StepInput {
		t.Errorf("step after error: got %v, want Input", m.Wizard().Step)
	}
	if !strings.Contains(m.View(), "engine offline") {
		t.Error("error banner not rendered")
	}
	if m.Wizard().InitialRequirement == "" {
		t.Error("requirement text lost on error")
	}
}

func TestWizardConfirmHandsOffRequirements(t *testing.T) {
	m := NewWizardModel(90, 30)
	m = typeArea(m, "a service that converts CSV files to JSON")
	m, _ = m.Update(ctrlS())
	m, _ = m.Update(tui.QuestionsGeneratedMsg{})
	m, _ = m.Update(tui.RequirementsGeneratedMsg{Text: "# Detailed"})

	if m.Wizard().Step != wizard.StepSummary {
		t.Fatalf("step: got %v, want Summary", m.Wizard().Step)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if cmd == nil {
		t.Fatal("confirm produced no command")
	}
	msg, ok := cmd().(WizardConfirmMsg)
	if !ok {
		t.Fatalf("command msg: got %T, want WizardConfirmMsg", cmd())
	}
	if msg.Requirements != "# Detailed" {
		t.Errorf("requirements: got %q", msg.Requirements)
	}
}
