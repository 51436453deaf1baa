// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/bridge"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// errNoSidecar reports wizard calls attempted without a sidecar. The
// wizard's engine operations have no HTTP fallback.
var errNoSidecar = errors.New("requirement wizard needs the engine sidecar")

// GenerateQuestionsCmd asks the engine for clarifying questions on an
// initial requirement.
func GenerateQuestionsCmd(sidecar *bridge.Sidecar, requirement string) tea.Cmd {
	return func() tea.Msg {
		if sidecar == nil {
			return tui.WizardErrorMsg{Err: errNoSidecar}
		}
		questions, err := sidecar.GenerateQuestions(requirement)
		if err != nil {
			return tui.WizardErrorMsg{Err: err}
		}
		return tui.QuestionsGeneratedMsg{Questions: questions}
	}
}

// GenerateRequirementsCmd synthesizes the detailed requirements document
// from the initial requirement and the sparse answer map.
func GenerateRequirementsCmd(sidecar *bridge.Sidecar, requirement string, answers map[int]string) tea.Cmd {
	return func() tea.Msg {
		if sidecar == nil {
			return tui.WizardErrorMsg{Err: errNoSidecar}
		}
		text, err := sidecar.GenerateDetailedRequirements(requirement, answers)
		if err != nil {
			return tui.WizardErrorMsg{Err: err}
		}
		return tui.RequirementsGeneratedMsg{Text: text}
	}
}

// EditRequirementsCmd applies feedback to the current requirements and
// returns the revision.
func EditRequirementsCmd(sidecar *bridge.Sidecar, current, feedback string) tea.Cmd {
	return func() tea.Msg {
		if sidecar == nil {
			return tui.WizardErrorMsg{Err: errNoSidecar}
		}
		text, err := sidecar.EditRequirements(current, feedback)
		if err != nil {
			return tui.WizardErrorMsg{Err: err}
		}
		return tui.RequirementsEditedMsg{Text: text}
	}
}
