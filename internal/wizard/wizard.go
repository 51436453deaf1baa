// Package wizard holds the guided requirements wizard state machine:
// Input -> Questions -> Summary -> Editing, with Editing -> Summary and
// any-step -> Input ("start over") as explicit back-edges. The machine
// is pure state; the TUI layer performs the engine calls and feeds the
// results back in.
package wizard

import (
	"errors"
	"strings"

	"github.com/deepcode-dev/deepcode/internal/backend"
)

// Step identifies the wizard's current screen.
type Step int

const (
	StepInput Step = iota
	StepQuestions
	StepSummary
	StepEditing
)

// MinRequirementLen is the minimum trimmed length of the initial
// requirement before questions may be generated.
const MinRequirementLen = 10

// ErrRequirementTooShort blocks the Input -> Questions transition.
var ErrRequirementTooShort = errors.New("please describe your requirement in at least 10 characters")

// ErrFeedbackRequired blocks the Editing -> Summary transition.
var ErrFeedbackRequired = errors.New("please enter edit feedback first")

// Wizard is the full wizard state. It is owned by exactly one view and
// reset in its entirety on start-over.
type Wizard struct {
	Step                 Step
	InitialRequirement   string
	Questions            []backend.Question
	Answers              map[int]string // question index -> answer text, sparse
	DetailedRequirements string
	EditFeedback         string
}

// New returns a Wizard at the initial empty state.
func New() *Wizard {
	return &Wizard{
		Step:    StepInput,
		Answers: make(map[int]string),
	}
}

// ValidateRequirement checks the Input -> Questions gate without moving
// state. The question-generation call must not be made when this fails.
func (w *Wizard) ValidateRequirement() error {
	if len(strings.TrimSpace(w.InitialRequirement)) < MinRequirementLen {
		return ErrRequirementTooShort
	}
	return nil
}

// BeginQuestions applies a successful question-generation result and
// moves to the Questions step.
func (w *Wizard) BeginQuestions(questions []backend.Question) {
	w.Step = StepQuestions
	w.Questions = questions
	w.Answers = make(map[int]string)
}

// SetAnswer records the answer for one question. Empty answers are
// removed, keeping the map sparse; skipped questions simply never appear.
func (w *Wizard) SetAnswer(index int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		delete(w.Answers, index)
		return
	}
	w.Answers[index] = text
}

// BeginSummary applies a successful requirements synthesis and moves to
// the Summary step.
func (w *Wizard) BeginSummary(detailed string) {
	w.Step = StepSummary
	w.DetailedRequirements = detailed
}

// EnterEditing moves Summary -> Editing. No engine call is involved.
func (w *Wizard) EnterEditing() {
	if w.Step == StepSummary {
		w.Step = StepEditing
	}
}

// ValidateFeedback checks the Editing -> Summary gate without moving
// state.
func (w *Wizard) ValidateFeedback() error {
	if strings.TrimSpace(w.EditFeedback) == "" {
		return ErrFeedbackRequired
	}
	return nil
}

// ApplyEdit applies a successful edit operation: the revised text
// replaces the stored requirements, feedback is cleared, and the wizard
// returns to Summary. Feedback survives failed edits so the user can
// retry or adjust it.
func (w *Wizard) ApplyEdit(revised string) {
	w.DetailedRequirements = revised
	w.EditFeedback = ""
	w.Step = StepSummary
}

// StartOver resets every field unconditionally, from any step.
func (w *Wizard) StartOver() {
	*w = Wizard{
		Step:    StepInput,
		Answers: make(map[int]string),
	}
}

// Confirmed returns the final requirements text handed to the submission
// dispatcher when the user confirms the summary.
func (w *Wizard) Confirmed() string {
	return w.DetailedRequirements
}

// AnsweredCount reports how many questions received answers.
func (w *Wizard) AnsweredCount() int {
	return len(w.Answers)
}
