package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepcode-dev/deepcode/internal/backend"
)

func TestValidateRequirementGate(t *testing.T) {
	w := New()

	w.InitialRequirement = "too short"
	assert.ErrorIs(t, w.ValidateRequirement(), ErrRequirementTooShort)

	// Whitespace does not count toward the minimum.
	w.InitialRequirement = "         padded      "
	assert.ErrorIs(t, w.ValidateRequirement(), ErrRequirementTooShort)

	w.InitialRequirement = "a CLI that converts CSV to JSON"
	assert.NoError(t, w.ValidateRequirement())
}

func TestAnswersStaySparse(t *testing.T) {
	w := New()
	w.InitialRequirement = "a CLI that converts CSV to JSON"
	w.BeginQuestions([]backend.Question{
		{Question: "Which CSV dialects?"},
		{Question: "Streaming or in-memory?"},
		{Question: "Output schema?"},
	})

	w.SetAnswer(0, "RFC 4180 only")
	w.SetAnswer(1, "   ") // whitespace-only answer is a skip
	w.SetAnswer(2, "flat objects")
	w.SetAnswer(2, "") // clearing removes the entry

	require.Len(t, w.Answers, 1)
	assert.Equal(t, "RFC 4180 only", w.Answers[0])
	assert.Equal(t, 1, w.AnsweredCount())
}

func TestEditFlowClearsFeedbackOnlyOnSuccess(t *testing.T) {
	w := New()
	w.InitialRequirement = "a CLI that converts CSV to JSON"
	w.BeginQuestions(nil)
	w.BeginSummary("# Requirements v1")

	w.EnterEditing()
	require.Equal(t, StepEditing, w.Step)

	assert.ErrorIs(t, w.ValidateFeedback(), ErrFeedbackRequired)

	w.EditFeedback = "add a --delimiter flag"
	require.NoError(t, w.ValidateFeedback())

	// A failed engine call leaves everything in place for a retry.
	assert.Equal(t, "add a --delimiter flag", w.EditFeedback)
	assert.Equal(t, "# Requirements v1", w.DetailedRequirements)

	w.ApplyEdit("# Requirements v2")
	assert.Equal(t, StepSummary, w.Step)
	assert.Equal(t, "# Requirements v2", w.DetailedRequirements)
	assert.Empty(t, w.EditFeedback)
}

func TestStartOverResetsEverything(t *testing.T) {
	w := New()
	w.InitialRequirement = "a CLI that converts CSV to JSON"
	w.BeginQuestions([]backend.Question{{Question: "Which CSV dialects?"}})
	w.SetAnswer(0, "all of them")
	w.BeginSummary("# Requirements")
	w.EnterEditing()
	w.EditFeedback = "shorter"

	w.StartOver()

	assert.Equal(t, StepInput, w.Step)
	assert.Empty(t, w.InitialRequirement)
	assert.Empty(t, w.Questions)
	assert.Empty(t, w.Answers)
	assert.Empty(t, w.DetailedRequirements)
	assert.Empty(t, w.EditFeedback)
}

func TestConfirmedReturnsSynthesizedText(t *testing.T) {
	w := New()
	assert.Empty(t, w.Confirmed())

	w.BeginSummary("# Requirements")
	assert.Equal(t, "# Requirements", w.Confirmed())
}
