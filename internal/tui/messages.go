// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/progress"
	"github.com/deepcode-dev/deepcode/internal/settings"
)

// ============================================================================
// Submission Messages
// ============================================================================

// ResponseMsg carries the final engine response for a submission,
// successful or not. Transport failures arrive pre-normalized into the
// error shape, so there is exactly one rendering path.
type ResponseMsg struct {
	Response *backend.ApiResponse
}

// ============================================================================
// Progress Channel Messages
// ============================================================================

// ProgressConnectedMsg signals that the push channel subscription is live.
type ProgressConnectedMsg struct {
	Listener *progress.Listener
}

// ProgressUnavailableMsg signals that the push channel could not be
// opened. The submission proceeds without live progress.
type ProgressUnavailableMsg struct {
	Err error
}

// ProgressEventMsg carries one frame from the push channel.
type ProgressEventMsg struct {
	Event progress.Event
}

// ProgressClosedMsg signals that the push channel ended. It is never
// reopened for the same session.
type ProgressClosedMsg struct{}

// ============================================================================
// Wizard Messages
// ============================================================================

// QuestionsGeneratedMsg carries clarifying questions for the wizard.
type QuestionsGeneratedMsg struct {
	Questions []backend.Question
}

// RequirementsGeneratedMsg carries the synthesized requirements document.
type RequirementsGeneratedMsg struct {
	Text string
}

// RequirementsEditedMsg carries the revised requirements after an edit.
type RequirementsEditedMsg struct {
	Text string
}

// WizardErrorMsg signals a failed wizard engine call. The wizard stays
// on its current step and shows the error as a banner.
type WizardErrorMsg struct {
	Err error
}

// ============================================================================
// Settings Messages
// ============================================================================

// SettingsLoadedMsg carries both parsed configuration documents.
type SettingsLoadedMsg struct {
	Config  *settings.Document
	Secrets *settings.Document
}

// SettingsSavedMsg signals that both documents were written; the panel
// reloads immediately to confirm persisted state.
type SettingsSavedMsg struct{}

// SettingsErrorMsg signals a failed settings load or save.
type SettingsErrorMsg struct {
	Err error
}

// ============================================================================
// History & Diagnostics Messages
// ============================================================================

// HistoryLoadedMsg carries the processing history, newest first.
type HistoryLoadedMsg struct {
	Entries []backend.ProcessingHistoryEntry
}

// HistoryClearedMsg signals that the engine cleared the history.
type HistoryClearedMsg struct{}

// HistoryErrorMsg signals a failed history operation.
type HistoryErrorMsg struct {
	Err error
}

// DiagnosticsLoadedMsg carries a diagnostics snapshot.
type DiagnosticsLoadedMsg struct {
	Diagnostics *backend.SystemDiagnostics
}

// DiagnosticsErrorMsg signals a failed diagnostics operation.
type DiagnosticsErrorMsg struct {
	Err error
}

// StateResetMsg signals that the engine reset its application state; a
// full UI reload follows after a short delay.
type StateResetMsg struct{}

// ReloadMsg triggers the full UI reload that resynchronizes all panels.
type ReloadMsg struct{}

// ============================================================================
// Results Messages
// ============================================================================

// FileDownloadedMsg signals that a generated file was saved locally.
type FileDownloadedMsg struct {
	Path string
}

// ResponseExportedMsg signals that the full response was exported.
type ResponseExportedMsg struct {
	Path string
}

// ResultsErrorMsg signals a failed download or export.
type ResultsErrorMsg struct {
	Err error
}

// ============================================================================
// Utility Messages
// ============================================================================

// GoHomeMsg returns the UI to the home screen.
type GoHomeMsg struct{}

// CtrlCResetMsg resets the Ctrl+C confirmation state after timeout.
type CtrlCResetMsg struct{}
