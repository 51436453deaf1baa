// Package app provides the main TUI application that wires all views together.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/log"
	"github.com/deepcode-dev/deepcode/internal/tui"
	"github.com/deepcode-dev/deepcode/internal/tui/commands"
	"github.com/deepcode-dev/deepcode/internal/tui/views"
)

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	// View models
	homeView        views.HomeModel
	wizardView      views.WizardModel
	processingView  views.ProcessingModel
	resultsView     views.ResultsModel
	settingsView    views.SettingsModel
	historyView     views.HistoryModel
	diagnosticsView views.DiagnosticsModel
}

// New creates a new App with the given engine connections.
func New(deps tui.Deps) *App {
	model := tui.NewModel(deps)

	return &App{
		model:           model,
		homeView:        views.NewHomeModel(model.Width, model.Height),
		settingsView:    views.NewSettingsModel(model.Width, model.Height),
		historyView:     views.NewHistoryModel(model.Width, model.Height),
		diagnosticsView: views.NewDiagnosticsModel(model.Width, model.Height),
	}
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	return a.homeView.Init()
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		// Only propagate to the currently active view.
		var cmd tea.Cmd
		switch a.model.State {
		case tui.StateHome:
			a.homeView, cmd = a.homeView.Update(msg)
		case tui.StateWizard:
			a.wizardView, cmd = a.wizardView.Update(msg)
		case tui.StateProcessing:
			a.processingView, cmd = a.processingView.Update(msg)
		case tui.StateResults:
			a.resultsView, cmd = a.resultsView.Update(msg)
		case tui.StateSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case tui.StateHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case tui.StateDiagnostics:
			a.diagnosticsView, cmd = a.diagnosticsView.Update(msg)
		}
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlC:
			if a.model.CtrlCPending {
				a.teardownListener()
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})

		case tui.KeyTab:
			if a.canCycleTab() {
				return a, a.cycleTab()
			}
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.ProgressConnectedMsg:
		// The subscription races the submission inside the same batch.
		// If the response won, the session is already over and nothing
		// will ever store or close this listener; close it here.
		if !a.model.Processing {
			msg.Listener.Close()
			return a, nil
		}

	case tui.ReloadMsg:
		return a.handleReload()

	case tui.GoHomeMsg:
		return a.goHome()
	}

	// Route messages based on current state.
	switch a.model.State {
	case tui.StateHome:
		return a.updateHome(msg)
	case tui.StateWizard:
		return a.updateWizard(msg)
	case tui.StateProcessing:
		return a.updateProcessing(msg)
	case tui.StateResults:
		return a.updateResults(msg)
	case tui.StateSettings:
		return a.updateSettings(msg)
	case tui.StateHistory:
		return a.updateHistory(msg)
	case tui.StateDiagnostics:
		return a.updateDiagnostics(msg)
	}

	return a, nil
}

// canCycleTab reports whether Tab should cycle the side panels. Cycling
// is limited to the panel states; a submission or wizard in flight keeps
// focus, and an open settings editor keeps Tab for itself.
func (a *App) canCycleTab() bool {
	switch a.model.State {
	case tui.StateHome, tui.StateHistory, tui.StateDiagnostics:
		return true
	case tui.StateSettings:
		return !a.settingsView.Editing()
	}
	return false
}

// cycleTab advances to the next panel and fires its load command, so
// every panel shows fresh engine state on entry.
func (a *App) cycleTab() tea.Cmd {
	a.model.ActiveTab = (a.model.ActiveTab + 1) % 4

	switch a.model.ActiveTab {
	case tui.TabHome:
		a.model.State = tui.StateHome
		return nil
	case tui.TabSettings:
		a.model.State = tui.StateSettings
		a.settingsView = views.NewSettingsModel(a.model.Width, a.model.Height)
		return commands.LoadSettingsCmd(a.model.Files)
	case tui.TabHistory:
		a.model.State = tui.StateHistory
		a.historyView = views.NewHistoryModel(a.model.Width, a.model.Height)
		return commands.LoadHistoryCmd(a.model.Sidecar)
	default:
		a.model.State = tui.StateDiagnostics
		a.diagnosticsView = views.NewDiagnosticsModel(a.model.Width, a.model.Height)
		return commands.LoadDiagnosticsCmd(a.model.Sidecar)
	}
}

// goHome returns to the input screen without touching session results.
func (a *App) goHome() (tea.Model, tea.Cmd) {
	a.model.State = tui.StateHome
	a.model.ActiveTab = tui.TabHome
	a.homeView.SetBusy(false)
	return a, nil
}

// handleReload rebuilds every panel and refetches engine state. Runs
// after a state reset once the engine has settled.
func (a *App) handleReload() (tea.Model, tea.Cmd) {
	a.homeView = views.NewHomeModel(a.model.Width, a.model.Height)
	a.settingsView = views.NewSettingsModel(a.model.Width, a.model.Height)
	a.historyView = views.NewHistoryModel(a.model.Width, a.model.Height)
	a.diagnosticsView = views.NewDiagnosticsModel(a.model.Width, a.model.Height)
	a.model.Response = nil

	cmds := []tea.Cmd{
		commands.LoadSettingsCmd(a.model.Files),
		commands.LoadHistoryCmd(a.model.Sidecar),
	}
	if a.model.State == tui.StateDiagnostics {
		cmds = append(cmds, commands.LoadDiagnosticsCmd(a.model.Sidecar))
	} else {
		a.model.State = tui.StateHome
		a.model.ActiveTab = tui.TabHome
	}
	return a, tea.Batch(cmds...)
}

// ============================================================================
// State Update Handlers
// ============================================================================

func (a *App) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.homeView, cmd = a.homeView.Update(msg)

	switch msg := msg.(type) {
	case views.SubmitInputMsg:
		return a, a.startSubmission(msg.Kind, msg.Source, msg.EnableIndexing)

	case views.StartWizardMsg:
		a.model.State = tui.StateWizard
		a.wizardView = views.NewWizardModel(a.model.Width, a.model.Height)
		_ = a.model.Logger.Append(log.LogEvent{Event: log.EventWizardStarted})
		return a, a.wizardView.Init()
	}

	return a, cmd
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.wizardView, cmd = a.wizardView.Update(msg)

	switch msg := msg.(type) {
	case views.WizardQuestionsRequestMsg:
		return a, commands.GenerateQuestionsCmd(a.model.Sidecar, msg.Requirement)

	case views.WizardSynthesizeRequestMsg:
		return a, commands.GenerateRequirementsCmd(a.model.Sidecar, msg.Requirement, msg.Answers)

	case views.WizardEditRequestMsg:
		return a, commands.EditRequirementsCmd(a.model.Sidecar, msg.Current, msg.Feedback)

	case tui.RequirementsGeneratedMsg:
		_ = a.model.Logger.Append(log.LogEvent{Event: log.EventWizardSynthesized})
		return a, cmd

	case tui.RequirementsEditedMsg:
		_ = a.model.Logger.Append(log.LogEvent{Event: log.EventWizardEdited})
		return a, cmd

	case views.WizardConfirmMsg:
		// The synthesized document is submitted like any chat input.
		return a, a.startSubmission(tui.InputKindChat, msg.Requirements, true)

	case views.WizardCancelMsg:
		return a.goHome()
	}

	return a, cmd
}

// startSubmission opens a processing session: fresh session ID, push
// channel subscription, and exactly one outbound call chosen by input
// kind.
func (a *App) startSubmission(kind tui.InputKind, source string, enableIndexing bool) tea.Cmd {
	a.model.State = tui.StateProcessing
	a.model.Processing = true
	a.model.SessionID = uuid.NewString()
	a.model.SessionStarted = time.Now()
	a.model.Response = nil
	a.processingView = views.NewProcessingModel(a.model.Width, a.model.Height)

	_ = a.model.Logger.Append(log.LogEvent{
		Event:       log.EventSubmissionStarted,
		SessionID:   a.model.SessionID,
		InputType:   kind.String(),
		InputSource: source,
	})

	// File input goes through the sidecar by path; without one the
	// legacy multipart upload is the fallback, same as the CLI's
	// --legacy-upload flag.
	var submit tea.Cmd
	if kind == tui.InputKindFile && a.model.Sidecar != nil {
		submit = commands.SubmitFileCmd(a.model.Sidecar, source, enableIndexing)
	} else if kind == tui.InputKindFile {
		submit = commands.SubmitFileUploadCmd(a.model.Backend, source, enableIndexing)
	} else {
		submit = commands.SubmitTextCmd(a.model.Backend, kind.String(), source, enableIndexing)
	}

	return tea.Batch(
		a.processingView.Init(),
		commands.ConnectProgressCmd(a.model.WSURL, a.model.Logger),
		submit,
	)
}

func (a *App) updateProcessing(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.processingView, cmd = a.processingView.Update(msg)

	switch msg := msg.(type) {
	case tui.ProgressConnectedMsg:
		a.model.Listener = msg.Listener
		return a, tea.Batch(cmd, commands.WaitProgressCmd(msg.Listener))

	case tui.ProgressEventMsg:
		if a.model.Listener != nil {
			return a, tea.Batch(cmd, commands.WaitProgressCmd(a.model.Listener))
		}
		return a, cmd

	case tui.ProgressClosedMsg:
		a.model.Listener = nil
		return a, cmd

	case tui.ResponseMsg:
		return a.finishSubmission(msg.Response)
	}

	return a, cmd
}

// finishSubmission closes the session and shows the results screen. The
// push channel, if still open, is torn down; the response alone decides
// success or failure.
func (a *App) finishSubmission(resp *backend.ApiResponse) (tea.Model, tea.Cmd) {
	a.teardownListener()
	a.model.Processing = false
	a.model.Response = resp

	event := log.EventSubmissionComplete
	errText := ""
	if resp.IsError() {
		event = log.EventSubmissionFailed
		errText = resp.Error
	}
	_ = a.model.Logger.Append(log.LogEvent{
		Event:      event,
		SessionID:  a.model.SessionID,
		Status:     resp.Status,
		Error:      errText,
		DurationMs: time.Since(a.model.SessionStarted).Milliseconds(),
	})

	a.model.State = tui.StateResults
	a.resultsView = views.NewResultsModel(resp, a.model.Width, a.model.Height)
	return a, a.resultsView.Init()
}

func (a *App) teardownListener() {
	if a.model.Listener != nil {
		a.model.Listener.Close()
		a.model.Listener = nil
	}
}

func (a *App) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.resultsView, cmd = a.resultsView.Update(msg)

	switch msg := msg.(type) {
	case views.DownloadFileRequestMsg:
		return a, commands.DownloadFileCmd(a.model.Sidecar, a.model.Files, msg.RemotePath)

	case views.ExportResponseRequestMsg:
		return a, commands.ExportResponseCmd(a.model.Files, a.model.Response)

	case tui.FileDownloadedMsg:
		_ = a.model.Logger.Append(log.LogEvent{
			Event:     log.EventFileDownloaded,
			SessionID: a.model.SessionID,
			Path:      msg.Path,
		})
		return a, cmd

	case tui.ResponseExportedMsg:
		_ = a.model.Logger.Append(log.LogEvent{
			Event:     log.EventResponseExported,
			SessionID: a.model.SessionID,
			Path:      msg.Path,
		})
		return a, cmd
	}

	return a, cmd
}

func (a *App) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.settingsView, cmd = a.settingsView.Update(msg)

	switch msg := msg.(type) {
	case views.SaveSettingsRequestMsg:
		return a, commands.SaveSettingsCmd(a.model.Files, msg.Config, msg.Secrets)

	case views.ReloadSettingsRequestMsg:
		return a, commands.LoadSettingsCmd(a.model.Files)

	case tui.SettingsSavedMsg:
		_ = a.model.Logger.Append(log.LogEvent{Event: log.EventSettingsSaved})
		// Reload immediately so the panel shows persisted state.
		return a, tea.Batch(cmd, commands.LoadSettingsCmd(a.model.Files))
	}

	return a, cmd
}

func (a *App) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.historyView, cmd = a.historyView.Update(msg)

	switch msg.(type) {
	case views.ClearHistoryRequestMsg:
		return a, commands.ClearHistoryCmd(a.model.Sidecar)

	case tui.HistoryClearedMsg:
		_ = a.model.Logger.Append(log.LogEvent{Event: log.EventHistoryCleared})
		return a, cmd
	}

	return a, cmd
}

func (a *App) updateDiagnostics(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.diagnosticsView, cmd = a.diagnosticsView.Update(msg)

	switch msg.(type) {
	case views.ResetStateRequestMsg:
		return a, commands.ResetStateCmd(a.model.Sidecar)

	case tui.StateResetMsg:
		_ = a.model.Logger.Append(log.LogEvent{Event: log.EventStateReset})
		return a, tea.Batch(cmd, commands.ScheduleReloadCmd())
	}

	return a, cmd
}

// ============================================================================
// Rendering
// ============================================================================

// View renders the current application state.
func (a *App) View() string {
	var content string

	switch a.model.State {
	case tui.StateHome:
		content = a.homeView.View()
	case tui.StateWizard:
		content = a.wizardView.View()
	case tui.StateProcessing:
		content = a.processingView.View()
	case tui.StateResults:
		content = a.resultsView.View()
	case tui.StateSettings:
		content = a.settingsView.View()
	case tui.StateHistory:
		content = a.historyView.View()
	case tui.StateDiagnostics:
		content = a.diagnosticsView.View()
	default:
		content = "Unknown state"
	}

	if a.shouldShowTabBar() {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", a.renderTabBar())
	}

	if a.model.CtrlCPending {
		hint := tui.WarningStyle.Render("Press Ctrl+C again to exit")
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", hint)
	}

	return lipgloss.Place(
		a.model.Width,
		a.model.Height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// shouldShowTabBar reports whether the panel bar renders. Focused flows
// (wizard, processing, results) own the whole screen.
func (a *App) shouldShowTabBar() bool {
	switch a.model.State {
	case tui.StateHome, tui.StateSettings, tui.StateHistory, tui.StateDiagnostics:
		return true
	}
	return false
}

func (a *App) renderTabBar() string {
	labels := []string{"Home", "Settings", "History", "Diagnostics"}

	var rendered []string
	for i, label := range labels {
		if tui.Tab(i) == a.model.ActiveTab {
			rendered = append(rendered, tui.ActiveTabStyle.Render(label))
		} else {
			rendered = append(rendered, tui.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
