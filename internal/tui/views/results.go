// Package views provides TUI view components for the DeepCode client.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// DownloadFileRequestMsg asks for one generated file's bytes and a local
// save.
type DownloadFileRequestMsg struct {
	RemotePath string
}

// ExportResponseRequestMsg asks for the full response to be serialized
// to a local path. Independent of per-file download.
type ExportResponseRequestMsg struct{}

// ============================================================================
// ResultsModel
// ============================================================================

// ResultTab identifies one of the four result tabs.
type ResultTab int

const (
	TabAnalysis ResultTab = iota
	TabDownload
	TabImplementation
	TabFiles
)

var resultTabLabels = []string{"Analysis", "Download", "Implementation", "Files"}

// Literal placeholders shown when a section is absent from the response.
var resultPlaceholders = []string{
	"No analysis results available.",
	"No download results available.",
	"No implementation results available.",
	"No generated files available.",
}

// maxResultsWidth is the maximum width for the results box.
const maxResultsWidth = 100

// ResultsModel is the view model for the tabbed results screen.
type ResultsModel struct {
	response   *backend.ApiResponse
	activeTab  ResultTab
	viewport   viewport.Model
	fileCursor int
	status     string
	statusErr  bool
	width      int
	height     int
}

// NewResultsModel creates a ResultsModel for a completed submission.
// The Implementation tab is the default.
func NewResultsModel(response *backend.ApiResponse, width, height int) ResultsModel {
	vpHeight := height - 14
	if vpHeight < 5 {
		vpHeight = 5
	}
	vp := viewport.New(maxResultsWidth-8, vpHeight)

	m := ResultsModel{
		response:  response,
		activeTab: TabImplementation,
		viewport:  vp,
		width:     width,
		height:    height,
	}
	m.viewport.SetContent(m.tabContent(m.activeTab))
	return m
}

// Init returns the initial command for the results view.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results view.
func (m ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tui.FileDownloadedMsg:
		m.status = "Saved " + msg.Path
		m.statusErr = false
		return m, nil

	case tui.ResponseExportedMsg:
		m.status = "Exported " + msg.Path
		m.statusErr = false
		return m, nil

	case tui.ResultsErrorMsg:
		m.status = msg.Err.Error()
		m.statusErr = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ResultsModel) handleKey(msg tea.KeyMsg) (ResultsModel, tea.Cmd) {
	keys := tui.DefaultKeyMap

	switch {
	case key.Matches(msg, keys.Left):
		if m.activeTab > 0 {
			m.activeTab--
			m.viewport.SetContent(m.tabContent(m.activeTab))
			m.viewport.GotoTop()
		}
		return m, nil

	case key.Matches(msg, keys.Right):
		if m.activeTab < TabFiles {
			m.activeTab++
			m.viewport.SetContent(m.tabContent(m.activeTab))
			m.viewport.GotoTop()
		}
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.activeTab == TabFiles && m.fileCursor > 0 {
			m.fileCursor--
			return m, nil
		}

	case key.Matches(msg, keys.Down):
		if m.activeTab == TabFiles && m.fileCursor < len(m.response.GeneratedFiles())-1 {
			m.fileCursor++
			return m, nil
		}

	case key.Matches(msg, keys.Download):
		files := m.response.GeneratedFiles()
		if m.activeTab == TabFiles && m.fileCursor < len(files) {
			remote := files[m.fileCursor]
			return m, func() tea.Msg {
				return DownloadFileRequestMsg{RemotePath: remote}
			}
		}
		return m, nil

	case key.Matches(msg, keys.Export):
		return m, func() tea.Msg {
			return ExportResponseRequestMsg{}
		}

	case key.Matches(msg, keys.Escape):
		return m, func() tea.Msg {
			return tui.GoHomeMsg{}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// TabContentFor returns the rendered text for a tab; exported for tests.
func (m ResultsModel) TabContentFor(tab ResultTab) string {
	return m.tabContent(tab)
}

// tabContent returns the verbatim section text or its literal
// placeholder when the field is absent.
func (m ResultsModel) tabContent(tab ResultTab) string {
	switch tab {
	case TabAnalysis:
		if m.response.AnalysisResult != "" {
			return m.response.AnalysisResult
		}
	case TabDownload:
		if m.response.DownloadResult != "" {
			return m.response.DownloadResult
		}
	case TabImplementation:
		if m.response.ImplementationResult != "" {
			return m.response.ImplementationResult
		}
		if m.response.RepoResult != nil && m.response.RepoResult.Result != "" {
			return m.response.RepoResult.Result
		}
	case TabFiles:
		files := m.response.GeneratedFiles()
		if len(files) > 0 {
			var b strings.Builder
			for i, f := range files {
				cursor := "  "
				if i == m.fileCursor {
					cursor = tui.SelectedStyle.Render("❯ ")
				}
				b.WriteString(cursor + f + "\n")
			}
			return b.String()
		}
	}
	return resultPlaceholders[tab]
}

// View renders the results view.
func (m ResultsModel) View() string {
	if m.response.IsError() {
		return m.renderErrorView()
	}

	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Results"))
	b.WriteString("\n\n")

	// Tab bar
	var tabs []string
	for i, label := range resultTabLabels {
		if ResultTab(i) == m.activeTab {
			tabs = append(tabs, tui.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, tui.InactiveTabStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	// The Files tab re-renders on every cursor move.
	if m.activeTab == TabFiles {
		m.viewport.SetContent(m.tabContent(TabFiles))
	}
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(tui.ErrorStyle.Render(m.status))
		} else {
			b.WriteString(tui.SuccessStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := "←→: Tabs · x: Export · Esc: Home"
	if m.activeTab == TabFiles {
		footer = "↑↓: Select file · d: Download · " + footer
	}
	b.WriteString(tui.DimStyle.Render(footer))

	boxWidth := maxResultsWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}

	return tui.BoxStyle.
		Width(boxWidth).
		Render(b.String())
}

// renderErrorView is the dedicated failure screen, shared by
// engine-reported errors and normalized transport failures.
func (m ResultsModel) renderErrorView() string {
	var b strings.Builder

	b.WriteString(tui.StageFailed)
	b.WriteString(" ")
	b.WriteString(tui.ErrorStyle.Render("Processing failed"))
	b.WriteString("\n\n")
	b.WriteString(m.response.Error)
	b.WriteString("\n")

	if m.response.Traceback != "" {
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("Traceback:"))
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render(m.response.Traceback))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Esc: Home"))

	boxWidth := maxResultsWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}

	return tui.BoxStyle.
		Width(boxWidth).
		BorderForeground(lipgloss.Color("#EF4444")).
		Render(b.String())
}

// ActiveTab reports the currently selected tab; exported for tests.
func (m ResultsModel) ActiveTab() ResultTab {
	return m.activeTab
}

// SelectedFile returns the file the cursor is on, or "".
func (m ResultsModel) SelectedFile() string {
	files := m.response.GeneratedFiles()
	if m.fileCursor < len(files) {
		return files[m.fileCursor]
	}
	return ""
}
