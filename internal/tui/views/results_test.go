package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/testutil"
)

func TestResultsDefaultTabIsImplementation(t *testing.T) {
	m := NewResultsModel(testutil.SuccessResponse(), 100, 40)
	if m.ActiveTab() != TabImplementation {
		t.Errorf("default tab: got %v, want Implementation", m.ActiveTab())
	}
}

func TestResultsPlaceholdersForAbsentSections(t *testing.T) {
	m := NewResultsModel(&backend.ApiResponse{Status: backend.StatusSuccess}, 100, 40)

	cases := []struct {
		tab  ResultTab
		want string
	}{
		{TabAnalysis, "No analysis results available."},
		{TabDownload, "No download results available."},
		{TabImplementation, "No implementation results available."},
		{TabFiles, "No generated files available."},
	}
	for _, tc := range cases {
		if got := m.TabContentFor(tc.tab); got != tc.want {
			t.Errorf("tab %v: got %q, want %q", tc.tab, got, tc.want)
		}
	}
}

func TestResultsImplementationFallsBackToRepoResult(t *testing.T) {
	resp := &backend.ApiResponse{
		Status:     backend.StatusSuccess,
		RepoResult: &backend.RepoResult{Result: "Repository written"},
	}
	m := NewResultsModel(resp, 100, 40)
	if got := m.TabContentFor(TabImplementation); got != "Repository written" {
		t.Errorf("implementation fallback: got %q", got)
	}
}

func TestResultsFileCursorAndDownload(t *testing.T) {
	m := NewResultsModel(testutil.SuccessResponse(), 100, 40)

	// Move to the Files tab (Implementation -> Files is one step right).
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.ActiveTab() != TabFiles {
		t.Fatalf("tab after right: got %v, want Files", m.ActiveTab())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.SelectedFile() != "output/retrieval-pipeline/README.md" {
		t.Errorf("selected file: got %q", m.SelectedFile())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd == nil {
		t.Fatal("download produced no command")
	}
	msg, ok := cmd().(DownloadFileRequestMsg)
	if !ok {
		t.Fatalf("command msg: got %T, want DownloadFileRequestMsg", cmd())
	}
	if msg.RemotePath != "output/retrieval-pipeline/README.md" {
		t.Errorf("remote path: got %q", msg.RemotePath)
	}
}

func TestResultsErrorViewShowsTraceback(t *testing.T) {
	m := NewResultsModel(testutil.ErrorResponse(), 100, 40)

	view := m.View()
	if !strings.Contains(view, "document parsing failed: unsupported format") {
		t.Error("error text not rendered")
	}
	if !strings.Contains(view, "ValueError: unsupported format") {
		t.Error("traceback not rendered")
	}
}

func TestResultsExportAvailableOnEveryTab(t *testing.T) {
	m := NewResultsModel(testutil.SuccessResponse(), 100, 40)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd == nil {
		t.Fatal("export produced no command")
	}
	if _, ok := cmd().(ExportResponseRequestMsg); !ok {
		t.Errorf("command msg: got %T, want ExportResponseRequestMsg", cmd())
	}
}
