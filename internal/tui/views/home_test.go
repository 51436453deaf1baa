package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/tui"
)

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func typeText(m HomeModel, text string) HomeModel {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestHomeEmptySubmitShowsWarningWithoutMsg(t *testing.T) {
	m := NewHomeModel(80, 24)

	m, cmd := m.Update(enterKey())
	if cmd != nil {
		t.Fatal("empty submit produced a command; no outbound call may happen")
	}
	if !strings.Contains(m.View(), "Please provide an input before submitting.") {
		t.Error("warning not rendered")
	}
}

func TestHomeSubmitCarriesKindAndIndexing(t *testing.T) {
	m := NewHomeModel(80, 24)
	m = typeText(m, "https://arxiv.org/abs/2401.00001")

	// Cycle chat -> url, toggle indexing off.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})

	m, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("submit produced no command")
	}

	msg, ok := cmd().(SubmitInputMsg)
	if !ok {
		t.Fatalf("command msg: got %T, want SubmitInputMsg", cmd())
	}
	if msg.Kind != tui.InputKindURL {
		t.Errorf("kind: got %v, want url", msg.Kind)
	}
	if msg.Source != "https://arxiv.org/abs/2401.00001" {
		t.Errorf("source: got %q", msg.Source)
	}
	if msg.EnableIndexing {
		t.Error("indexing: got true, want false after toggle")
	}
}

func TestHomeBusyBlocksResubmit(t *testing.T) {
	m := NewHomeModel(80, 24)
	m = typeText(m, "build a key-value store")
	m.SetBusy(true)

	_, cmd := m.Update(enterKey())
	if cmd != nil {
		t.Error("busy submit produced a command; requests must not overlap")
	}
}

func TestHomeWizardShortcut(t *testing.T) {
	m := NewHomeModel(80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	if cmd == nil {
		t.Fatal("ctrl+w produced no command")
	}
	if _, ok := cmd().(StartWizardMsg); !ok {
		t.Errorf("command msg: got %T, want StartWizardMsg", cmd())
	}
}
