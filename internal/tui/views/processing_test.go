package views

import (
	"strings"
	"testing"

	"github.com/deepcode-dev/deepcode/internal/progress"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

func TestProcessingAdvancesWithProgressEvents(t *testing.T) {
	m := NewProcessingModel(80, 30)
	m, _ = m.Update(tui.ProgressConnectedMsg{})

	m, _ = m.Update(tui.ProgressEventMsg{Event: progress.Event{Progress: 50, Message: "Generating code"}})

	view := m.View()
	if !strings.Contains(view, "Generating code") {
		t.Error("last message not rendered")
	}
	// 50% is band 4: the first four stages are complete.
	if strings.Count(view, tui.StageDone) != 4 {
		t.Errorf("done markers: got %d, want 4", strings.Count(view, tui.StageDone))
	}
}

func TestProcessingLastMessageWins(t *testing.T) {
	m := NewProcessingModel(80, 30)
	m, _ = m.Update(tui.ProgressConnectedMsg{})
	m, _ = m.Update(tui.ProgressEventMsg{Event: progress.Event{Progress: 20, Message: "first"}})
	m, _ = m.Update(tui.ProgressEventMsg{Event: progress.Event{Progress: 30, Message: "second"}})

	view := m.View()
	if strings.Contains(view, "first") {
		t.Error("stale message still rendered")
	}
	if !strings.Contains(view, "second") {
		t.Error("latest message not rendered")
	}
}

func TestProcessingChannelDownNotice(t *testing.T) {
	m := NewProcessingModel(80, 30)
	m, _ = m.Update(tui.ProgressConnectedMsg{})
	m, _ = m.Update(tui.ProgressClosedMsg{})

	if !strings.Contains(m.View(), "Progress channel closed") {
		t.Error("channel-down notice not rendered")
	}
}

func TestProcessingWithoutChannel(t *testing.T) {
	m := NewProcessingModel(80, 30)
	if !strings.Contains(m.View(), "no live progress") {
		t.Error("missing-channel status not rendered")
	}
}
