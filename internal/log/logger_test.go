package log

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppendAndReadAll(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events := []LogEvent{
		{Event: EventSubmissionStarted, SessionID: "s1", InputType: "chat"},
		{Event: EventSubmissionComplete, SessionID: "s1", Status: "success", DurationMs: 1200},
	}
	for _, ev := range events {
		if err := logger.Append(ev); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("events: got %d, want 2", len(got))
	}
	if got[0].Event != EventSubmissionStarted || got[1].DurationMs != 1200 {
		t.Errorf("events round-tripped wrong: %+v", got)
	}
	if got[0].Time.IsZero() {
		t.Error("Append did not stamp the event time")
	}

	// Log lives under the .deepcode state directory.
	if _, err := os.Stat(filepath.Join(dir, ".deepcode", "log.jsonl")); err != nil {
		t.Errorf("log file missing: %v", err)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events: got %d, want 0", len(events))
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var logger *Logger
	if err := logger.Append(LogEvent{Event: EventStateReset}); err != nil {
		t.Errorf("nil logger Append: %v", err)
	}
}
