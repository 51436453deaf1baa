// Package testutil provides test helper utilities for deepcode tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deepcode-dev/deepcode/internal/backend"
)

// TempProject creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// SuccessResponse returns a fully populated successful engine response.
func SuccessResponse() *backend.ApiResponse {
	return &backend.ApiResponse{
		Status:               backend.StatusSuccess,
		AnalysisResult:       "The paper describes a two-stage retrieval pipeline.",
		DownloadResult:       "Fetched 1 document (14 pages).",
		ImplementationResult: "Generated a Python package implementing the pipeline.",
		RepoResult: &backend.RepoResult{
			Result:         "Repository written to output/retrieval-pipeline",
			GeneratedFiles: []string{"output/retrieval-pipeline/main.py", "output/retrieval-pipeline/README.md"},
		},
	}
}

// ErrorResponse returns an engine-side failure with a traceback.
func ErrorResponse() *backend.ApiResponse {
	return &backend.ApiResponse{
		Status:    backend.StatusError,
		Error:     "document parsing failed: unsupported format",
		Traceback: "Traceback (most recent call last):\n  ...\nValueError: unsupported format",
	}
}

// HistoryEntries returns two history rows, oldest first, so tests can
// verify the newest-first ordering applied on load.
func HistoryEntries() []backend.ProcessingHistoryEntry {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return []backend.ProcessingHistoryEntry{
		{
			ID:          "a1",
			Timestamp:   base,
			Status:      backend.StatusSuccess,
			InputType:   backend.InputURL,
			InputSource: "https://arxiv.org/abs/2401.00001",
			Result:      "ok",
		},
		{
			ID:          "b2",
			Timestamp:   base.Add(2 * time.Hour),
			Status:      backend.StatusError,
			InputType:   backend.InputChat,
			InputSource: "build me a cache",
			Error:       "engine busy",
		},
	}
}

// ConfigYAML is a config document carrying keys the client does not
// recognize, for round-trip preservation tests.
const ConfigYAML = `default_model: claude-sonnet-4
search_server: brave
document_segmentation:
  enabled: true
  size_threshold_chars: 50000
execution:
  max_iterations: 25
logger:
  level: info
`

// SecretsYAML is a secrets document with one provider configured and an
// unrecognized block that must survive edits.
const SecretsYAML = `openai:
  api_key: sk-test-0001
  base_url: https://api.openai.com/v1
internal:
  signing_key: keep-me
`
