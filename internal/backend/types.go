// Package backend provides the HTTP client and wire types for the
// DeepCode processing engine. The engine does all document parsing,
// planning and code generation; this package only shapes requests and
// decodes responses.
package backend

import "time"

// Input type constants accepted by the engine.
const (
	InputChat = "chat"
	InputURL  = "url"
	InputFile = "file"
)

// Response status constants.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ProcessingRequest is the JSON body for POST /process/text. It carries
// exactly the three fields the engine documents; nothing else is sent.
type ProcessingRequest struct {
	InputSource    string `json:"input_source"`
	InputType      string `json:"input_type"` // "chat" or "url"
	EnableIndexing bool   `json:"enable_indexing"`
}

// RepoResult describes a generated code repository.
type RepoResult struct {
	Result         string   `json:"result,omitempty"`
	GeneratedFiles []string `json:"generated_files,omitempty"`
}

// ApiResponse is the engine's answer to any processing call. status=error
// implies Error is set; status=success implies any subset of the result
// fields may be populated, including none.
type ApiResponse struct {
	Status               string      `json:"status"`
	AnalysisResult       string      `json:"analysis_result,omitempty"`
	DownloadResult       string      `json:"download_result,omitempty"`
	ImplementationResult string      `json:"implementation_result,omitempty"`
	RepoResult           *RepoResult `json:"repo_result,omitempty"`
	Error                string      `json:"error,omitempty"`
	Traceback            string      `json:"traceback,omitempty"`
}

// IsError reports whether the response carries an engine-side failure.
func (r *ApiResponse) IsError() bool {
	return r != nil && r.Status == StatusError
}

// GeneratedFiles returns the file list from the repo result, or nil.
func (r *ApiResponse) GeneratedFiles() []string {
	if r == nil || r.RepoResult == nil {
		return nil
	}
	return r.RepoResult.GeneratedFiles
}

// Question is a single clarifying question produced by the engine during
// the guided wizard flow. Immutable once received.
type Question struct {
	Question   string `json:"question"`
	Category   string `json:"category,omitempty"`
	Importance string `json:"importance,omitempty"` // "High", "Medium", "Low"
	Hint       string `json:"hint,omitempty"`
}

// ProcessingHistoryEntry is one row of the engine-maintained processing
// history. The client lists and clears entries but never writes them.
type ProcessingHistoryEntry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	InputType   string    `json:"input_type"`
	InputSource string    `json:"input_source,omitempty"`
	Result      string    `json:"result,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// SystemDiagnostics is a read-only snapshot of the engine's runtime state.
type SystemDiagnostics struct {
	Platform         map[string]string `json:"platform"`
	Modules          map[string]bool   `json:"modules"`
	EventLoopRunning bool              `json:"event_loop_running"`
}
