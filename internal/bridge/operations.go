package bridge

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/deepcode-dev/deepcode/internal/backend"
)

// Sidecar operation names. These mirror the commands the desktop shell
// exposed, so the same engine process serves both front-ends.
const (
	methodProcessFile            = "process_file"
	methodGenerateQuestions      = "generate_questions"
	methodGenerateDetailedReqs   = "generate_detailed_requirements"
	methodEditRequirements       = "edit_requirements"
	methodGetProcessingHistory   = "get_processing_history"
	methodClearProcessingHistory = "clear_processing_history"
	methodGetSystemDiagnostics   = "get_system_diagnostics"
	methodResetApplicationState  = "reset_application_state"
	methodReadFileBinary         = "read_file_binary"
	methodWriteFile              = "write_file"
)

// ProcessFile asks the sidecar to process a local document by path.
func (s *Sidecar) ProcessFile(path string, enableIndexing bool) (*backend.ApiResponse, error) {
	params := map[string]any{
		"file_path":       path,
		"enable_indexing": enableIndexing,
	}

	var raw json.RawMessage
	if err := s.call(methodProcessFile, params, &raw); err != nil {
		return nil, err
	}
	return backend.ParseResponse(raw)
}

// GenerateQuestions produces clarifying questions for an initial
// free-text requirement.
func (s *Sidecar) GenerateQuestions(requirement string) ([]backend.Question, error) {
	params := map[string]any{"initial_requirement": requirement}

	var result struct {
		Questions []backend.Question `json:"questions"`
	}
	if err := s.call(methodGenerateQuestions, params, &result); err != nil {
		return nil, err
	}
	return result.Questions, nil
}

// GenerateDetailedRequirements synthesizes a requirements document from
// the initial requirement plus a sparse answer map. Unanswered questions
// are simply absent from answers.
func (s *Sidecar) GenerateDetailedRequirements(requirement string, answers map[int]string) (string, error) {
	params := map[string]any{
		"initial_requirement": requirement,
		"answers":             answers,
	}

	var result struct {
		DetailedRequirements string `json:"detailed_requirements"`
	}
	if err := s.call(methodGenerateDetailedReqs, params, &result); err != nil {
		return "", err
	}
	return result.DetailedRequirements, nil
}

// EditRequirements applies user feedback to the current requirements
// document and returns the revised text.
func (s *Sidecar) EditRequirements(current, feedback string) (string, error) {
	params := map[string]any{
		"current_requirements": current,
		"feedback":             feedback,
	}

	var result struct {
		DetailedRequirements string `json:"detailed_requirements"`
	}
	if err := s.call(methodEditRequirements, params, &result); err != nil {
		return "", err
	}
	return result.DetailedRequirements, nil
}

// History returns the engine-maintained processing history, newest first.
func (s *Sidecar) History() ([]backend.ProcessingHistoryEntry, error) {
	var result struct {
		History []backend.ProcessingHistoryEntry `json:"history"`
	}
	if err := s.call(methodGetProcessingHistory, nil, &result); err != nil {
		return nil, err
	}
	return result.History, nil
}

// ClearHistory deletes all processing history on the engine side.
func (s *Sidecar) ClearHistory() error {
	return s.call(methodClearProcessingHistory, nil, nil)
}

// Diagnostics returns a snapshot of the engine's runtime state.
func (s *Sidecar) Diagnostics() (*backend.SystemDiagnostics, error) {
	var diag backend.SystemDiagnostics
	if err := s.call(methodGetSystemDiagnostics, nil, &diag); err != nil {
		return nil, err
	}
	return &diag, nil
}

// ResetApplicationState asks the engine to drop all transient state.
func (s *Sidecar) ResetApplicationState() error {
	return s.call(methodResetApplicationState, nil, nil)
}

// ReadFileBinary fetches a generated file's bytes from the engine. The
// payload crosses the wire base64-encoded.
func (s *Sidecar) ReadFileBinary(path string) ([]byte, error) {
	params := map[string]any{"file_path": path}

	var result struct {
		Data string `json:"data"`
	}
	if err := s.call(methodReadFileBinary, params, &result); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(result.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s contents: %w", path, err)
	}
	return data, nil
}

// WriteFile asks the sidecar to write bytes to a path chosen by the user.
func (s *Sidecar) WriteFile(path string, data []byte) error {
	params := map[string]any{
		"file_path": path,
		"data":      base64.StdEncoding.EncodeToString(data),
	}
	return s.call(methodWriteFile, params, nil)
}
