// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/bridge"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// SubmitTextCmd sends a chat or URL task to the engine and blocks until
// the final response. Transport failures are normalized into the error
// response shape so the results screen has a single rendering path.
func SubmitTextCmd(client *backend.Client, inputType, source string, enableIndexing bool) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.ProcessText(context.Background(), backend.ProcessingRequest{
			InputSource:    source,
			InputType:      inputType,
			EnableIndexing: enableIndexing,
		})
		if err != nil {
			return tui.ResponseMsg{Response: backend.Normalize(err)}
		}
		return tui.ResponseMsg{Response: resp}
	}
}

// SubmitFileCmd sends a local document through the sidecar by path. No
// upload happens; the engine reads the file itself.
func SubmitFileCmd(sidecar *bridge.Sidecar, path string, enableIndexing bool) tea.Cmd {
	return func() tea.Msg {
		if sidecar == nil {
			return tui.ResponseMsg{Response: backend.Normalize(
				errors.New("no sidecar available for file input"))}
		}
		resp, err := sidecar.ProcessFile(path, enableIndexing)
		if err != nil {
			return tui.ResponseMsg{Response: backend.Normalize(err)}
		}
		return tui.ResponseMsg{Response: resp}
	}
}

// SubmitFileUploadCmd sends a local document through the legacy
// multipart endpoint, for engines running without a sidecar.
func SubmitFileUploadCmd(client *backend.Client, path string, enableIndexing bool) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.ProcessFileUpload(context.Background(), path, enableIndexing)
		if err != nil {
			return tui.ResponseMsg{Response: backend.Normalize(err)}
		}
		return tui.ResponseMsg{Response: resp}
	}
}
