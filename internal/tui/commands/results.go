// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/bridge"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// DownloadFileCmd fetches one generated file from the engine and saves
// it under downloads/ in the store root, keeping the base name.
func DownloadFileCmd(sidecar *bridge.Sidecar, files *bridge.FileStore, remotePath string) tea.Cmd {
	return func() tea.Msg {
		if sidecar == nil {
			return tui.ResultsErrorMsg{Err: errors.New("file download needs the engine sidecar")}
		}
		data, err := sidecar.ReadFileBinary(remotePath)
		if err != nil {
			return tui.ResultsErrorMsg{Err: err}
		}

		local := filepath.Join("downloads", filepath.Base(remotePath))
		if err := files.SaveLocal(local, data); err != nil {
			return tui.ResultsErrorMsg{Err: err}
		}
		return tui.FileDownloadedMsg{Path: local}
	}
}

// ExportResponseCmd serializes the whole response to a timestamped JSON
// file in the store root.
func ExportResponseCmd(files *bridge.FileStore, response *backend.ApiResponse) tea.Cmd {
	return func() tea.Msg {
		data, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return tui.ResultsErrorMsg{Err: err}
		}

		name := fmt.Sprintf("deepcode-result-%s.json", time.Now().Format("20060102-150405"))
		if err := files.SaveLocal(name, data); err != nil {
			return tui.ResultsErrorMsg{Err: err}
		}
		return tui.ResponseExportedMsg{Path: name}
	}
}
