// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/bridge"
	"github.com/deepcode-dev/deepcode/internal/settings"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// LoadSettingsCmd reads and parses both configuration documents. A
// missing file parses as empty rather than failing, so a fresh install
// still gets an editable panel.
func LoadSettingsCmd(files *bridge.FileStore) tea.Cmd {
	return func() tea.Msg {
		configText, err := files.ReadConfig()
		if err != nil {
			configText = ""
		}
		secretsText, err := files.ReadSecrets()
		if err != nil {
			secretsText = ""
		}

		config, err := settings.Parse(configText)
		if err != nil {
			return tui.SettingsErrorMsg{Err: err}
		}
		secrets, err := settings.Parse(secretsText)
		if err != nil {
			return tui.SettingsErrorMsg{Err: err}
		}
		return tui.SettingsLoadedMsg{Config: config, Secrets: secrets}
	}
}

// SaveSettingsCmd writes both documents back in full. Unknown keys
// survive because the documents round-trip through a preserved map.
func SaveSettingsCmd(files *bridge.FileStore, config, secrets *settings.Document) tea.Cmd {
	return func() tea.Msg {
		configText, err := config.Marshal()
		if err != nil {
			return tui.SettingsErrorMsg{Err: err}
		}
		secretsText, err := secrets.Marshal()
		if err != nil {
			return tui.SettingsErrorMsg{Err: err}
		}

		if err := files.WriteConfig(configText); err != nil {
			return tui.SettingsErrorMsg{Err: err}
		}
		if err := files.WriteSecrets(secretsText); err != nil {
			return tui.SettingsErrorMsg{Err: err}
		}
		return tui.SettingsSavedMsg{}
	}
}
