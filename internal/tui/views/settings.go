// Package views provides TUI view components for the DeepCode client.
package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepcode-dev/deepcode/internal/settings"
	"github.com/deepcode-dev/deepcode/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// SaveSettingsRequestMsg asks for both documents to be written back in
// full, preserved keys included.
type SaveSettingsRequestMsg struct {
	Config  *settings.Document
	Secrets *settings.Document
}

// ReloadSettingsRequestMsg asks for a fresh load of both documents,
// discarding unsaved edits.
type ReloadSettingsRequestMsg struct{}

// ============================================================================
// SettingsModel
// ============================================================================

// settingsField identifies one editable row in the panel.
type settingsField int

const (
	fieldDefaultModel settingsField = iota
	fieldSearchServer
	fieldSegEnabled
	fieldSegThreshold
	fieldProviderFirst // provider rows follow, two per provider
)

// maxSettingsWidth is the maximum width for the settings box.
const maxSettingsWidth = 80

// SettingsModel is the view model for the settings panel. It edits a
// recognized subset of both configuration documents and writes the full
// documents back on save.
type SettingsModel struct {
	config  *settings.Document
	secrets *settings.Document

	cfg  settings.ConfigFields
	secs settings.SecretsFields

	cursor  int
	editing bool
	input   textinput.Model
	status  string
	isErr   bool
	loaded  bool
	width   int
	height  int
}

// NewSettingsModel creates an empty SettingsModel; documents arrive via
// SettingsLoadedMsg.
func NewSettingsModel(width, height int) SettingsModel {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = maxSettingsWidth - 30

	return SettingsModel{
		input:  ti,
		width:  width,
		height: height,
	}
}

// fieldCount is the total number of editable rows.
func (m SettingsModel) fieldCount() int {
	return int(fieldProviderFirst) + len(settings.ProviderNames)*2
}

// providerRow maps a cursor position past the general fields to the
// provider name and whether the row is the key (vs the base URL).
func (m SettingsModel) providerRow(cursor int) (name string, isKey bool) {
	idx := cursor - int(fieldProviderFirst)
	return settings.ProviderNames[idx/2], idx%2 == 0
}

// Init returns the initial command for the settings view.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings view.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.SettingsLoadedMsg:
		m.config = msg.Config
		m.secrets = msg.Secrets
		m.cfg = msg.Config.Config()
		m.secs = msg.Secrets.Secrets()
		m.loaded = true
		m.editing = false
		m.status = ""
		m.isErr = false
		return m, nil

	case tui.SettingsSavedMsg:
		m.status = "Settings saved"
		m.isErr = false
		return m, nil

	case tui.SettingsErrorMsg:
		m.status = msg.Err.Error()
		m.isErr = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (SettingsModel, tea.Cmd) {
	keys := tui.DefaultKeyMap

	if m.editing {
		switch {
		case key.Matches(msg, keys.Enter):
			m.commitEdit()
			m.editing = false
			return m, nil
		case key.Matches(msg, keys.Escape):
			m.editing = false
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if !m.loaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < m.fieldCount()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		return m.beginEdit()

	case key.Matches(msg, keys.Save):
		m.config.ApplyConfig(m.cfg)
		m.secrets.ApplySecrets(m.secs)
		cfg, secs := m.config, m.secrets
		return m, func() tea.Msg {
			return SaveSettingsRequestMsg{Config: cfg, Secrets: secs}
		}

	case key.Matches(msg, keys.Reload):
		return m, func() tea.Msg {
			return ReloadSettingsRequestMsg{}
		}
	}
	return m, nil
}

// beginEdit opens the inline editor for the selected row. Toggle rows
// flip in place instead.
func (m SettingsModel) beginEdit() (SettingsModel, tea.Cmd) {
	switch settingsField(m.cursor) {
	case fieldSearchServer:
		if m.cfg.SearchServer == settings.SearchBocha {
			m.cfg.SearchServer = settings.SearchBrave
		} else {
			m.cfg.SearchServer = settings.SearchBocha
		}
		return m, nil
	case fieldSegEnabled:
		m.cfg.SegmentationEnabled = !m.cfg.SegmentationEnabled
		return m, nil
	}

	m.input.SetValue(m.currentValue())
	m.input.CursorEnd()
	m.input.Focus()
	m.editing = true
	return m, textinput.Blink
}

// currentValue returns the raw text behind the selected row.
func (m SettingsModel) currentValue() string {
	switch settingsField(m.cursor) {
	case fieldDefaultModel:
		return m.cfg.DefaultModel
	case fieldSegThreshold:
		return strconv.Itoa(m.cfg.SegmentationThreshold)
	}
	name, isKey := m.providerRow(m.cursor)
	p := m.secs.Providers[name]
	if isKey {
		return p.APIKey
	}
	return p.BaseURL
}

// commitEdit writes the editor text back into the staged fields. Nothing
// touches the documents until save.
func (m *SettingsModel) commitEdit() {
	value := strings.TrimSpace(m.input.Value())

	switch settingsField(m.cursor) {
	case fieldDefaultModel:
		m.cfg.DefaultModel = value
		return
	case fieldSegThreshold:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			m.status = "Threshold must be a non-negative number"
			m.isErr = true
			return
		}
		m.cfg.SegmentationThreshold = n
		return
	}

	name, isKey := m.providerRow(m.cursor)
	p := m.secs.Providers[name]
	if isKey {
		p.APIKey = value
	} else {
		p.BaseURL = value
	}
	m.secs.Providers[name] = p
}

// maskKey hides all but the tail of a credential.
func maskKey(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return "••••"
	}
	return "••••" + s[len(s)-4:]
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Settings"))
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString(tui.DimStyle.Render("Loading configuration..."))
		return tui.BoxStyle.Width(m.boxWidth()).Render(b.String())
	}

	rows := []struct {
		label string
		value string
	}{
		{"Default model", m.cfg.DefaultModel},
		{"Search server", m.cfg.SearchServer},
		{"Document segmentation", onOff(m.cfg.SegmentationEnabled)},
		{"Segmentation threshold", strconv.Itoa(m.cfg.SegmentationThreshold) + " chars"},
	}
	for _, name := range settings.ProviderNames {
		p := m.secs.Providers[name]
		rows = append(rows,
			struct{ label, value string }{name + " API key", maskKey(p.APIKey)},
			struct{ label, value string }{name + " base URL", p.BaseURL},
		)
	}

	for i, row := range rows {
		cursor := "  "
		label := row.label
		value := row.value
		if i == m.cursor {
			cursor = tui.SelectedStyle.Render("❯ ")
			label = tui.SelectedStyle.Render(label)
			if m.editing {
				value = m.input.View()
			}
		}
		b.WriteString(cursor + padLabel(label, row.label) + " " + value + "\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.isErr {
			b.WriteString(tui.ErrorStyle.Render(m.status))
		} else {
			b.WriteString(tui.SuccessStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(tui.DimStyle.Render("Enter: Apply · Esc: Cancel"))
	} else {
		b.WriteString(tui.DimStyle.Render("↑↓: Navigate · Enter: Edit · s: Save · r: Reload · Tab: Next panel"))
	}

	return tui.BoxStyle.Width(m.boxWidth()).Render(b.String())
}

func (m SettingsModel) boxWidth() int {
	if m.width-4 < maxSettingsWidth {
		return m.width - 4
	}
	return maxSettingsWidth
}

// padLabel pads using the unstyled label so ANSI codes don't skew
// alignment.
func padLabel(styled, raw string) string {
	const col = 26
	if len(raw) >= col {
		return styled
	}
	return styled + strings.Repeat(" ", col-len(raw))
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

// Editing reports whether the inline editor is open. The router leaves
// panel cycling alone while a field is being edited.
func (m SettingsModel) Editing() bool {
	return m.editing
}

// Loaded reports whether documents have arrived; exported for tests.
func (m SettingsModel) Loaded() bool {
	return m.loaded
}

// ConfigFields returns the staged general-config edits; exported for
// tests.
func (m SettingsModel) ConfigFields() settings.ConfigFields {
	return m.cfg
}
