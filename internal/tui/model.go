// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"time"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/bridge"
	"github.com/deepcode-dev/deepcode/internal/log"
	"github.com/deepcode-dev/deepcode/internal/progress"
)

// ViewState represents the current state of the TUI.
type ViewState int

const (
	StateHome ViewState = iota
	StateWizard
	StateProcessing
	StateResults
	StateSettings
	StateHistory
	StateDiagnostics
)

// Tab represents the active side panel tab.
type Tab int

const (
	TabHome Tab = iota
	TabSettings
	TabHistory
	TabDiagnostics
)

// InputKind is the selected input type on the home screen.
type InputKind int

const (
	InputKindChat InputKind = iota
	InputKindURL
	InputKindFile
)

// String returns the engine's wire name for the input kind.
func (k InputKind) String() string {
	switch k {
	case InputKindURL:
		return backend.InputURL
	case InputKindFile:
		return backend.InputFile
	default:
		return backend.InputChat
	}
}

// Model is the main TUI model that holds all application state.
type Model struct {
	// State management
	State     ViewState
	ActiveTab Tab

	// Engine connections
	Backend *backend.Client
	Sidecar *bridge.Sidecar
	Files   *bridge.FileStore
	Logger  *log.Logger
	WSURL   string

	// Active processing session
	Processing     bool
	SessionID      string
	SessionStarted time.Time
	Listener       *progress.Listener
	Response       *backend.ApiResponse

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool // True when waiting for second Ctrl+C press
}

// Deps bundles the engine connections handed to the TUI at startup.
type Deps struct {
	Backend *backend.Client
	Sidecar *bridge.Sidecar
	Files   *bridge.FileStore
	Logger  *log.Logger
	WSURL   string
}

// NewModel creates a new Model with the given dependencies.
func NewModel(deps Deps) *Model {
	return &Model{
		State:     StateHome,
		ActiveTab: TabHome,

		Backend: deps.Backend,
		Sidecar: deps.Sidecar,
		Files:   deps.Files,
		Logger:  deps.Logger,
		WSURL:   deps.WSURL,

		// Default dimensions (will be updated on WindowSizeMsg)
		Width:  80,
		Height: 24,
	}
}
