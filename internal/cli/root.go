// Package cli defines Cobra command definitions for the deepcode CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/bridge"
	"github.com/deepcode-dev/deepcode/internal/log"
	"github.com/deepcode-dev/deepcode/internal/tui"
	"github.com/deepcode-dev/deepcode/internal/tui/app"
)

// Environment overrides for the engine endpoints.
const (
	envBackendURL = "DEEPCODE_BACKEND_URL"
	envWSURL      = "DEEPCODE_WS_URL"
	envSidecar    = "DEEPCODE_SIDECAR"
)

var version = "dev" // set via ldflags at build time

var rootCmd = &cobra.Command{
	Use:   "deepcode",
	Short: "Terminal front-end for the DeepCode document-to-code engine",
	Long: `DeepCode turns research papers, URLs and free-text descriptions into
working code repositories. This client submits tasks to a locally
running DeepCode engine, streams pipeline progress, and manages the
engine's configuration, history and diagnostics.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// No subcommand: launch the TUI on a terminal, show help otherwise.
		if !tui.IsTTY() {
			return cmd.Help()
		}

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer closeSidecar(deps)

		return tui.Run(app.New(deps))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildDeps assembles the engine connections every command shares. The
// sidecar is optional: without it, file input and the engine-side panels
// are degraded but chat/url submissions still work.
func buildDeps() (tui.Deps, error) {
	files, err := bridge.NewFileStore("")
	if err != nil {
		return tui.Deps{}, err
	}

	logger, err := log.NewLogger(files.Root())
	if err != nil {
		return tui.Deps{}, err
	}

	var sidecar *bridge.Sidecar
	if spec := os.Getenv(envSidecar); spec != "" {
		parts := strings.Fields(spec)
		sidecar, err = bridge.Spawn(parts[0], parts[1:]...)
		if err != nil {
			return tui.Deps{}, fmt.Errorf("starting sidecar %q: %w", spec, err)
		}
	}

	return tui.Deps{
		Backend: backend.New(os.Getenv(envBackendURL)),
		Sidecar: sidecar,
		Files:   files,
		Logger:  logger,
		WSURL:   os.Getenv(envWSURL),
	}, nil
}

func closeSidecar(deps tui.Deps) {
	if deps.Sidecar != nil {
		_ = deps.Sidecar.Close()
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
}
