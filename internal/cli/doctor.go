// doctor.go implements the "deepcode doctor" command: a health check of
// the engine endpoints plus the diagnostics snapshot.
package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check engine connectivity and runtime state",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer closeSidecar(deps)

	fmt.Printf("Engine:  %s\n", deps.Backend.BaseURL())
	if err := deps.Backend.Health(context.Background()); err != nil {
		fmt.Printf("         unreachable: %v\n", err)
	} else {
		fmt.Println("         ok")
	}

	if deps.Sidecar == nil {
		fmt.Printf("Sidecar: not configured (set %s)\n", envSidecar)
		return nil
	}

	diag, err := deps.Sidecar.Diagnostics()
	if err != nil {
		fmt.Printf("Sidecar: error: %v\n", err)
		return nil
	}
	fmt.Println("Sidecar: ok")

	keys := make([]string, 0, len(diag.Platform))
	for k := range diag.Platform {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-20s %s\n", k, diag.Platform[k])
	}

	mods := make([]string, 0, len(diag.Modules))
	for k := range diag.Modules {
		mods = append(mods, k)
	}
	sort.Strings(mods)
	for _, k := range mods {
		state := "unavailable"
		if diag.Modules[k] {
			state = "loaded"
		}
		fmt.Printf("  %-20s %s\n", k, state)
	}

	loop := "stopped"
	if diag.EventLoopRunning {
		loop = "running"
	}
	fmt.Printf("  %-20s %s\n", "event loop", loop)
	return nil
}
