// reset.go implements the "deepcode reset" command asking the engine to
// drop its transient application state.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepcode-dev/deepcode/internal/log"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the engine's application state",
	RunE:  runReset,
}

var forceResetFlag bool

func init() {
	resetCmd.Flags().BoolVarP(&forceResetFlag, "force", "f", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer closeSidecar(deps)

	if deps.Sidecar == nil {
		return fmt.Errorf("reset needs a sidecar (set %s)", envSidecar)
	}

	if !forceResetFlag {
		fmt.Print("Reset the engine's application state? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := deps.Sidecar.ResetApplicationState(); err != nil {
		return err
	}
	_ = deps.Logger.Append(log.LogEvent{Event: log.EventStateReset})
	fmt.Println("Application state reset.")
	return nil
}
