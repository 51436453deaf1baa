// history.go implements the "deepcode history" command listing and
// clearing the engine-side processing history.
package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/log"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the engine's processing history",
	RunE:  runHistory,
}

var clearHistoryFlag bool

func init() {
	historyCmd.Flags().BoolVar(&clearHistoryFlag, "clear", false, "Clear all history instead of listing")
}

func runHistory(cmd *cobra.Command, args []string) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer closeSidecar(deps)

	if deps.Sidecar == nil {
		return fmt.Errorf("history needs a sidecar (set %s)", envSidecar)
	}

	if clearHistoryFlag {
		if err := deps.Sidecar.ClearHistory(); err != nil {
			return err
		}
		_ = deps.Logger.Append(log.LogEvent{Event: log.EventHistoryCleared})
		fmt.Println("History cleared.")
		return nil
	}

	entries, err := deps.Sidecar.History()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No processing history.")
		return nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	for _, e := range entries {
		mark := "ok "
		if e.Status == backend.StatusError {
			mark = "ERR"
		}
		fmt.Printf("%s  %s  %-4s  %s\n",
			mark, e.Timestamp.Local().Format("2006-01-02 15:04"), e.InputType, e.InputSource)
		if e.Error != "" {
			fmt.Printf("     %s\n", e.Error)
		}
	}
	return nil
}
