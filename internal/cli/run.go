// run.go implements the "deepcode run" command: a non-interactive
// submission that prints the final result to stdout.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepcode-dev/deepcode/internal/backend"
	"github.com/deepcode-dev/deepcode/internal/log"
)

var runCmd = &cobra.Command{
	Use:   "run <input>",
	Short: "Submit one input and wait for the result",
	Long: `Submit a chat description, URL or local file path to the engine and
block until processing finishes. The input type is detected from the
argument unless --type overrides it.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var (
	typeFlag     string
	noIndexFlag  bool
	jsonFlag     bool
	legacyUpload bool
)

func init() {
	runCmd.Flags().StringVar(&typeFlag, "type", "", "Input type: chat, url or file (default: detected)")
	runCmd.Flags().BoolVar(&noIndexFlag, "no-indexing", false, "Disable repository indexing for this run")
	runCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the raw response as JSON")
	runCmd.Flags().BoolVar(&legacyUpload, "legacy-upload", false, "Upload files over HTTP instead of the sidecar")
}

func runRun(cmd *cobra.Command, args []string) error {
	source := strings.TrimSpace(args[0])
	if source == "" {
		return fmt.Errorf("input must not be empty")
	}

	inputType := typeFlag
	if inputType == "" {
		inputType = detectInputType(source)
	}
	switch inputType {
	case backend.InputChat, backend.InputURL, backend.InputFile:
	default:
		return fmt.Errorf("unknown input type %q (want chat, url or file)", inputType)
	}

	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer closeSidecar(deps)

	_ = deps.Logger.Append(log.LogEvent{
		Event:       log.EventSubmissionStarted,
		InputType:   inputType,
		InputSource: source,
	})

	var resp *backend.ApiResponse
	switch {
	case inputType == backend.InputFile && legacyUpload:
		resp, err = deps.Backend.ProcessFileUpload(context.Background(), source, !noIndexFlag)
	case inputType == backend.InputFile:
		if deps.Sidecar == nil {
			return fmt.Errorf("file input needs a sidecar (set %s) or --legacy-upload", envSidecar)
		}
		resp, err = deps.Sidecar.ProcessFile(source, !noIndexFlag)
	default:
		resp, err = deps.Backend.ProcessText(context.Background(), backend.ProcessingRequest{
			InputSource:    source,
			InputType:      inputType,
			EnableIndexing: !noIndexFlag,
		})
	}
	if err != nil {
		resp = backend.Normalize(err)
	}

	event := log.EventSubmissionComplete
	if resp.IsError() {
		event = log.EventSubmissionFailed
	}
	_ = deps.Logger.Append(log.LogEvent{
		Event:     event,
		InputType: inputType,
		Status:    resp.Status,
		Error:     resp.Error,
	})

	if jsonFlag {
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		if resp.IsError() {
			os.Exit(1)
		}
		return nil
	}

	return printResponse(resp)
}

// detectInputType classifies an argument: URLs by scheme, existing paths
// as files, everything else as chat.
func detectInputType(source string) string {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return backend.InputURL
	}
	if _, err := os.Stat(source); err == nil {
		return backend.InputFile
	}
	return backend.InputChat
}

func printResponse(resp *backend.ApiResponse) error {
	if resp.IsError() {
		fmt.Fprintln(os.Stderr, "Processing failed:", resp.Error)
		if resp.Traceback != "" {
			fmt.Fprintln(os.Stderr, resp.Traceback)
		}
		os.Exit(1)
	}

	if resp.AnalysisResult != "" {
		fmt.Println("== Analysis ==")
		fmt.Println(resp.AnalysisResult)
	}
	if resp.DownloadResult != "" {
		fmt.Println("== Download ==")
		fmt.Println(resp.DownloadResult)
	}
	if resp.ImplementationResult != "" {
		fmt.Println("== Implementation ==")
		fmt.Println(resp.ImplementationResult)
	}
	if resp.RepoResult != nil {
		if resp.RepoResult.Result != "" {
			fmt.Println("== Repository ==")
			fmt.Println(resp.RepoResult.Result)
		}
		for _, f := range resp.RepoResult.GeneratedFiles {
			fmt.Println("  ", f)
		}
	}
	return nil
}
