// config.go implements the "deepcode config" command: inspect and edit
// the recognized fields of the two engine configuration documents.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deepcode-dev/deepcode/internal/bridge"
	"github.com/deepcode-dev/deepcode/internal/log"
	"github.com/deepcode-dev/deepcode/internal/settings"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the recognized engine configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set one recognized configuration field",
	Long: `Set a recognized field in mcp_agent.config.yaml. Fields:
  default-model           model identifier string
  search-server           brave or bocha
  segmentation            true or false
  segmentation-threshold  size threshold in characters

Unrecognized keys already present in the document are preserved as-is.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

// loadConfigDocument reads and parses mcp_agent.config.yaml; a missing
// file yields an empty, editable document.
func loadConfigDocument(files *bridge.FileStore) (*settings.Document, error) {
	text, err := files.ReadConfig()
	if err != nil {
		text = ""
	}
	return settings.Parse(text)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer closeSidecar(deps)

	doc, err := loadConfigDocument(deps.Files)
	if err != nil {
		return err
	}
	cfg := doc.Config()

	fmt.Printf("default-model:           %s\n", cfg.DefaultModel)
	fmt.Printf("search-server:           %s\n", cfg.SearchServer)
	fmt.Printf("segmentation:            %t\n", cfg.SegmentationEnabled)
	fmt.Printf("segmentation-threshold:  %d\n", cfg.SegmentationThreshold)
	fmt.Printf("(%d top-level keys in %s)\n", doc.Keys(), bridge.ConfigFileName)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	field, value := args[0], args[1]

	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer closeSidecar(deps)

	doc, err := loadConfigDocument(deps.Files)
	if err != nil {
		return err
	}
	cfg := doc.Config()

	switch field {
	case "default-model":
		cfg.DefaultModel = value
	case "search-server":
		if value != settings.SearchBrave && value != settings.SearchBocha {
			return fmt.Errorf("search-server must be %q or %q", settings.SearchBrave, settings.SearchBocha)
		}
		cfg.SearchServer = value
	case "segmentation":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("segmentation must be true or false")
		}
		cfg.SegmentationEnabled = b
	case "segmentation-threshold":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("segmentation-threshold must be a non-negative number")
		}
		cfg.SegmentationThreshold = n
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	doc.ApplyConfig(cfg)
	text, err := doc.Marshal()
	if err != nil {
		return err
	}
	if err := deps.Files.WriteConfig(text); err != nil {
		return err
	}

	_ = deps.Logger.Append(log.LogEvent{Event: log.EventSettingsSaved})
	fmt.Printf("%s = %s\n", field, value)
	return nil
}
