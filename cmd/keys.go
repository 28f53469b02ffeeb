package cmd

import (
	"encoding/json"
	"fmt"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/grovetools/ruleconv/internal/display"
	"github.com/spf13/cobra"
)

var ulogKeys = grovelogging.NewUnifiedLogger("ruleconv.cmd.keys")

func newKeysCmd() *cobra.Command {
	var jsonOutput bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "keys [flags]",
		Short: "Show the column alias table",
		Long:  "Show the built-in column alias table with any overrides from the config applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(configPath)
			if err != nil {
				return err
			}
			keys, err := cfg.KeyMap()
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				if err := enc.Encode(keys.Entries()); err != nil {
					return fmt.Errorf("failed to write key map as JSON: %w", err)
				}
				ulogKeys.Debug("Key map written").
					Field("columns", keys.Len()).
					Field("format", "json").
					StructuredOnly().
					Emit()
				return nil
			}

			return display.PrintKeyMap(keys.Entries(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file with key overrides")

	return cmd
}
