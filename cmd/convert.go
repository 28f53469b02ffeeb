package cmd

import (
	"errors"
	"fmt"

	"github.com/grovetools/core/logging"
	ruleconv_config "github.com/grovetools/ruleconv/config"
	"github.com/grovetools/ruleconv/internal/transcode"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var input, output, configPath string

	cmd := &cobra.Command{
		Use:   "convert [flags]",
		Short: "Convert a rule summary CSV into a compact JSON record array",
		Long: "Reads a rule-level summary CSV, renames known columns to their short aliases, " +
			"normalizes numbers (integers stay integers, fractions are rounded to two decimals) " +
			"and replaces the output file with a compact JSON array. Prints nothing on success.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger("ruleconv-convert")

			cfg, err := loadSettings(configPath)
			if err != nil {
				return err
			}
			cfg.Merge(ruleconv_config.Config{Input: input, Output: output})

			if cfg.Input == "" {
				return errors.New("no input file: pass --input or set 'input' in the config")
			}
			if cfg.Output == "" {
				return errors.New("no output file: pass --output or set 'output' in the config")
			}

			keys, err := cfg.KeyMap()
			if err != nil {
				return err
			}

			logger.WithField("input", cfg.Input).WithField("output", cfg.Output).Debug("Starting conversion")

			opts := transcode.Options{Input: cfg.Input, Output: cfg.Output}
			if _, err := transcode.NewTranscoder(keys).Run(cmd.Context(), opts); err != nil {
				return fmt.Errorf("convert failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path of the rule summary CSV to read")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path of the JSON file to write (replaced if it exists)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file with input, output and key overrides")

	return cmd
}
