package cmd

import (
	"github.com/grovetools/core/cli"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ruleconv.
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"ruleconv",
		"Convert rule-level trial statistics to compact JSON records",
	)
	// main reports the error itself; a usage dump hides it.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newKeysCmd())

	return rootCmd
}
