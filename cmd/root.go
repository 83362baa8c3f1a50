package cmd

import (
	"github.com/grovetools/hookcfg/cli"
	"github.com/grovetools/hookcfg/version"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the hookcfg command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"hookcfg",
		"Inspect, validate and edit pre-commit hook configuration",
	)
	rootCmd.Long = `hookcfg reads the .pre-commit-config.yaml of the current repository,
checks it for mistakes the hook framework would only report at commit time,
normalizes its layout, and switches hook sources on and off by commenting
them out in place.

It never runs hooks or installs hook tools.`

	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewFmtCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewDisableCmd())
	rootCmd.AddCommand(NewEnableCmd())
	rootCmd.AddCommand(NewSchemaCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("hookcfg"))

	cli.SetVersionTemplate(rootCmd, version.GetInfo())
	cli.ApplyStyledHelpRecursive(rootCmd)
	return rootCmd
}
