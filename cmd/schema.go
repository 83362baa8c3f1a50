package cmd

import (
	"fmt"

	"github.com/grovetools/hookcfg/config"
	"github.com/spf13/cobra"
)

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the hook configuration",
		Long: `Print the JSON Schema (draft-07) describing .pre-commit-config.yaml, for
use by editors and YAML language servers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return fmt.Errorf("failed to generate schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
