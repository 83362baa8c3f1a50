package cmd

import (
	"bytes"
	"fmt"

	"github.com/grovetools/hookcfg/config"
	"github.com/grovetools/hookcfg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

func NewFmtCmd() *cobra.Command {
	var check, write, diff bool
	var indent int

	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Normalize the layout of the hook configuration",
		Long: `Re-emit the hook configuration with consistent indentation. Comments,
key order and unknown keys are kept. Without flags the formatted file is
printed to stdout.`,
		Example: `# Fail if the file is not formatted (for CI)
hookcfg fmt --check

# Show what fmt would change
hookcfg fmt --diff

# Rewrite the file in place with 4-space indentation
hookcfg fmt --write --indent 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTarget(cmd, "fmt")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("indent") {
				indent = t.settings.Indent
			}
			if indent < 1 || indent > 8 {
				return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("indent must be between 1 and 8, got %d", indent))
			}

			doc, err := config.ReadDocument(t.path)
			if err != nil {
				return err
			}
			formatted, err := doc.Format(indent)
			if err != nil {
				return err
			}
			unchanged := bytes.Equal(formatted, doc.Bytes())
			out := cmd.OutOrStdout()

			if diff && !unchanged {
				text, err := unifiedDiff(t.path, doc.Bytes(), formatted)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
			}

			switch {
			case check:
				if !unchanged {
					return errors.FormatDrift(t.path)
				}
				fmt.Fprintf(out, "✓ %s is formatted\n", t.path)
			case write:
				if unchanged {
					fmt.Fprintf(out, "%s already formatted\n", t.path)
					return nil
				}
				next, err := config.Parse(formatted)
				if err != nil {
					return errors.Wrap(err, errors.ErrCodeInternal, "formatted output does not parse")
				}
				next.Path = t.path
				if err := config.WriteDocument(next); err != nil {
					return err
				}
				t.logger.WithField("indent", indent).Info("Formatted hook configuration")
				fmt.Fprintf(out, "Formatted %s\n", t.path)
			case diff:
				// the diff is the whole output
			default:
				_, err := out.Write(formatted)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Exit non-zero if the file is not formatted")
	cmd.Flags().BoolVar(&write, "write", false, "Rewrite the file in place")
	cmd.Flags().IntVar(&indent, "indent", 2, "Indentation width")
	cmd.Flags().BoolVar(&diff, "diff", false, "Print a unified diff of the changes")
	cmd.MarkFlagsMutuallyExclusive("check", "write")
	return cmd
}

func unifiedDiff(path string, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	})
}
