package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/grovetools/hookcfg/cli"
	"github.com/grovetools/hookcfg/config"
	"github.com/grovetools/hookcfg/git"
	"github.com/spf13/cobra"
)

// SourceListing is one row of the list output.
type SourceListing struct {
	Repo     string   `json:"repo"`
	Rev      string   `json:"rev,omitempty"`
	Hooks    []string `json:"hooks"`
	Line     int      `json:"line"`
	Disabled bool     `json:"disabled,omitempty"`
}

func NewListCmd() *cobra.Command {
	var all bool
	var match []string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List hook sources and their hooks",
		Long: `List the active hook sources in file order. With --all, sources that are
commented out are listed too; they are never part of the active
configuration.

--match selects hooks by id using .dockerignore style patterns: globs,
'**', and '!' exclusions applied in order.`,
		Example: `# Show every source including disabled ones
hookcfg list --all

# Only isort related hooks
hookcfg list --match '*isort*'

# Everything except the pre-commit-hooks checks
hookcfg list --match '*' --match '!check-*'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTarget(cmd, "list")
			if err != nil {
				return err
			}
			doc, err := config.ReadDocument(t.path)
			if err != nil {
				return err
			}

			listings, err := collectListings(doc, all, match)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(listings, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if len(listings) == 0 {
				fmt.Fprintln(out, "No hook sources found.")
				return nil
			}

			rows := make([][]string, 0, len(listings))
			for _, l := range listings {
				state := "active"
				if l.Disabled {
					state = "disabled"
				}
				rev := l.Rev
				if rev == "" {
					rev = "-"
				}
				rows = append(rows, []string{
					git.ShortRepoName(l.Repo),
					rev,
					strings.Join(l.Hooks, ", "),
					strconv.Itoa(l.Line),
					state,
				})
			}
			fmt.Fprintln(out, cli.RenderTable(
				[]string{"SOURCE", "REV", "HOOKS", "LINE", "STATE"},
				rows,
				func(row int) bool { return row >= 0 && row < len(listings) && listings[row].Disabled },
			))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include commented-out sources")
	cmd.Flags().StringSliceVarP(&match, "match", "m", nil, "Only hooks whose id matches the pattern (repeatable)")
	return cmd
}

func collectListings(doc *config.Document, all bool, patterns []string) ([]SourceListing, error) {
	refs, err := doc.Sources()
	if err != nil {
		return nil, err
	}

	var listings []SourceListing
	add := func(src config.HookSource, line int, disabled bool) error {
		matches, err := config.FilterHooks([]config.HookSource{src}, patterns)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return nil
		}
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.Hook.ID)
		}
		listings = append(listings, SourceListing{
			Repo:     src.Repo,
			Rev:      src.Rev,
			Hooks:    ids,
			Line:     line,
			Disabled: disabled,
		})
		return nil
	}

	for _, ref := range refs {
		if err := add(ref.HookSource, ref.Line, false); err != nil {
			return nil, err
		}
	}
	if all {
		for _, block := range doc.Disabled() {
			for _, src := range block.Sources {
				if err := add(src, block.StartLine, true); err != nil {
					return nil, err
				}
			}
		}
	}
	return listings, nil
}
