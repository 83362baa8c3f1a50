package cmd

import (
	"fmt"

	"github.com/grovetools/hookcfg/config"
	"github.com/grovetools/hookcfg/git"
	"github.com/spf13/cobra"
)

func NewDisableCmd() *cobra.Command {
	var rev string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "disable <repo>",
		Short: "Comment out a hook source",
		Long: `Comment out the hook source for <repo> in place. The rest of the file is
left byte for byte as it was, and the source can be restored with
'hookcfg enable'. <repo> is the full location or a unique short name such
as 'ambv/black' or 'black'.`,
		Example: `hookcfg disable black
hookcfg disable https://github.com/pre-commit/mirrors-isort --rev v5.6.4
hookcfg disable local --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTarget(cmd, "disable")
			if err != nil {
				return err
			}
			doc, err := config.ReadDocument(t.path)
			if err != nil {
				return err
			}
			refs, err := doc.Sources()
			if err != nil {
				return err
			}
			repos := make([]string, 0, len(refs))
			for _, ref := range refs {
				repos = append(repos, ref.Repo)
			}
			repo := resolveRepo(args[0], repos)

			next, err := doc.Disable(repo, rev)
			if err != nil {
				return err
			}
			return finishEdit(cmd, t, next, dryRun, "Disabled", repo)
		},
	}

	cmd.Flags().StringVar(&rev, "rev", "", "Only the source pinned to this revision")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the result instead of writing the file")
	return cmd
}

func NewEnableCmd() *cobra.Command {
	var rev string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "enable <repo>",
		Short: "Restore a commented-out hook source",
		Long: `Uncomment the disabled block holding <repo> and re-indent it to match the
active sources. The block must decode to complete hook sources; plain
comments are never touched. Use 'hookcfg list --all' to see disabled
blocks.`,
		Example: `hookcfg enable local
hookcfg enable black --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTarget(cmd, "enable")
			if err != nil {
				return err
			}
			doc, err := config.ReadDocument(t.path)
			if err != nil {
				return err
			}
			var repos []string
			for _, block := range doc.Disabled() {
				for _, src := range block.Sources {
					repos = append(repos, src.Repo)
				}
			}
			repo := resolveRepo(args[0], repos)

			next, err := doc.Enable(repo, rev)
			if err != nil {
				return err
			}

			opts := config.ValidateOptions{Strict: t.settings.IsStrict()}
			if err := next.Validate(opts); err != nil {
				issues := config.IssuesOf(err)
				t.logger.WithField("issues", len(issues)).Warn("Restored source does not validate; run 'hookcfg validate' for details")
			}
			return finishEdit(cmd, t, next, dryRun, "Enabled", repo)
		},
	}

	cmd.Flags().StringVar(&rev, "rev", "", "Only the block pinned to this revision")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the result instead of writing the file")
	return cmd
}

func finishEdit(cmd *cobra.Command, t *target, next *config.Document, dryRun bool, verb, repo string) error {
	out := cmd.OutOrStdout()
	if dryRun {
		_, err := out.Write(next.Bytes())
		return err
	}
	if err := config.WriteDocument(next); err != nil {
		return err
	}
	t.logger.WithField("repo", repo).Infof("%s hook source", verb)
	fmt.Fprintf(out, "%s %s in %s\n", verb, git.ShortRepoName(repo), t.path)
	return nil
}
