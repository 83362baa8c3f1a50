package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/hookcfg/cli"
	"github.com/grovetools/hookcfg/config"
	"github.com/grovetools/hookcfg/logging"
	"github.com/grovetools/hookcfg/pkg/watch"
	"github.com/spf13/cobra"
)

// ValidationResult is the JSON form of a successful validation.
type ValidationResult struct {
	Path     string `json:"path"`
	Valid    bool   `json:"valid"`
	Sources  int    `json:"sources"`
	Hooks    int    `json:"hooks"`
	Disabled int    `json:"disabled"`
}

func NewValidateCmd() *cobra.Command {
	var strict, watchMode bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the hook configuration for mistakes",
		Long: `Check the hook configuration against its schema and the rules the
hook framework enforces: every source outside 'local' and 'meta' pins a
revision, repo and revision pairs are unique, hook ids are non-empty and
unique per source. All problems are reported at once with line numbers.

Commented-out sources are never validated.`,
		Example: `# Validate the configuration of the current repository
hookcfg validate

# Also report keys the hook framework does not know
hookcfg validate --strict

# Re-validate whenever the file changes
hookcfg validate --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTarget(cmd, "validate")
			if err != nil {
				return err
			}
			opts := config.ValidateOptions{Strict: strict || t.settings.IsStrict()}
			jsonOutput := cli.GetOptions(cmd).JSONOutput

			if !watchMode {
				return validateOnce(cmd.OutOrStdout(), t, opts, jsonOutput)
			}
			return watchAndValidate(cmd, t, opts, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Report unknown keys as problems")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-validate on every change until interrupted")
	return cmd
}

func validateOnce(out io.Writer, t *target, opts config.ValidateOptions, jsonOutput bool) error {
	doc, err := config.LoadDocumentWithLogger(t.path, opts, t.logger)
	if err != nil {
		return err
	}
	cfg, err := doc.Config()
	if err != nil {
		return err
	}

	result := ValidationResult{
		Path:     t.path,
		Valid:    true,
		Sources:  len(cfg.Repos),
		Hooks:    cfg.HookCount(),
		Disabled: len(doc.Disabled()),
	}

	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "✓ %s: %d source(s), %d hook(s)", result.Path, result.Sources, result.Hooks)
	if result.Disabled > 0 {
		fmt.Fprintf(out, ", %d disabled block(s)", result.Disabled)
	}
	fmt.Fprintln(out)
	return nil
}

func watchAndValidate(cmd *cobra.Command, t *target, opts config.ValidateOptions, jsonOutput bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)
	handler.Out = cmd.ErrOrStderr()
	check := func() {
		if err := validateOnce(cmd.OutOrStdout(), t, opts, jsonOutput); err != nil {
			handler.Handle(err)
		}
	}

	w, err := watch.NewFileWatcher(t.path, 0, logging.NewLogger("watch"), func(string) { check() })
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", t.path, err)
	}
	defer w.Close()

	check()
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", t.path)
	w.Start(ctx)
	return nil
}
