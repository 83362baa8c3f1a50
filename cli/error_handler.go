package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/hookcfg/config"
	"github.com/grovetools/hookcfg/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	out := h.Out
	if out == nil {
		out = os.Stderr
	}
	groveErr, _ := errors.As(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(out, "❌ No %s found. Pass --config or run from inside the repository.\n", config.DefaultConfigName)

	case errors.ErrCodeConfigValidation:
		if issues := config.IssuesOf(err); len(issues) > 0 {
			fmt.Fprintf(out, "❌ %d problem(s) in hook configuration:\n", len(issues))
			for _, issue := range issues {
				fmt.Fprintf(out, "  • %s\n", issue)
			}
		} else {
			fmt.Fprintf(out, "❌ %v\n", err)
		}

	case errors.ErrCodeSourceNotFound:
		if groveErr != nil {
			if disabled, _ := groveErr.Details["disabled"].(bool); disabled {
				fmt.Fprintf(out, "❌ No disabled block contains '%v'. Run 'hookcfg list --all' to see them.\n", groveErr.Details["repo"])
			} else {
				fmt.Fprintf(out, "❌ No active hook source '%v'. Run 'hookcfg list' to see them.\n", groveErr.Details["repo"])
			}
		}

	case errors.ErrCodeAmbiguousSource:
		if groveErr != nil {
			fmt.Fprintf(out, "❌ '%v' matches %v sources. Pass --rev to pick one.\n", groveErr.Details["repo"], groveErr.Details["matches"])
		}

	case errors.ErrCodeFormatDrift:
		if groveErr != nil {
			fmt.Fprintf(out, "❌ %v is not formatted. Run 'hookcfg fmt --write'.\n", groveErr.Details["path"])
		}

	default:
		// Generic error handling
		fmt.Fprintf(out, "❌ Error: %v\n", err)
	}

	// If verbose mode, show full error details
	if h.Verbose && groveErr != nil {
		fmt.Fprintf(out, "\nError details:\n%s\n", groveErr.ToJSON())
	}
	return err
}
