package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *GroveError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *GroveError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// SourceNotFound creates an error for a hook source that is not in the document
func SourceNotFound(repo string) *GroveError {
	return New(ErrCodeSourceNotFound, fmt.Sprintf("hook source '%s' not found", repo)).
		WithDetail("repo", repo)
}

// AmbiguousSource creates an error for a repo that matches several sources
func AmbiguousSource(repo string, count int) *GroveError {
	return New(ErrCodeAmbiguousSource,
		fmt.Sprintf("hook source '%s' matches %d entries, pass --rev to pick one", repo, count)).
		WithDetail("repo", repo).
		WithDetail("matches", count)
}

// FormatDrift creates an error for a file that is not in normalized form
func FormatDrift(path string) *GroveError {
	return New(ErrCodeFormatDrift, fmt.Sprintf("%s is not formatted", path)).
		WithDetail("path", path)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *GroveError {
	groveErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		groveErr = groveErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return groveErr
}
