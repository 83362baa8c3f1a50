package git

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grovetools/hookcfg/command"
	"github.com/grovetools/hookcfg/errors"
)

// gitTimeout bounds the short rev-parse queries below.
const gitTimeout = 5 * time.Second

// IsGitRepo checks if the given directory is inside a git repository
func IsGitRepo(ctx context.Context, dir string) bool {
	cmd, err := command.NewSafeBuilder().Build(ctx, "git", "rev-parse", "--git-dir")
	if err != nil {
		return false
	}
	return cmd.InDir(dir).WithTimeout(gitTimeout).Run() == nil
}

// GetGitRoot returns the root directory of the git repository
func GetGitRoot(ctx context.Context, dir string) (string, error) {
	cmd, err := command.NewSafeBuilder().Build(ctx, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	output, err := cmd.InDir(dir).WithTimeout(gitTimeout).Output()
	if err != nil {
		return "", errors.CommandFailed(cmd.String(), err)
	}

	return strings.TrimSpace(string(output)), nil
}

// ShortRepoName turns a hook source location into a compact display name:
// "owner/name" for hosted repositories, the input for anything else.
func ShortRepoName(url string) string {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")

	// Handle SSH URLs (git@github.com:user/repo)
	if strings.HasPrefix(trimmed, "git@") {
		if _, path, ok := strings.Cut(trimmed, ":"); ok {
			trimmed = path
		}
	}

	// Handle HTTPS URLs
	if _, rest, ok := strings.Cut(trimmed, "://"); ok {
		_, path, found := strings.Cut(rest, "/")
		if !found {
			return url
		}
		trimmed = path
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return trimmed
}
