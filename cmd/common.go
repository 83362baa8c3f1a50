package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/hookcfg/cli"
	"github.com/grovetools/hookcfg/config"
	"github.com/grovetools/hookcfg/git"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// target is the configuration file a command operates on.
type target struct {
	path     string
	settings *config.Settings
	logger   *logrus.Logger
}

func resolveTarget(cmd *cobra.Command, component string) (*target, error) {
	logger := cli.GetLogger(cmd, component)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	settings, err := config.LoadSettingsWithLogger(cwd, logger)
	if err != nil {
		return nil, err
	}

	path, err := cli.InitConfig(cli.GetOptions(cmd).ConfigFile, settings)
	if err != nil {
		return nil, err
	}
	logger.WithField("path", path).Debug("Using hook configuration")

	return &target{path: path, settings: settings, logger: logger}, nil
}

// resolveRepo maps a repo argument to the full repo location among
// candidates. Exact matches win; otherwise a unique short name such as
// "ambv/black" or a bare "black" is accepted.
func resolveRepo(arg string, candidates []string) string {
	var short []string
	seen := make(map[string]bool)
	for _, repo := range candidates {
		if repo == arg {
			return arg
		}
		name := git.ShortRepoName(repo)
		if name == arg || lastSegment(name) == arg {
			if !seen[repo] {
				seen[repo] = true
				short = append(short, repo)
			}
		}
	}
	if len(short) == 1 {
		return short[0]
	}
	return arg
}

func lastSegment(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}
