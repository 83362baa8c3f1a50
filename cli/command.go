package cli

import (
	"os"

	"github.com/grovetools/hookcfg/config"
	"github.com/grovetools/hookcfg/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds common options for hookcfg commands
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a new command with standard hookcfg flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Standard flags for all subcommands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the hook configuration file")

	ConfigureColor()
	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the component logger adjusted to the command flags
func GetLogger(cmd *cobra.Command, component string) *logrus.Logger {
	logger := logging.NewLogger(component).Logger

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetOutput(cmd.ErrOrStderr())
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// InitConfig resolves the hook configuration file path. An explicit path
// wins; otherwise the file is searched for from the working directory.
func InitConfig(configFile string, settings *config.Settings) (string, error) {
	if configFile != "" {
		return configFile, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	name := config.DefaultConfigName
	if settings != nil && settings.ConfigName != "" {
		name = settings.ConfigName
	}
	return config.FindConfigFile(cwd, name)
}
