package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/hookcfg/command"
	"github.com/grovetools/hookcfg/errors"
	"github.com/grovetools/hookcfg/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

const (
	// SettingsFileName is the global settings file inside the config dir.
	SettingsFileName = "hookcfg.toml"
	// ProjectSettingsFileName is the per-project settings file.
	ProjectSettingsFileName = ".hookcfg.toml"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// LoadSettings loads tool settings with hierarchical merging:
// 1. Global settings ($XDG_CONFIG_HOME/hookcfg/hookcfg.toml) - base layer
// 2. Project settings (.hookcfg.toml, nearest parent of startDir) - overrides global
func LoadSettings(startDir string) (*Settings, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return LoadSettingsWithLogger(startDir, logger)
}

// LoadSettingsWithLogger loads tool settings and logs each layer.
func LoadSettingsWithLogger(startDir string, logger *logrus.Logger) (*Settings, error) {
	final := &Settings{}

	if dir := paths.ConfigDir(); dir != "" {
		globalPath := filepath.Join(dir, SettingsFileName)
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global settings")
			global, err := readSettings(globalPath)
			if err != nil {
				logger.WithError(err).Warn("Failed to parse global settings, continuing without them")
			} else {
				final = global
			}
		}
	}

	if projectPath := findProjectSettings(startDir); projectPath != "" {
		logger.WithField("path", projectPath).Debug("Loading project settings")
		project, err := readSettings(projectPath)
		if err != nil {
			return nil, err
		}
		final = mergeSettings(final, project)
	}

	final.SetDefaults()
	return final, nil
}

// LoadSettingsFromBytes parses a settings file.
func LoadSettingsFromBytes(data []byte) (*Settings, error) {
	expanded := []byte(expandEnvVars(string(data)))

	var settings Settings
	if err := toml.Unmarshal(expanded, &settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to parse TOML settings")
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(expanded, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to parse TOML settings")
	}
	for key, value := range raw {
		if table, ok := value.(map[string]interface{}); ok {
			if settings.Sections == nil {
				settings.Sections = make(map[string]interface{})
			}
			settings.Sections[key] = table
		}
	}

	if settings.ConfigName != "" {
		if err := command.NewSafeBuilder().Validate("fileName", settings.ConfigName); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "invalid config_name").
				WithDetail("config_name", settings.ConfigName)
		}
	}

	return &settings, nil
}

func readSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to read settings file").
			WithDetail("path", path)
	}
	settings, err := LoadSettingsFromBytes(data)
	if err != nil {
		if groveErr, ok := errors.As(err); ok {
			groveErr.WithDetail("path", path)
		}
		return nil, err
	}
	return settings, nil
}

// findProjectSettings searches upward from startDir for .hookcfg.toml.
func findProjectSettings(startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := startDir
	for {
		path := filepath.Join(dir, ProjectSettingsFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
