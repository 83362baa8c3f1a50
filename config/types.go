package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Sentinel repo values that name hooks defined in the configuration itself or
// by the hook framework. Neither carries a revision pin.
const (
	LocalRepo = "local"
	MetaRepo  = "meta"
)

// DefaultConfigName is the file name the hook framework reads.
const DefaultConfigName = ".pre-commit-config.yaml"

// Config is the top-level hook configuration document.
type Config struct {
	Repos                   []HookSource      `yaml:"repos" json:"repos" jsonschema:"required,description=Ordered list of hook sources"`
	DefaultLanguageVersion  map[string]string `yaml:"default_language_version,omitempty" json:"default_language_version,omitempty" jsonschema:"description=Default interpreter version per hook language"`
	DefaultStages           []string          `yaml:"default_stages,omitempty" json:"default_stages,omitempty" jsonschema:"description=Stages hooks run in unless they set their own"`
	Files                   string            `yaml:"files,omitempty" json:"files,omitempty" jsonschema:"description=Global include pattern (regex)"`
	Exclude                 string            `yaml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=Global exclude pattern (regex)"`
	FailFast                bool              `yaml:"fail_fast,omitempty" json:"fail_fast,omitempty" jsonschema:"description=Stop after the first failing hook"`
	MinimumPreCommitVersion string            `yaml:"minimum_pre_commit_version,omitempty" json:"minimum_pre_commit_version,omitempty" jsonschema:"description=Oldest framework version able to read this file"`
}

// HookSource is one remote (or sentinel) repository supplying hooks.
type HookSource struct {
	Repo  string      `yaml:"repo" json:"repo" jsonschema:"required,minLength=1,description=Repository location or the sentinels 'local' and 'meta'"`
	Rev   string      `yaml:"rev,omitempty" json:"rev,omitempty" jsonschema:"description=Pinned tag or commit"`
	Hooks []HookEntry `yaml:"hooks" json:"hooks" jsonschema:"required,minItems=1,description=Hooks used from this source"`
}

// HookEntry selects one hook from its source and optionally overrides how it
// is invoked.
type HookEntry struct {
	ID                     string   `yaml:"id" json:"id" jsonschema:"required,minLength=1,description=Hook identifier defined by the source"`
	Alias                  string   `yaml:"alias,omitempty" json:"alias,omitempty"`
	Description            string   `yaml:"description,omitempty" json:"description,omitempty"`
	LanguageVersion        string   `yaml:"language_version,omitempty" json:"language_version,omitempty" jsonschema:"description=Interpreter version constraint"`
	Args                   []string `yaml:"args,omitempty" json:"args,omitempty" jsonschema:"description=Extra arguments passed to the hook"`
	Name                   string   `yaml:"name,omitempty" json:"name,omitempty"`
	Entry                  string   `yaml:"entry,omitempty" json:"entry,omitempty"`
	Language               string   `yaml:"language,omitempty" json:"language,omitempty"`
	Files                  string   `yaml:"files,omitempty" json:"files,omitempty"`
	Exclude                string   `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Types                  []string `yaml:"types,omitempty" json:"types,omitempty"`
	TypesOr                []string `yaml:"types_or,omitempty" json:"types_or,omitempty"`
	ExcludeTypes           []string `yaml:"exclude_types,omitempty" json:"exclude_types,omitempty"`
	Stages                 []string `yaml:"stages,omitempty" json:"stages,omitempty"`
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty" json:"additional_dependencies,omitempty"`
	PassFilenames          *bool    `yaml:"pass_filenames,omitempty" json:"pass_filenames,omitempty"`
	AlwaysRun              *bool    `yaml:"always_run,omitempty" json:"always_run,omitempty"`
	RequireSerial          bool     `yaml:"require_serial,omitempty" json:"require_serial,omitempty"`
	Verbose                bool     `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	LogFile                string   `yaml:"log_file,omitempty" json:"log_file,omitempty"`
}

// IsSentinel reports whether the source names hooks that are not fetched
// from a repository and therefore has no revision pin.
func (s HookSource) IsSentinel() bool {
	return s.Repo == LocalRepo || s.Repo == MetaRepo
}

// Key identifies the source by its repo and revision pin.
func (s HookSource) Key() string {
	if s.Rev == "" {
		return s.Repo
	}
	return s.Repo + "@" + s.Rev
}

// HookIDs returns the ids of the source's hooks in file order.
func (s HookSource) HookIDs() []string {
	ids := make([]string, 0, len(s.Hooks))
	for _, h := range s.Hooks {
		ids = append(ids, h.ID)
	}
	return ids
}

// HookCount returns the total number of hook entries across all sources.
func (c *Config) HookCount() int {
	n := 0
	for _, s := range c.Repos {
		n += len(s.Hooks)
	}
	return n
}

// Settings configures the hookcfg tool itself. It is read from hookcfg.toml.
type Settings struct {
	// ConfigName overrides the hook configuration file name.
	ConfigName string `toml:"config_name"`
	// Strict turns unknown keys into validation issues.
	Strict *bool `toml:"strict"`
	// Indent is the indentation width used by fmt.
	Indent int `toml:"indent"`

	// Sections holds free-form tables such as [logging].
	Sections map[string]interface{} `toml:"-"`
}

// SetDefaults fills unset settings.
func (s *Settings) SetDefaults() {
	if s.ConfigName == "" {
		s.ConfigName = DefaultConfigName
	}
	if s.Indent <= 0 {
		s.Indent = 2
	}
}

// IsStrict reports whether strict validation is enabled.
func (s *Settings) IsStrict() bool {
	return s.Strict != nil && *s.Strict
}

// UnmarshalSection decodes a table of the settings file into the provided
// target struct. The target must be a pointer. A missing section leaves the
// target untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := settings.UnmarshalSection("logging", &logCfg)
func (s *Settings) UnmarshalSection(key string, target interface{}) error {
	section, ok := s.Sections[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(section); err != nil {
		return fmt.Errorf("failed to decode settings section '%s': %w", key, err)
	}

	return nil
}
