package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/grovetools/hookcfg/errors"
	"github.com/grovetools/hookcfg/git"
	"github.com/sirupsen/logrus"
)

var (
	schemaOnce      sync.Once
	schemaValidator *SchemaValidator
	schemaErr       error
)

// defaultSchemaValidator compiles the schema once per process.
func defaultSchemaValidator() (*SchemaValidator, error) {
	schemaOnce.Do(func() {
		schemaValidator, schemaErr = NewSchemaValidator()
	})
	return schemaValidator, schemaErr
}

// Load reads, parses and validates a hook configuration file
func Load(path string) (*Config, error) {
	doc, err := LoadDocument(path, ValidateOptions{})
	if err != nil {
		return nil, err
	}
	return doc.Config()
}

// LoadDocument reads a hook configuration file and validates it.
func LoadDocument(path string, opts ValidateOptions) (*Document, error) {
	return LoadDocumentWithLogger(path, opts, logrus.New())
}

// LoadDocumentWithLogger reads a hook configuration file and validates it,
// logging each stage.
func LoadDocumentWithLogger(path string, opts ValidateOptions, logger *logrus.Logger) (*Document, error) {
	logger.WithField("path", path).Debug("Loading hook configuration")

	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}

	if err := doc.Check(opts); err != nil {
		return nil, err
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		refs, _ := doc.Sources()
		logger.WithFields(logrus.Fields{
			"path":     path,
			"sources":  len(refs),
			"disabled": len(doc.Disabled()),
		}).Debug("Hook configuration loaded and validated successfully")
	}

	return doc, nil
}

// ReadDocument reads and parses a hook configuration file without
// validating it.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		if os.IsPermission(err) {
			return nil, errors.Wrap(err, errors.ErrCodePermissionDenied, "cannot read config file").
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	doc, err := Parse(data)
	if err != nil {
		if groveErr, ok := errors.As(err); ok {
			groveErr.WithDetail("path", path)
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// WriteDocument writes the document back to its path, keeping the file mode.
func WriteDocument(doc *Document) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(doc.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(doc.Path, doc.Bytes(), mode); err != nil {
		return errors.Wrap(err, errors.ErrCodePermissionDenied, "failed to write config file").
			WithDetail("path", doc.Path)
	}
	return nil
}

// LoadFromBytes parses and validates configuration from a byte array
func LoadFromBytes(data []byte) (*Config, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := doc.Check(ValidateOptions{}); err != nil {
		return nil, err
	}
	return doc.Config()
}

// Check validates the document against the schema and then checks the
// invariants the schema cannot express.
func (d *Document) Check(opts ValidateOptions) error {
	validator, err := defaultSchemaValidator()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create validator")
	}

	if err := validator.ValidateDocument(d); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed")
	}

	return d.Validate(opts)
}

// FindConfigFile searches for the hook configuration file with the following
// precedence:
// 1. Current directory up to filesystem root
// 2. Git repository root (if in a git repo)
func FindConfigFile(startDir, name string) (string, error) {
	if name == "" {
		name = DefaultConfigName
	}
	configNames := []string{name}
	if name == DefaultConfigName {
		configNames = append(configNames, ".pre-commit-config.yml")
	}

	// 1. Search from current directory up to filesystem root
	dir := startDir
	for {
		for _, candidate := range configNames {
			path := filepath.Join(dir, candidate)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// 2. Check git repository root; covers start dirs reached through symlinks
	ctx := context.Background()
	if git.IsGitRepo(ctx, startDir) {
		if gitRoot, err := git.GetGitRoot(ctx, startDir); err == nil && gitRoot != "" {
			for _, candidate := range configNames {
				path := filepath.Join(gitRoot, candidate)
				if info, err := os.Stat(path); err == nil && !info.IsDir() {
					return path, nil
				}
			}
		}
	}

	return "", errors.ConfigNotFound(filepath.Join(startDir, name)).WithDetail("searchPath", startDir)
}
