package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/grovetools/hookcfg/command"
	"github.com/grovetools/hookcfg/errors"
	"gopkg.in/yaml.v3"
)

// Issue is a single validation finding.
type Issue struct {
	// Path is the YAML path of the offending value, e.g. repos[1].hooks[0].id.
	Path string `json:"path"`
	// Line is the 1-based line in the source file, 0 when unknown.
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", i.Line, i.Path, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// ValidateOptions tunes validation.
type ValidateOptions struct {
	// Strict reports keys the configuration model does not know about.
	Strict bool
}

// Validate checks the active configuration.
func (c *Config) Validate() error {
	refs := make([]SourceRef, 0, len(c.Repos))
	for i, src := range c.Repos {
		refs = append(refs, SourceRef{HookSource: src, Index: i})
	}
	return issuesError(validateSources(refs, nil))
}

// Validate checks the document's active entries. Disabled blocks are never
// validated.
func (d *Document) Validate(opts ValidateOptions) error {
	refs, err := d.Sources()
	if err != nil {
		return err
	}

	var items []*yaml.Node
	if d.repos != nil {
		items = d.repos.Content
	}
	issues := validateSources(refs, items)

	if d.root.Kind != 0 && len(d.root.Content) > 0 && d.reposKey == nil {
		issues = append(issues, Issue{Path: "repos", Line: 1, Message: "missing required key"})
	}

	if opts.Strict && d.root.Kind != 0 && len(d.root.Content) > 0 {
		issues = append(issues, unknownKeys(d.root.Content[0], items)...)
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Line < issues[j].Line })
	return issuesError(issues)
}

func validateSources(refs []SourceRef, items []*yaml.Node) []Issue {
	var issues []Issue
	seen := make(map[string]int)

	for _, ref := range refs {
		path := fmt.Sprintf("repos[%d]", ref.Index)
		item := nodeAt(items, ref.Index)
		line := ref.Line

		if ref.Repo == "" {
			issues = append(issues, Issue{Path: path + ".repo", Line: lineOf(valueNode(item, "repo"), line), Message: "must be a non-empty string"})
		}

		switch {
		case ref.IsSentinel() && ref.Rev != "":
			issues = append(issues, Issue{Path: path + ".rev", Line: lineOf(valueNode(item, "rev"), line),
				Message: fmt.Sprintf("'%s' hooks must not pin a revision", ref.Repo)})
		case !ref.IsSentinel() && ref.Rev == "":
			issues = append(issues, Issue{Path: path + ".rev", Line: line, Message: "a revision pin is required"})
		case ref.Rev != "" && command.ValidateGitRef(ref.Rev) != nil:
			issues = append(issues, Issue{Path: path + ".rev", Line: lineOf(valueNode(item, "rev"), line),
				Message: fmt.Sprintf("'%s' is not a valid tag or commit", ref.Rev)})
		}

		// Several local blocks are allowed; only pinned sources must be unique.
		if ref.Rev != "" {
			key := ref.Key()
			if first, ok := seen[key]; ok {
				issues = append(issues, Issue{Path: path, Line: line,
					Message: fmt.Sprintf("duplicate source %s (first defined at repos[%d])", key, first)})
			} else {
				seen[key] = ref.Index
			}
		}

		if len(ref.Hooks) == 0 {
			issues = append(issues, Issue{Path: path + ".hooks", Line: line, Message: "must list at least one hook"})
		}

		hooksNode := valueNode(item, "hooks")
		ids := make(map[string]bool)
		for j, hook := range ref.Hooks {
			hookPath := fmt.Sprintf("%s.hooks[%d]", path, j)
			hookLine := lineOf(nodeAt(seqContent(hooksNode), j), line)
			if strings.TrimSpace(hook.ID) == "" {
				issues = append(issues, Issue{Path: hookPath + ".id", Line: hookLine, Message: "must be a non-empty string"})
				continue
			}
			if ids[hook.ID] {
				issues = append(issues, Issue{Path: hookPath + ".id", Line: hookLine,
					Message: fmt.Sprintf("hook '%s' is listed twice in this source", hook.ID)})
			}
			ids[hook.ID] = true

			if ref.Repo == LocalRepo && (hook.Entry == "" || hook.Language == "" || hook.Name == "") {
				issues = append(issues, Issue{Path: hookPath, Line: hookLine,
					Message: "local hooks must set name, entry and language"})
			}
		}
	}

	return issues
}

// unknownKeys reports keys that none of the configuration types declare.
func unknownKeys(top *yaml.Node, items []*yaml.Node) []Issue {
	var issues []Issue
	issues = append(issues, checkKeys(top, "", knownKeys(reflect.TypeOf(Config{})))...)

	sourceKeys := knownKeys(reflect.TypeOf(HookSource{}))
	hookKeys := knownKeys(reflect.TypeOf(HookEntry{}))
	for i, item := range items {
		path := fmt.Sprintf("repos[%d]", i)
		issues = append(issues, checkKeys(item, path+".", sourceKeys)...)
		for j, hook := range seqContent(valueNode(item, "hooks")) {
			issues = append(issues, checkKeys(hook, fmt.Sprintf("%s.hooks[%d].", path, j), hookKeys)...)
		}
	}
	return issues
}

func checkKeys(node *yaml.Node, prefix string, known map[string]bool) []Issue {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	var issues []Issue
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !known[key.Value] {
			issues = append(issues, Issue{Path: prefix + key.Value, Line: key.Line, Message: "unexpected key"})
		}
	}
	return issues
}

// knownKeys collects the yaml field names of a struct type.
func knownKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}

func issuesError(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, "- "+issue.String())
	}
	return errors.New(errors.ErrCodeConfigValidation,
		fmt.Sprintf("%d validation issue(s):\n%s", len(issues), strings.Join(lines, "\n"))).
		WithDetail("issues", issues)
}

// IssuesOf extracts the validation issues carried by err.
func IssuesOf(err error) []Issue {
	groveErr, ok := errors.As(err)
	if !ok {
		return nil
	}
	issues, _ := groveErr.Details["issues"].([]Issue)
	return issues
}

func valueNode(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func seqContent(node *yaml.Node) []*yaml.Node {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	return node.Content
}

func nodeAt(nodes []*yaml.Node, i int) *yaml.Node {
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return nodes[i]
}

func lineOf(node *yaml.Node, fallback int) int {
	if node == nil {
		return fallback
	}
	return node.Line
}
