package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/grovetools/hookcfg/errors"
	"gopkg.in/yaml.v3"
)

// Document is a parsed hook configuration file. It keeps the original bytes
// alongside the YAML node tree so comments, ordering and unknown keys survive
// every operation. Documents are immutable; editing operations return a new
// Document.
type Document struct {
	// Path is the file the document was read from, if any.
	Path string

	src      []byte
	root     yaml.Node
	reposKey *yaml.Node
	repos    *yaml.Node
}

// SourceRef is an active hook source together with its position in the file.
type SourceRef struct {
	HookSource
	// Index is the position in the repos sequence.
	Index int
	// Line is the 1-based line the source starts on.
	Line int
}

// DisabledBlock is a commented-out region that decodes to hook sources. It is
// documentation only and never part of the active configuration.
type DisabledBlock struct {
	// StartLine and EndLine are 1-based and inclusive.
	StartLine int
	EndLine   int
	Sources   []HookSource
}

// Parse parses a hook configuration document.
func Parse(data []byte) (*Document, error) {
	d := &Document{src: append([]byte(nil), data...)}
	if err := yaml.Unmarshal(data, &d.root); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}

	// An empty file has no document node at all.
	if d.root.Kind == 0 {
		return d, nil
	}

	if d.root.Kind != yaml.DocumentNode {
		return nil, errors.ConfigInvalid("expected a single YAML document")
	}
	if len(d.root.Content) == 0 {
		return d, nil
	}

	top := d.root.Content[0]
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return d, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, errors.ConfigInvalid("top level must be a mapping").
			WithDetail("line", top.Line)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		if key.Value != "repos" {
			continue
		}
		d.reposKey = key
		switch {
		case value.Kind == yaml.SequenceNode:
			d.repos = value
		case value.Kind == yaml.ScalarNode && value.Tag == "!!null":
		default:
			return nil, errors.ConfigInvalid("'repos' must be a sequence").
				WithDetail("line", value.Line)
		}
	}

	return d, nil
}

// Bytes returns the document exactly as it was read.
func (d *Document) Bytes() []byte {
	return append([]byte(nil), d.src...)
}

// Config decodes the active configuration.
func (d *Document) Config() (*Config, error) {
	var cfg Config
	if d.root.Kind == 0 {
		return &cfg, nil
	}
	if err := d.root.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}
	return &cfg, nil
}

// Sources returns the active hook sources in file order.
func (d *Document) Sources() ([]SourceRef, error) {
	if d.repos == nil {
		return nil, nil
	}
	refs := make([]SourceRef, 0, len(d.repos.Content))
	for i, item := range d.repos.Content {
		var src HookSource
		if err := item.Decode(&src); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, fmt.Sprintf("failed to decode repos[%d]", i)).
				WithDetail("line", item.Line)
		}
		refs = append(refs, SourceRef{HookSource: src, Index: i, Line: item.Line})
	}
	return refs, nil
}

// Format re-emits the document with normalized indentation. Comments and key
// order are kept. Formatting an already formatted document is a no-op.
func (d *Document) Format(indent int) ([]byte, error) {
	if d.root.Kind == 0 || len(d.root.Content) == 0 {
		return d.Bytes(), nil
	}
	if indent <= 0 {
		indent = 2
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&d.root); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode configuration")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}

// Disabled returns the commented-out hook source blocks in file order.
// Comments that do not decode to hook sources are plain documentation and
// are skipped.
func (d *Document) Disabled() []DisabledBlock {
	return scanDisabled(splitLines(d.src))
}

// Disable comments out the active source matching repo (and rev, when not
// empty). Every other byte of the file is left untouched.
func (d *Document) Disable(repo, rev string) (*Document, error) {
	refs, err := d.Sources()
	if err != nil {
		return nil, err
	}

	var matches []SourceRef
	for _, ref := range refs {
		if ref.Repo == repo && (rev == "" || ref.Rev == rev) {
			matches = append(matches, ref)
		}
	}
	switch len(matches) {
	case 0:
		return nil, errors.SourceNotFound(repo)
	case 1:
	default:
		return nil, errors.AmbiguousSource(repo, len(matches))
	}
	if d.repos.Style&yaml.FlowStyle != 0 {
		return nil, errors.New(errors.ErrCodeUnsupportedLayout, "cannot comment out entries of a flow-style repos list")
	}

	lines := splitLines(d.src)
	item := d.repos.Content[matches[0].Index]
	start, end := itemRange(lines, item)

	col := -1
	for i := start; i <= end; i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if ind := indentOf(lines[i]); col < 0 || ind < col {
			col = ind
		}
	}
	pad := strings.Repeat(" ", col)
	for i := start; i <= end; i++ {
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = pad + "#" + trailingCR(lines[i])
			continue
		}
		lines[i] = lines[i][:col] + "# " + lines[i][col:]
	}

	// The last active source leaves a bare "repos:" behind; keep it a list.
	if len(refs) == 1 {
		keyLine := d.reposKey.Line - 1
		if reposValueIsEmpty(lines[keyLine]) {
			lines[keyLine] = strings.TrimRight(lines[keyLine], " \t\r") + " []" + trailingCR(lines[keyLine])
		}
	}

	out, err := d.reparse(lines)
	if err != nil {
		return nil, err
	}
	after, err := out.Sources()
	if err != nil {
		return nil, err
	}
	if len(after) != len(refs)-1 {
		return nil, errors.New(errors.ErrCodeInternal, "commenting out the source changed other entries").
			WithDetail("repo", repo)
	}
	return out, nil
}

// Enable uncomments the disabled block holding repo (and rev, when not
// empty) and re-indents it to match the active sources.
func (d *Document) Enable(repo, rev string) (*Document, error) {
	var matches []DisabledBlock
	for _, block := range d.Disabled() {
		for _, src := range block.Sources {
			if src.Repo == repo && (rev == "" || src.Rev == rev) {
				matches = append(matches, block)
				break
			}
		}
	}
	switch len(matches) {
	case 0:
		return nil, errors.SourceNotFound(repo).WithDetail("disabled", true)
	case 1:
	default:
		return nil, errors.AmbiguousSource(repo, len(matches))
	}
	block := matches[0]

	before, err := d.Sources()
	if err != nil {
		return nil, err
	}

	lines := splitLines(d.src)
	target := d.itemIndent(lines)

	content := uncommentAll(lines[block.StartLine-1 : block.EndLine])
	content = dedent(content)
	content = asSequenceItem(content)
	content = reindent(content, target)
	for i, line := range content {
		orig := lines[block.StartLine-1+i]
		if cr := trailingCR(orig); !strings.HasSuffix(line, cr) {
			line += cr
		}
		lines[block.StartLine-1+i] = line
	}

	if d.repos != nil && d.repos.Style&yaml.FlowStyle != 0 && len(d.repos.Content) == 0 {
		keyLine := d.repos.Line - 1
		if strings.Contains(lines[keyLine], " []") {
			lines[keyLine] = strings.Replace(lines[keyLine], " []", "", 1)
		} else {
			lines[keyLine] = strings.Replace(lines[keyLine], "[]", "", 1)
		}
	}

	out, err := d.reparse(lines)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUnsupportedLayout, "disabled block does not fit back into the repos list").
			WithDetail("line", block.StartLine)
	}
	after, err := out.Sources()
	if err != nil {
		return nil, err
	}
	if len(after) != len(before)+len(block.Sources) {
		return nil, errors.New(errors.ErrCodeUnsupportedLayout, "disabled block is outside the repos list").
			WithDetail("line", block.StartLine)
	}
	return out, nil
}

func (d *Document) reparse(lines []string) (*Document, error) {
	out, err := Parse([]byte(strings.Join(lines, "\n")))
	if err != nil {
		return nil, err
	}
	out.Path = d.Path
	return out, nil
}

// itemIndent returns the column of the "-" indicators of the repos list.
func (d *Document) itemIndent(lines []string) int {
	if d.repos != nil && len(d.repos.Content) > 0 && d.repos.Style&yaml.FlowStyle == 0 {
		start, _ := itemRange(lines, d.repos.Content[0])
		return indentOf(lines[start])
	}
	if d.reposKey != nil {
		return d.reposKey.Column - 1 + 2
	}
	return 2
}

// itemRange returns the 0-based inclusive line range of a block sequence
// item. Trailing blank and comment lines are left to whatever follows.
func itemRange(lines []string, item *yaml.Node) (int, int) {
	start := item.Line - 1
	if start > 0 && strings.TrimSpace(lines[start-1]) == "-" {
		start--
	}
	col := indentOf(lines[start])

	end := start
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if indentOf(lines[i]) <= col {
			break
		}
		end = i
	}
	return start, end
}

// scanDisabled finds runs of comment lines that decode to hook sources. A
// run ends where the column of the "#" marker changes, so blocks commented
// out separately stay separate.
func scanDisabled(lines []string) []DisabledBlock {
	var blocks []DisabledBlock
	i := 0
	for i < len(lines) {
		if !isComment(lines[i]) {
			i++
			continue
		}
		runStart := i
		marker := indentOf(lines[i])
		for i < len(lines) && isComment(lines[i]) && indentOf(lines[i]) == marker {
			i++
		}
		blocks = append(blocks, blocksInRun(lines, runStart, i)...)
	}
	return blocks
}

// blocksInRun decodes hook sources out of the comment lines [start, end).
func blocksInRun(lines []string, start, end int) []DisabledBlock {
	var blocks []DisabledBlock
	k := start
	for k < end {
		if !startsSource(uncomment(lines[k], false)) {
			k++
			continue
		}
		found := false
		for stop := end; stop > k; stop-- {
			sources, ok := decodeDisabled(lines[k:stop])
			if !ok {
				continue
			}
			blocks = append(blocks, DisabledBlock{
				StartLine: k + 1,
				EndLine:   stop,
				Sources:   sources,
			})
			k = stop
			found = true
			break
		}
		if !found {
			k++
		}
	}
	return blocks
}

func decodeDisabled(commented []string) ([]HookSource, bool) {
	content := dedent(uncommentAll(commented))
	text := []byte(strings.Join(content, "\n"))
	first := strings.TrimSpace(content[0])

	var sources []HookSource
	switch {
	case strings.HasPrefix(first, "repos:"):
		var cfg Config
		if err := decodeKnown(text, &cfg); err != nil {
			return nil, false
		}
		sources = cfg.Repos
	case strings.HasPrefix(first, "- "):
		if err := decodeKnown(text, &sources); err != nil {
			return nil, false
		}
	default:
		var src HookSource
		if err := decodeKnown(text, &src); err != nil {
			return nil, false
		}
		sources = []HookSource{src}
	}

	if len(sources) == 0 {
		return nil, false
	}
	for _, src := range sources {
		if src.Repo == "" || len(src.Hooks) == 0 {
			return nil, false
		}
	}
	return sources, true
}

func startsSource(content string) bool {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "- ")
	trimmed = strings.TrimSpace(trimmed)
	return strings.HasPrefix(trimmed, "repo:") || strings.HasPrefix(trimmed, "repos:")
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// decodeKnown decodes a disabled block, rejecting keys the configuration
// types do not declare. Prose written as "key: value" after a commented-out
// source therefore ends the block instead of joining it.
func decodeKnown(text []byte, out interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(text))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// uncommentAll strips the "#" marker from every line. The space after the
// marker is dropped only when all non-blank lines have one, so blocks
// commented as "#- repo:" keep their relative indentation.
func uncommentAll(lines []string) []string {
	spaced := true
	for _, line := range lines {
		idx := strings.Index(line, "#")
		if idx < 0 {
			continue
		}
		body := strings.TrimRight(line[idx+1:], "\r")
		if body != "" && !strings.HasPrefix(body, " ") {
			spaced = false
			break
		}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = uncomment(line, spaced)
	}
	return out
}

// uncomment drops the first "#" marker and, when spaced, the single space
// following it.
func uncomment(line string, spaced bool) string {
	idx := strings.Index(line, "#")
	if idx < 0 {
		return line
	}
	rest := line[idx+1:]
	if spaced {
		rest = strings.TrimPrefix(rest, " ")
	}
	return line[:idx] + rest
}

// dedent shifts lines left by the indentation of the least indented YAML
// line. Comment lines never shift further than that.
func dedent(lines []string) []string {
	min := -1
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if ind := indentOf(line); min < 0 || ind < min {
			min = ind
		}
	}
	if min < 0 {
		min = 0
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = ""
			continue
		}
		cut := indentOf(line)
		if cut > min {
			cut = min
		}
		out[i] = line[cut:]
	}
	return out
}

// asSequenceItem turns a dedented "repo:" mapping into a list item.
func asSequenceItem(lines []string) []string {
	first := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			first = i
			break
		}
	}
	if first < 0 || !strings.HasPrefix(lines[first], "repo:") {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case line == "" || i < first:
			out[i] = line
		case i == first:
			out[i] = "- " + line
		default:
			out[i] = "  " + line
		}
	}
	return out
}

func reindent(lines []string, col int) []string {
	pad := strings.Repeat(" ", col)
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		out[i] = pad + line
	}
	return out
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func splitLines(src []byte) []string {
	return strings.Split(string(src), "\n")
}

func trailingCR(line string) string {
	if strings.HasSuffix(line, "\r") {
		return "\r"
	}
	return ""
}

// reposValueIsEmpty reports whether a "repos:" line has no inline value.
func reposValueIsEmpty(line string) bool {
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return false
	}
	return strings.TrimSpace(value) == ""
}
