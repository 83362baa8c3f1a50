package config

import (
	"fmt"

	"github.com/moby/patternmatcher"
)

// HookMatch is a hook entry together with the source supplying it.
type HookMatch struct {
	Source HookSource
	Hook   HookEntry
}

// FilterHooks selects hook entries whose id matches the patterns. Patterns
// follow .dockerignore rules: globs, "**", and "!" exclusions evaluated in
// order. No patterns selects every hook.
func FilterHooks(sources []HookSource, patterns []string) ([]HookMatch, error) {
	var pm *patternmatcher.PatternMatcher
	if len(patterns) > 0 {
		var err error
		pm, err = patternmatcher.New(patterns)
		if err != nil {
			return nil, fmt.Errorf("invalid hook pattern: %w", err)
		}
	}

	var matches []HookMatch
	for _, src := range sources {
		for _, hook := range src.Hooks {
			if pm != nil {
				ok, err := pm.MatchesOrParentMatches(hook.ID)
				if err != nil {
					return nil, fmt.Errorf("match hook '%s': %w", hook.ID, err)
				}
				if !ok {
					continue
				}
			}
			matches = append(matches, HookMatch{Source: src, Hook: hook})
		}
	}
	return matches, nil
}
