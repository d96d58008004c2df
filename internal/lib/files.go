package lib

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchesAnyPattern reports whether path matches at least one of the given
// glob patterns. Empty patterns are skipped.
func MatchesAnyPattern(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("matching pattern %q against %q: %w", pattern, path, err)
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}
