// Package glob wraps doublestar pattern matching for include filters.
// Paths are matched in slash-separated form relative to the copy root.
package glob

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchAll is the default include pattern.
const MatchAll = "**"

// Matcher tests walk-relative paths against a compiled include pattern.
type Matcher struct {
	pattern string
}

// New validates pattern and returns a Matcher. An empty pattern matches everything.
func New(pattern string) (Matcher, error) {
	if pattern == "" {
		pattern = MatchAll
	}
	if !doublestar.ValidatePattern(pattern) {
		return Matcher{}, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return Matcher{pattern: pattern}, nil
}

// MustNew is New for patterns known to be valid.
func MustNew(pattern string) Matcher {
	m, err := New(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Pattern returns the pattern in effect.
func (m Matcher) Pattern() string {
	if m.pattern == "" {
		return MatchAll
	}
	return m.pattern
}

// Match reports whether rel (OS or slash separated) matches the pattern.
func (m Matcher) Match(rel string) bool {
	ok, err := doublestar.Match(m.Pattern(), filepath.ToSlash(rel))
	return err == nil && ok
}
