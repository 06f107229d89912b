package scanner

import (
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIgnorePatterns returns file names that are never candidates:
// editor backups and the temp files written by a staged trim.
func DefaultIgnorePatterns() []string {
	return []string{
		".prefixtrim-*",
		".~*",
		"*~",
	}
}

// FileFilter excludes files whose name matches one of its patterns.
type FileFilter struct {
	patterns []string
}

// NewFileFilter creates a FileFilter with the default patterns plus extra.
func NewFileFilter(extra []string) *FileFilter {
	patterns := DefaultIgnorePatterns()
	for _, p := range extra {
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return &FileFilter{
		patterns: patterns,
	}
}

// ShouldIgnore reports whether name matches any pattern.
// Invalid patterns never match; use ValidatePattern to reject them early.
func (f *FileFilter) ShouldIgnore(name string) bool {
	for _, pattern := range f.patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the filter's patterns.
func (f *FileFilter) Patterns() []string {
	result := make([]string, len(f.patterns))
	copy(result, f.patterns)
	return result
}

// ValidatePattern reports whether pattern is a well-formed glob.
func ValidatePattern(pattern string) bool {
	return doublestar.ValidatePattern(pattern)
}
