// Package matcher infers the common file name prefix of a directory and
// matches file names against it.
package matcher

import (
	"strings"

	"prefixtrim/internal/scanner"
)

// DefaultPrefixLength is the number of leading characters taken from a
// file name when inferring a prefix.
const DefaultPrefixLength = 3

// MatchResult represents the result of matching a file name against a prefix.
type MatchResult struct {
	Matched bool
	NewName string // File name with the prefix removed (empty if not matched)
}

// InferPrefix returns the first DefaultPrefixLength characters of the first
// candidate's name. Names shorter than that yield the whole name.
// It returns false when there are no candidates.
func InferPrefix(candidates []scanner.SourceFile) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	return leading(candidates[0].Name, DefaultPrefixLength), true
}

// leading returns at most n runes from the start of s.
func leading(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Canonicalize trims surrounding whitespace and upper-cases the prefix.
// All name and content matching is done against this form.
func Canonicalize(prefix string) string {
	return strings.ToUpper(strings.TrimSpace(prefix))
}

// Match reports whether name starts with the canonical prefix (case-sensitive)
// and, if so, the name with exactly that many leading bytes removed.
// An empty prefix never matches.
func Match(name, canonicalPrefix string) *MatchResult {
	if canonicalPrefix == "" || !strings.HasPrefix(name, canonicalPrefix) {
		return &MatchResult{Matched: false}
	}
	return &MatchResult{
		Matched: true,
		NewName: name[len(canonicalPrefix):],
	}
}
