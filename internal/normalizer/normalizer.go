// Package normalizer strips a prefix from source text wherever it directly
// follows one of a language's delimiters.
package normalizer

import (
	"prefixtrim/internal/language"
)

// Result is the outcome of normalizing one file's content.
type Result struct {
	Content      string
	Replacements int // Total occurrences removed across all rules
}

// Normalize applies the language's rules in order to content. Each rule is a
// global, case-sensitive literal replacement of "<delimiter><prefix>" with
// "<delimiter>"; later rules see the output of earlier ones.
//
// Parameters:
//   - content: the original file text
//   - lang: selects the ordered rule list
//   - canonicalPrefix: the upper-cased prefix; empty leaves content unchanged
func Normalize(content string, lang language.Language, canonicalPrefix string) Result {
	result := Result{Content: content}
	if canonicalPrefix == "" {
		return result
	}

	for _, rule := range lang.Rules() {
		var n int
		result.Content, n = rule.Apply(result.Content, canonicalPrefix)
		result.Replacements += n
	}
	return result
}
