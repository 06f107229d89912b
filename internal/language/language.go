// Package language defines the source languages prefixtrim understands and
// the delimiter rules used to strip a prefix from their contents.
package language

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoLanguageSelected is returned when no language was chosen.
var ErrNoLanguageSelected = errors.New("no language selected: choose java or swift")

// Language is one of the supported source languages.
type Language string

const (
	Java  Language = "java"
	Swift Language = "swift"
)

// All lists the supported languages in display order.
func All() []Language {
	return []Language{Java, Swift}
}

// Parse resolves a language tag case-insensitively.
func Parse(s string) (Language, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if tag == "" {
		return "", ErrNoLanguageSelected
	}
	for _, lang := range All() {
		if string(lang) == tag {
			return lang, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q: must be java or swift", s)
}

// String returns the language tag.
func (l Language) String() string {
	return string(l)
}

// Extension returns the file extension, including the leading dot.
func (l Language) Extension() string {
	return "." + string(l)
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == Java || l == Swift
}

// PrefixRule strips the prefix when it directly follows Delimiter.
type PrefixRule struct {
	Delimiter string
}

// Apply replaces every "<delimiter><prefix>" with "<delimiter>" and returns
// the new text and the number of replacements.
func (r PrefixRule) Apply(text, prefix string) (string, int) {
	needle := r.Delimiter + prefix
	n := strings.Count(text, needle)
	if n == 0 {
		return text, 0
	}
	return strings.ReplaceAll(text, needle, r.Delimiter), n
}

var (
	javaRules = []PrefixRule{
		{Delimiter: " "},
		{Delimiter: "("},
		{Delimiter: ")"},
		{Delimiter: ","},
		{Delimiter: "="},
	}
	swiftRules = []PrefixRule{
		{Delimiter: " "},
		{Delimiter: ":"},
		{Delimiter: "("},
		{Delimiter: ","},
		{Delimiter: "!"},
		{Delimiter: "="},
	}
)

// Rules returns the ordered substitution rules for the language.
// The returned slice is a copy.
func (l Language) Rules() []PrefixRule {
	var src []PrefixRule
	switch l {
	case Java:
		src = javaRules
	case Swift:
		src = swiftRules
	default:
		return nil
	}
	rules := make([]PrefixRule, len(src))
	copy(rules, src)
	return rules
}
