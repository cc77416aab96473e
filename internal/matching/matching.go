// Package matching is the shared keyword heuristic: case-insensitive
// substring tests over lightly normalised text. Every rule that asks "does
// this exercise name mention X" goes through here.
package matching

import "strings"

// Matcher decides whether text mentions a keyword.
type Matcher interface {
	Match(text, keyword string) bool
}

// Substring is the default Matcher.
type Substring struct{}

func (Substring) Match(text, keyword string) bool {
	k := Normalize(keyword)
	if k == "" {
		return false
	}
	return strings.Contains(Normalize(text), k)
}

// Default is used by the package-level helpers.
var Default Matcher = Substring{}

var normalizer = strings.NewReplacer("-", " ", "_", " ", "/", " ", "\t", " ", "\n", " ")

// Normalize lower-cases, folds separators to spaces and collapses runs of
// whitespace, so "Pull-Up", "pull_up" and "pull  up" compare equal.
func Normalize(s string) string {
	s = normalizer.Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

// Contains reports whether text mentions keyword.
func Contains(text, keyword string) bool {
	return Default.Match(text, keyword)
}

// ContainsAny reports whether text mentions any keyword.
func ContainsAny(text string, keywords []string) bool {
	_, ok := FirstMatch(text, keywords)
	return ok
}

// FirstMatch returns the first keyword mentioned in text.
func FirstMatch(text string, keywords []string) (string, bool) {
	for _, k := range keywords {
		if Default.Match(text, k) {
			return k, true
		}
	}
	return "", false
}

// CountDistinct counts how many distinct keywords text mentions.
func CountDistinct(text string, keywords []string) int {
	seen := map[string]bool{}
	for _, k := range keywords {
		nk := Normalize(k)
		if nk == "" || seen[nk] {
			continue
		}
		if Default.Match(text, k) {
			seen[nk] = true
		}
	}
	return len(seen)
}

// AnyMentions reports whether any of texts mentions keyword.
func AnyMentions(texts []string, keyword string) bool {
	for _, t := range texts {
		if Default.Match(t, keyword) {
			return true
		}
	}
	return false
}

// Join lower-cases and space-joins free-text fields for a single scan.
func Join(parts ...string) string {
	return Normalize(strings.Join(parts, " "))
}
