package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldSearch lower-cases s and strips diacritics, so "João" and "joao" compare equal.
func FoldSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// MatchesSearch reports whether any of fields contains term, ignoring case and accents.
// An empty term matches everything.
func MatchesSearch(term string, fields ...string) bool {
	needle := FoldSearch(term)
	if needle == "" {
		return true
	}

	for _, f := range fields {
		if strings.Contains(FoldSearch(f), needle) {
			return true
		}
	}
	return false
}

// FilterSearch keeps the items whose searchable fields match term. The input is not modified.
func FilterSearch[T any](items []T, term string, fields func(T) []string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if MatchesSearch(term, fields(item)...) {
			out = append(out, item)
		}
	}
	return out
}

// CompareNames orders names the way the list screens show them.
func CompareNames(a, b string) int {
	return strings.Compare(FoldSearch(a), FoldSearch(b))
}
