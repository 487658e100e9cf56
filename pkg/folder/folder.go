// Package folder normalises user tag text into folder keys and display names.
package folder

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Root is the key of the implicit "Unfiled" folder.
	Root = ""
	// MaxLen caps the length of a folder key.
	MaxLen = 48

	unfiled = "unfiled"
)

var (
	tagMarkers     = regexp.MustCompile(`^[#\s]+`)
	disallowed     = regexp.MustCompile(`[^a-z0-9 _/-]+`)
	whitespace     = regexp.MustCompile(`\s+`)
	separatorRun   = regexp.MustCompile(`[-_/]{2,}`)
	edgeSeparators = regexp.MustCompile(`^[-_/]+|[-_/]+$`)
)

// Normalize turns raw tag text into a folder key. Empty input and the literal
// "unfiled" both map to Root.
func Normalize(raw string) string {
	s := tagMarkers.ReplaceAllString(strings.TrimSpace(raw), "")
	s = strings.ToLower(s)
	s = disallowed.ReplaceAllString(s, " ")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	s = strings.ReplaceAll(s, " ", "-")
	s = separatorRun.ReplaceAllStringFunc(s, func(run string) string {
		return run[:1]
	})
	s = edgeSeparators.ReplaceAllString(s, "")
	if len(s) > MaxLen {
		s = edgeSeparators.ReplaceAllString(s[:MaxLen], "")
	}
	if s == unfiled {
		return Root
	}
	return s
}

// DisplayName renders a folder key for humans.
func DisplayName(slug string) string {
	if slug == Root {
		return "Unfiled"
	}
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
