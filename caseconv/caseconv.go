// Package caseconv implements the case-conversion half of
// original_source/rs-core/string.hpp: name_breakdown and the
// name_to_*_case family, adapted to the Go-idiomatic names
// camel/snake/kebab/title/sentence case that cover the same ground.
package caseconv

import (
	"strings"
	"unicode"
)

// Words breaks an identifier into its constituent words, splitting on
// underscores/hyphens/spaces, on lower-to-upper case transitions, and
// before the last capital of an upper-case run followed by a lower-case
// letter ("URLPath" -> "URL", "Path"), matching string.hpp's
// name_breakdown. Digits do not start a new word.
func Words(name string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
			continue
		case i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) && unicode.IsLetter(runes[i-1]):
			flush()
		case i > 0 && unicode.IsUpper(r) && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// Snake joins Words(name) lower-cased with underscores, matching
// string.hpp's name_to_lower_case (default delimiter '_').
func Snake(name string) string {
	return strings.ToLower(strings.Join(Words(name), "_"))
}

// Kebab joins Words(name) lower-cased with hyphens.
func Kebab(name string) string {
	return strings.ToLower(strings.Join(Words(name), "-"))
}

// ScreamingSnake joins Words(name) upper-cased with underscores, matching
// string.hpp's name_to_upper_case.
func ScreamingSnake(name string) string {
	return strings.ToUpper(strings.Join(Words(name), "_"))
}

// Title joins Words(name) with each word capitalized and no delimiter,
// matching string.hpp's name_to_title_case.
func Title(name string) string {
	words := Words(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, "")
}

// Camel is Title with the first word lower-cased, matching string.hpp's
// name_to_camel_case.
func Camel(name string) string {
	words := Words(name)
	for i, w := range words {
		if i == 0 {
			words[i] = strings.ToLower(w)
		} else {
			words[i] = capitalize(w)
		}
	}
	return strings.Join(words, "")
}

// Sentence joins Words(name) lower-cased with spaces, capitalizing only
// the first word, matching string.hpp's name_to_sentence_case.
func Sentence(name string) string {
	words := Words(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	if len(words) > 0 {
		words[0] = capitalize(words[0])
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	for i := 1; i < len(r); i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}
