// Package english implements the English-specific text-formatting
// helpers of original_source/rs-core/english.hpp: pluralization,
// cardinal/ordinal numbers, and comma-separated list joining with a
// trailing conjunction ("a, b, and c").
package english

import (
	"strconv"
	"strings"
)

var irregularPlurals = map[string]string{
	"child":  "children",
	"foot":   "feet",
	"man":    "men",
	"mouse":  "mice",
	"person": "people",
	"tooth":  "teeth",
	"woman":  "women",
}

var uninflected = map[string]bool{
	"deer": true, "fish": true, "sheep": true, "series": true, "species": true,
}

// Plural returns the English plural of noun, matching english.hpp's
// plural: a small irregular-noun table, -y -> -ies, sibilant-ending
// nouns take -es, and the default -s.
func Plural(noun string) string {
	if noun == "" {
		return noun
	}
	lower := strings.ToLower(noun)
	if uninflected[lower] {
		return noun
	}
	if p, ok := irregularPlurals[lower]; ok {
		return matchCase(noun, p)
	}
	switch {
	case strings.HasSuffix(lower, "y") && len(noun) > 1 && !isVowel(rune(lower[len(lower)-2])):
		return noun[:len(noun)-1] + "ies"
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"), strings.HasSuffix(lower, "z"),
		strings.HasSuffix(lower, "ch"), strings.HasSuffix(lower, "sh"):
		return noun + "es"
	default:
		return noun + "s"
	}
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func matchCase(original, replacement string) string {
	if original == strings.ToUpper(original) {
		return strings.ToUpper(replacement)
	}
	if len(original) > 0 && original[0] >= 'A' && original[0] <= 'Z' {
		return strings.ToUpper(replacement[:1]) + replacement[1:]
	}
	return replacement
}

// NumberOf formats "n name"/"n plural_name", falling back to the
// cardinal word form of n below threshold, matching english.hpp's
// number_of.
func NumberOf(n int, name, pluralName string, threshold int) string {
	word := noun(n, name, pluralName)
	if n < threshold {
		return Cardinal(n) + " " + word
	}
	return strconv.Itoa(n) + " " + word
}

func noun(n int, name, pluralName string) string {
	if n == 1 {
		return name
	}
	if pluralName != "" {
		return pluralName
	}
	return Plural(name)
}

var cardinals = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen", "twenty",
}

// Cardinal spells out n in words up to twenty, matching english.hpp's
// cardinal; above that it falls back to the decimal digits.
func Cardinal(n int) string {
	if n >= 0 && n < len(cardinals) {
		return cardinals[n]
	}
	return strconv.Itoa(n)
}

var ordinalSuffixes = [...]string{"th", "st", "nd", "rd", "th", "th", "th", "th", "th", "th"}

// Ordinal returns the ordinal suffix form of n ("1st", "2nd", "11th"),
// matching english.hpp's ordinal.
func Ordinal(n int) string {
	mod100 := n % 100
	if mod100 >= 11 && mod100 <= 13 {
		return strconv.Itoa(n) + "th"
	}
	return strconv.Itoa(n) + ordinalSuffixes[n%10]
}

// CommaList joins items with ", " and the conjunction conj before the
// last item, matching english.hpp's comma_list. An empty conj yields a
// plain comma-separated list.
func CommaList(items []string, conj string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		if conj == "" {
			return items[0] + ", " + items[1]
		}
		return items[0] + " " + conj + " " + items[1]
	default:
		head := strings.Join(items[:len(items)-1], ", ")
		if conj == "" {
			return head + ", " + items[len(items)-1]
		}
		return head + ", " + conj + " " + items[len(items)-1]
	}
}
