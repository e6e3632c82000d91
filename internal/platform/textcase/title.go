package textcase

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

var separatorRuns = regexp.MustCompile(`[_.\-]+`)

// Title turns "icehockey_sweden-shl" into "Icehockey Sweden Shl".
// Separator runs collapse to one space and only the first letter of each
// word is upper-cased; the rest of the word is left as provided.
func Title(raw string) string {
	words := strings.Fields(separatorRuns.ReplaceAllString(raw, " "))
	if len(words) == 0 {
		return ""
	}

	for i, word := range words {
		words[i] = UpperFirst(word)
	}

	return strings.Join(words, " ")
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Fold returns the Unicode case-folded form of s for caseless comparison.
func Fold(s string) string {
	// Casers keep state and cannot be shared between goroutines.
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under Unicode case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// ContainsFold reports whether sub is within s under Unicode case folding.
func ContainsFold(s, sub string) bool {
	return strings.Contains(Fold(s), Fold(sub))
}
