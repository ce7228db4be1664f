package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases the text, strips diacritics, turns punctuation other
// than '-' and '_' into spaces and collapses whitespace.
func Normalize(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		result = text
	}

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' || r == '_' {
			return r
		}
		return ' '
	}, result)

	return strings.Join(strings.Fields(result), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
