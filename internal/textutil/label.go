package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName converts an object or action identifier into a label fit for
// table output. Underscores, hyphens, dots, and lower-to-upper camel case
// transitions split words; the result is title cased.
func DisplayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unnamed"
	}

	var b strings.Builder
	prevSpace := true
	var prev rune
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			if unicode.IsUpper(r) && unicode.IsLower(prev) && !prevSpace {
				b.WriteRune(' ')
			}
			b.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				b.WriteRune(' ')
				prevSpace = true
			}
		}
		prev = r
	}

	label := strings.TrimSpace(b.String())
	if label == "" {
		return "Unnamed"
	}
	return cases.Title(language.Und).String(label)
}
