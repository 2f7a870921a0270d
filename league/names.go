package league

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical normalizes a "Last, First" player key: surrounding space trimmed,
// inner runs of space collapsed, every run of letters title-cased. Any
// non-letter starts a new word, so "o'neil" becomes "O'Neil" and
// "smith-jones" becomes "Smith-Jones". The dataset and every lookup go
// through the same function so keys always agree.
func Canonical(name string) string {
	return titleLetterRuns(strings.Join(strings.Fields(name), " "))
}

// PlayerKey builds the canonical key for a last and first name.
func PlayerKey(last, first string) string {
	return Canonical(strings.TrimSpace(last) + ", " + strings.TrimSpace(first))
}

func titleLetterRuns(s string) string {
	// Caser.String resets the caser, so one serves every run of this call.
	caser := cases.Title(language.English)

	var b strings.Builder
	b.Grow(len(s))
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(s[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}
