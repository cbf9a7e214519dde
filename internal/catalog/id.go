package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// GenerateID derives the stable catalog id for a record:
// lowercase {surname}{year}{first-title-word} with punctuation stripped.
// The function is pure; identical inputs always yield the same id, which is
// what makes duplicate detection by id meaningful.
func GenerateID(surname string, year int, firstTitleWord string) (string, error) {
	s := idToken(surname)
	if s == "" {
		return "", fmt.Errorf("author %q: %w", surname, ErrDegenerateIdentifier)
	}
	w := idToken(firstTitleWord)
	if w == "" {
		return "", fmt.Errorf("title word %q: %w", firstTitleWord, ErrDegenerateIdentifier)
	}
	return s + strconv.Itoa(year) + w, nil
}

// idToken lowercases the input, strips everything that is not a letter,
// digit, or whitespace, and returns the first remaining whitespace-delimited
// field. "Smith, J." and "smith j" both reduce to "smith".
func idToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	fields := strings.Fields(b.String())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
