// Package validate checks user input before it is placed in a request URL.
package validate

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/clydeofficial/tdk-sozluk/pkg/dicterr"
)

// MaxTermLength is the longest accepted term, counted in characters after
// trimming.
const MaxTermLength = 200

const defaultField = "term"

// Word trims term and checks that it is non-empty and not longer than
// MaxTermLength. field names the input in error messages; empty means "term".
func Word(term, field string) (string, error) {
	if field == "" {
		field = defaultField
	}
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return "", dicterr.NewValidation(field, "%s cannot be empty", field)
	}
	if !utf8.ValidString(trimmed) {
		return "", dicterr.NewValidation(field, "%s must be valid UTF-8", field)
	}
	if utf8.RuneCountInString(trimmed) > MaxTermLength {
		return "", dicterr.NewValidation(field, "%s is too long (maximum %d characters)", field, MaxTermLength)
	}
	return trimmed, nil
}

var controlChars = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")

// Sanitize removes control characters other than tab, newline and carriage
// return, then trims surrounding whitespace.
func Sanitize(input string) string {
	return strings.TrimSpace(controlChars.ReplaceAllString(input, ""))
}

// Keys fails when given holds a key that is not in allowed.
func Keys(given, allowed []string) error {
	permitted := make(map[string]struct{}, len(allowed))
	for _, key := range allowed {
		permitted[key] = struct{}{}
	}
	var invalid []string
	for _, key := range given {
		if _, ok := permitted[key]; !ok {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	sort.Strings(invalid)
	return dicterr.NewValidation("options", "invalid options: %s. Allowed: %s",
		strings.Join(invalid, ", "),
		strings.Join(allowed, ", "),
	)
}
