package util

import (
	"strings"
	"unicode"
)

// NormalizeStr lowercases the input and drops every kind of whitespace,
// including non-breaking spaces.
func NormalizeStr(input string) string {
	var result string
	result = input

	result = strings.Join(strings.Fields(result), "")
	result = strings.ToLower(result)

	result = strings.ReplaceAll(result, "\u00a0", "")
	result = strings.ReplaceAll(result, "&nbsp;", "")
	result = strings.ReplaceAll(result, "&#160;", "")

	return result
}

// DigitsOnly keeps the ASCII and Unicode decimal digits of the input.
func DigitsOnly(input string) string {
	var b strings.Builder
	for _, r := range input {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}
