package util

import (
	"strings"
	"time"
)

// ParseDate parses a calendar date in YYYY-MM-DD form, ignoring surrounding whitespace.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(s))
}

// DaysBetween returns the number of whole days from a to b; negative when b is before a.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	return int((b.Unix() - a.Unix()) / 86400)
}
