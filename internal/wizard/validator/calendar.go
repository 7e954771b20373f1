package validator

import (
	"regexp"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func ParseDate(s string) (time.Time, bool) {
	if len(s) != len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func IsDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

func IsClock(s string) bool {
	return clockRegex.MatchString(s)
}

// ClockBefore reports whether HH:MM a is earlier than b. Both must be valid.
func ClockBefore(a, b string) bool {
	return a < b
}

// Today truncates now to a calendar day in now's own location and returns it
// as a UTC date, comparable with ParseDate results.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
