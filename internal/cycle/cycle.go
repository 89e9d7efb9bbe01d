// Package cycle identifies calendar-month settlement cycles.
//
// A cycle key is a "YYYY-MM" string naming one calendar month. Recurring
// obligations carry the key of the cycle they were last settled in; comparing
// it against the key for "now" answers "already handled this month".
package cycle

import (
	"fmt"
	"time"
)

// KeyFor returns the cycle key for the calendar month containing t,
// e.g. "2024-03". Keys order lexicographically the same as their months.
func KeyFor(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// IsCurrent reports whether key names the calendar month containing now.
// An empty key is never current.
func IsCurrent(key string, now time.Time) bool {
	if key == "" {
		return false
	}
	return key == KeyFor(now)
}

// DaysInMonth returns the number of days in the calendar month containing t.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}

// ClampDueDay clamps a stored due day (1-31) to a valid day of the month
// containing ref. The stored due day itself is never mutated; a due day of 31
// stays 31 in a 30-day month and only clamps when suggesting a concrete date.
func ClampDueDay(day int, ref time.Time) int {
	if day < 1 {
		day = 1
	}
	if max := DaysInMonth(ref); day > max {
		return max
	}
	return day
}

// SuggestOccurrence returns the default occurrence date for settling an
// obligation with the given due day during the month containing now.
func SuggestOccurrence(dueDay int, now time.Time) time.Time {
	day := ClampDueDay(dueDay, now)
	return time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location())
}
