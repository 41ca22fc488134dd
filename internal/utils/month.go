package utils

import (
	"regexp"
	"time"
)

const (
	// DateLayout is the calendar-day format used throughout the persisted
	// document and the portable import/export format.
	DateLayout = "2006-01-02"
	// MonthLayout is the month-key format of the payment status log.
	MonthLayout = "2006-01"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate reports whether s is a well-formed yyyy-mm-dd calendar day.
func IsValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// MonthKey returns the YYYY-MM key for a point in time.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// MonthKeyOfDate returns the YYYY-MM prefix of a yyyy-mm-dd date string.
func MonthKeyOfDate(date string) string {
	if len(date) < len(MonthLayout) {
		return date
	}
	return date[:len(MonthLayout)]
}

// Today returns the current calendar day in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}
