package utils

import "time"

const dateLayout = "2006-01-02"

// FormatDate renders t as a calendar date (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
