package utils

import (
	"time"
)

// Clock formats t as HH:MM in loc; a nil loc means local time.
func Clock(t time.Time, loc *time.Location) string {
	return in(t, loc).Format("15:04")
}

// ClockSeconds formats t as HH:MM:SS in loc; a nil loc means local time.
func ClockSeconds(t time.Time, loc *time.Location) string {
	return in(t, loc).Format("15:04:05")
}

// Iso8601FromTime converts t to RFC3339 in UTC, or "" for the zero time.
func Iso8601FromTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func in(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t.Local()
	}
	return t.In(loc)
}
