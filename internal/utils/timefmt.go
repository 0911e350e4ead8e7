package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var backendLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04",
}

// CombineDateTime joins a form date and clock time into the timestamp format the
// backend expects, e.g. "2025-07-01" + "09:30" -> "2025-07-01T09:30:00".
func CombineDateTime(date, clock string) string {
	return date + "T" + clock + ":00"
}

// HoursBetween parses two clock times on the same date and returns end-start in hours.
func HoursBetween(date, start, end string) (float64, error) {
	s, err := time.Parse(DateLayout+"T"+ClockLayout, date+"T"+strings.TrimSpace(start))
	if err != nil {
		return 0, fmt.Errorf("parse start time %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout+"T"+ClockLayout, date+"T"+strings.TrimSpace(end))
	if err != nil {
		return 0, fmt.Errorf("parse end time %q: %w", end, err)
	}
	return e.Sub(s).Hours(), nil
}

// ParseBackendTime accepts the timestamp shapes the backend emits, with or
// without a zone.
func ParseBackendTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range backendLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
}

// Clock formats a backend timestamp as HH:MM, falling back to the raw value.
func Clock(v string) string {
	t, err := ParseBackendTime(v)
	if err != nil {
		return v
	}
	return t.Format(ClockLayout)
}

// Today returns the local date in form format.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// LongDate renders a form date as "Monday, January 2, 2006".
func LongDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}
