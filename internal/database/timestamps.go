package database

import (
	"fmt"
	"time"
)

// TimeLayout is how channel timestamps are stored: UTC, space-separated,
// so text comparison in SQL matches time order.
const TimeLayout = "2006-01-02 15:04:05.999999999-07:00"

// Accepted on read. Rows written by older deployments are naive UTC in
// ISO 8601 with a "T" separator.
var timeLayouts = []string{
	TimeLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a stored timestamp in any accepted layout. Values without
// an offset are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
