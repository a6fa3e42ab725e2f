package utils

import (
	"fmt"
	"time"
)

var ageUnits = []struct {
	limit  time.Duration
	size   time.Duration
	suffix string
}{
	{time.Minute, time.Second, "s"},
	{time.Hour, time.Minute, "m"},
	{24 * time.Hour, time.Hour, "h"},
	{7 * 24 * time.Hour, 24 * time.Hour, "d"},
	{30 * 24 * time.Hour, 7 * 24 * time.Hour, "w"},
	{365 * 24 * time.Hour, 30 * 24 * time.Hour, "mo"},
}

// FormatAge renders how long ago t was relative to now, e.g. "3h ago".
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	age := now.Sub(t)
	if age < 0 {
		return "0s ago"
	}
	for _, u := range ageUnits {
		if age < u.limit {
			return fmt.Sprintf("%d%s ago", int(age/u.size), u.suffix)
		}
	}
	return fmt.Sprintf("%dy ago", int(age/(365*24*time.Hour)))
}
