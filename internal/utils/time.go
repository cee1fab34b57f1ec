package utils

import (
	"strings"
	"time"
)

const layoutDateTime = "2006-01-02 15:04:05"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// DisplayTimestamp renders a stored created_at for the admin pages.
// Values that do not parse are returned unchanged.
func DisplayTimestamp(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", layoutDateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			return FormatDateTime(t)
		}
	}
	return s
}
