package notice

import "time"

// TimeFormat is the fixed timestamp format used in notice records.
// It is human-readable and sorts chronologically as a plain string.
const TimeFormat = "2006-01-02 15:04:05"

// FormatTime renders t in the notice timestamp format.
func FormatTime(t time.Time) string {
	return t.Format(TimeFormat)
}

// ParseTime parses a timestamp in the notice timestamp format, in local time.
func ParseTime(value string) (time.Time, error) {
	return time.ParseInLocation(TimeFormat, value, time.Local)
}
