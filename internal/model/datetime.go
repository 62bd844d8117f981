package model

import (
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the shape of deadlineTime and alarmTime values.
const DateTimeLayout = "2006-01-02T15:04"

// CreatedAtLayout is the shape of createdAt values.
const CreatedAtLayout = time.RFC3339

var dateTimeInputLayouts = []string{
	DateTimeLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDateTime reads a local date-time in any accepted input shape.
// RFC 3339 values carry their own zone; everything else is read in loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeInputLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date-time %q: %w", s, ErrInvalidInput)
}

// NormalizeDateTime converts user input to DateTimeLayout. Blank input stays blank.
func NormalizeDateTime(s string, loc *time.Location) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	t, err := ParseDateTime(s, loc)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format(DateTimeLayout), nil
}

// NextID returns a millisecond id that is strictly greater than last.
func NextID(now time.Time, last int64) int64 {
	id := now.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}
