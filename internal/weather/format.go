package weather

import (
	"fmt"
	"strings"
	"time"
)

const humanDateLayout = "Monday 02 January 2006"

// isoLayouts are tried in order. Only the first is a pure calendar date; the
// rest accept the timestamped rows some exports carry.
var isoLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
}

// FormatDate renders an ISO-8601 date as e.g. "Tuesday 06 July 2021".
// When the input carries an offset the calendar date is taken in that offset.
func FormatDate(iso string) (string, error) {
	t, err := parseISODate(iso)
	if err != nil {
		return "", err
	}
	return t.Format(humanDateLayout), nil
}

func parseISODate(iso string) (time.Time, error) {
	s := strings.TrimSpace(iso)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, iso)
}
