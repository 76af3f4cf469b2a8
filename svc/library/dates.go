package library

import (
	"fmt"
	"strings"
	"time"
)

var inputLayouts = []string{time.DateOnly, time.RFC3339Nano}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseFormDate converts a YYYY-MM-DD form value or an RFC 3339 string to
// WireLayout in UTC.
func ParseFormDate(s string) (string, error) {
	t, err := parseTime(s)
	if err != nil {
		return "", err
	}
	return t.Format(WireLayout), nil
}
