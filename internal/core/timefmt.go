// AngelaMos | 2026
// timefmt.go

package core

import (
	"fmt"
	"strings"
	"time"
)

// Accepted timestamp layouts. Values without an offset are UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an ISO-8601 date-time as sent by clients.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp: %w", ErrInvalidFormat)
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf(
		"timestamp %q is not ISO-8601 (expected YYYY-MM-DDTHH:MM:SS[Z|±HH:MM]): %w",
		value,
		ErrInvalidFormat,
	)
}

// ParseOptionalTimestamp treats nil and "" as absent.
func ParseOptionalTimestamp(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}

	t, err := ParseTimestamp(*value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func UTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
