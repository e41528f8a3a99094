package time_parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var layouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp reads a timestamp from a query string. It accepts the
// layouts above and unix time in seconds or milliseconds (values above 1e12
// are milliseconds). Layouts without a zone are read as UTC. The result is
// always UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	if unix, err := strconv.ParseInt(value, 10, 64); err == nil {
		if unix > 1e12 {
			return time.UnixMilli(unix).UTC(), nil
		}

		return time.Unix(unix, 0).UTC(), nil
	}

	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported timestamp %q", raw)
}

// ParseOptionalTimestamp returns nil for an empty value.
func ParseOptionalTimestamp(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}
