// Package timewindow provides the shared date-range resolution policy used
// by every windowed read endpoint.
package timewindow

import (
	"fmt"
	"time"
)

// DefaultSpan is the window applied when no explicit range is given.
const DefaultSpan = 7 * 24 * time.Hour

// Resolve turns an optional explicit range into a concrete [start, end].
// A missing end defaults to now; a missing start defaults to end minus
// DefaultSpan. Every consumer of date filtering goes through this function
// so the defaulting rule exists in exactly one place.
func Resolve(start, end *time.Time) (time.Time, time.Time) {
	to := time.Now()
	if end != nil {
		to = *end
	}

	from := to.Add(-DefaultSpan)
	if start != nil {
		from = *start
	}

	return from, to
}

// Parse parses a query-string date value. Both RFC 3339 timestamps and
// plain dates (2006-01-02) are accepted; an empty value yields nil.
func Parse(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}

	return nil, fmt.Errorf("invalid date value: %q", value)
}

// ParseRange parses the startDate/endDate query values together.
func ParseRange(startValue, endValue string) (*time.Time, *time.Time, error) {
	start, err := Parse(startValue)
	if err != nil {
		return nil, nil, err
	}
	end, err := Parse(endValue)
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}
