// Package dates implements the review-day calendar: dates with no
// time-of-day, normalized to a fixed UTC-4 offset so a late-night session
// still counts toward the same study day regardless of system timezone.
package dates

import (
	"fmt"
	"time"
)

const iso = "2006-01-02"

// reviewDayOffset shifts UTC so the study day rolls over at 04:00 UTC.
const reviewDayOffset = -4 * time.Hour

// Day is a calendar date in ISO form (YYYY-MM-DD). ISO days compare
// correctly as strings, so ordering helpers are plain string compares.
type Day string

// Today returns the current review day for the given wall-clock instant.
func Today(now time.Time) Day {
	return Day(now.UTC().Add(reviewDayOffset).Format(iso))
}

// Parse validates s as an ISO calendar date.
func Parse(s string) (Day, error) {
	t, err := time.Parse(iso, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Day(t.Format(iso)), nil
}

// Add returns the day n days after d. n may be negative.
// d must be a valid Day (as produced by Today or Parse).
func (d Day) Add(n int) Day {
	t, err := time.Parse(iso, string(d))
	if err != nil {
		return d
	}
	return Day(t.AddDate(0, 0, n).Format(iso))
}

// After reports whether d falls after o.
func (d Day) After(o Day) bool { return string(d) > string(o) }

// Before reports whether d falls before o.
func (d Day) Before(o Day) bool { return string(d) < string(o) }

func (d Day) String() string { return string(d) }
