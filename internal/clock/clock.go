// Package clock converts between wall-clock time-of-day strings and
// durations. Durations are carried as signed time.Duration values; only
// the string rendering drops the sign.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedTime is returned when a time-of-day string does not split
// into exactly three numeric components.
var ErrMalformedTime = errors.New("malformed time of day")

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hours   int
	Minutes int
	Seconds int
}

// ParseTimeOfDay parses a "HH:MM:SS" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	numbers := make([]int, 3)
	for i, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTime, s)
		}
		numbers[i] = value
	}
	return TimeOfDay{Hours: numbers[0], Minutes: numbers[1], Seconds: numbers[2]}, nil
}

// At anchors the time of day on a calendar date, producing a full instant
// in the date's location. Session boundaries are stored as instants, so
// arithmetic on them survives midnight.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hours, t.Minutes, t.Seconds, 0, date.Location())
}

// Duration returns the span since midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.Hours)*time.Hour +
		time.Duration(t.Minutes)*time.Minute +
		time.Duration(t.Seconds)*time.Second
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// FormatDuration renders d as "HH:MM:SS". The magnitude is formatted and
// the sign dropped; hours run past 24 instead of wrapping. Callers that
// care about direction must inspect the duration itself.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}

// ParseDuration parses a "HH:MM:SS" string into a duration. Hours may
// exceed 24.
func ParseDuration(s string) (time.Duration, error) {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return 0, err
	}
	return t.Duration(), nil
}

// HoursToDuration converts decimal hours to a duration, truncated to
// whole seconds.
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(hours*3600) * time.Second
}
