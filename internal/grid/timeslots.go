package grid

import (
	"errors"
	"fmt"
	"time"
)

// DefaultInterval is the width of one grid column in minutes.
const DefaultInterval = 30

var (
	ErrInvalidRange    = errors.New("end time is before start time")
	ErrInvalidInterval = errors.New("interval must be positive")
)

// ParseTimeOfDay converts "HH:MM" to minutes after midnight.
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatTimeOfDay is the inverse of ParseTimeOfDay.
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Enumerate lists every time of day from start to end inclusive, stepping by
// interval minutes. The last element is always end, even when the range is
// not a multiple of interval.
func Enumerate(start, end string, interval int) ([]string, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInterval, interval)
	}
	from, err := ParseTimeOfDay(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseTimeOfDay(end)
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}

	slots := make([]string, 0, (to-from)/interval+2)
	last := from
	for m := from; m <= to; m += interval {
		slots = append(slots, FormatTimeOfDay(m))
		last = m
	}
	if last != to {
		slots = append(slots, FormatTimeOfDay(to))
	}
	return slots, nil
}
