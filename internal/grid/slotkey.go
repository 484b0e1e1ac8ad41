package grid

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
	// KeyLayout is the canonical slot key format: UTC, millisecond precision.
	KeyLayout = "2006-01-02T15:04:05.000Z"
)

var (
	ErrInvalidTimeZone = errors.New("invalid time zone")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time of day")
)

// LoadZone loads an IANA zone. Empty and "Local" are rejected even though
// time.LoadLocation accepts them, since neither names a real zone.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, name)
	}
	return loc, nil
}

// Resolve returns the instant whose wall clock in zone reads date timeOfDay.
//
// The zone offset is sampled at noon UTC of date and applied to the whole
// day, so a wall-clock time inside a DST gap or overlap may come out one hour
// off. That is a known limitation of the slot keys and must stay stable.
func Resolve(date, timeOfDay, zone string) (time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	return ResolveIn(date, timeOfDay, loc)
}

// ResolveIn is Resolve with an already loaded location.
func ResolveIn(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	naive, err := naiveUTC(date, timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	noon := time.Date(naive.Year(), naive.Month(), naive.Day(), 12, 0, 0, 0, time.UTC)
	_, offset := noon.In(loc).Zone()
	offsetMinutes := offset / 60
	return naive.Add(-time.Duration(offsetMinutes) * time.Minute), nil
}

// LiteralKey treats date and timeOfDay as if they were already UTC.
// Only used when a zone cannot be loaded.
func LiteralKey(date, timeOfDay string) (string, error) {
	naive, err := naiveUTC(date, timeOfDay)
	if err != nil {
		return "", err
	}
	return FormatKey(naive), nil
}

// FormatKey renders t as a canonical slot key.
func FormatKey(t time.Time) string {
	return t.UTC().Format(KeyLayout)
}

// ParseKey accepts any RFC 3339 instant and returns it in canonical form.
func ParseKey(s string) (string, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("slot key %q: %w", s, err)
	}
	return FormatKey(t.Truncate(time.Millisecond)), nil
}

func naiveUTC(date, timeOfDay string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	tod, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(tod) * time.Minute), nil
}
