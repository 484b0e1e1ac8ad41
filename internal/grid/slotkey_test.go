package grid

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		date string
		tod  string
		zone string
		want string
	}{
		{"new york winter", "2024-01-15", "09:00", "America/New_York", "2024-01-15T14:00:00.000Z"},
		{"new york summer", "2024-07-15", "09:00", "America/New_York", "2024-07-15T13:00:00.000Z"},
		{"half hour offset", "2024-03-01", "09:00", "Asia/Kolkata", "2024-03-01T03:30:00.000Z"},
		{"utc", "2024-03-01", "23:30", "UTC", "2024-03-01T23:30:00.000Z"},
		{"crosses utc midnight", "2024-01-15", "20:00", "America/Los_Angeles", "2024-01-16T04:00:00.000Z"},
		{"east of utc previous day", "2024-05-02", "08:00", "Asia/Tokyo", "2024-05-01T23:00:00.000Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.date, tt.tod, tt.zone)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if key := FormatKey(got); key != tt.want {
				t.Errorf("Resolve() = %s, want %s", key, tt.want)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	a, err := Resolve("2024-11-03", "10:30", "Europe/Paris")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Resolve("2024-11-03", "10:30", "Europe/Paris")
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("Resolve not deterministic: %v vs %v", a, b)
	}
}

func TestResolveDeltaWithoutTransition(t *testing.T) {
	a, err := Resolve("2024-01-01", "09:00", "Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Resolve("2024-01-02", "10:30", "Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := b.Sub(a), 25*time.Hour+30*time.Minute; got != want {
		t.Errorf("delta = %v, want %v", got, want)
	}
}

func TestResolveRoundTrip(t *testing.T) {
	zones := []string{"America/New_York", "Europe/Berlin", "Australia/Sydney", "Asia/Kathmandu", "Pacific/Honolulu"}
	dates := []string{"2024-01-10", "2024-04-20", "2024-08-05", "2024-12-24"}
	times := []string{"00:00", "06:30", "12:00", "17:45", "23:30"}

	for _, zone := range zones {
		loc, err := LoadZone(zone)
		if err != nil {
			t.Fatal(err)
		}
		for _, d := range dates {
			for _, tod := range times {
				at, err := ResolveIn(d, tod, loc)
				if err != nil {
					t.Fatalf("ResolveIn(%s, %s, %s): %v", d, tod, zone, err)
				}
				local := at.In(loc)
				if local.Format(DateLayout) != d || local.Format(TimeLayout) != tod {
					t.Errorf("%s %s %s round-tripped to %s", d, tod, zone, local.Format("2006-01-02 15:04"))
				}
			}
		}
	}
}

// The offset is sampled at noon, so times before a spring-forward
// transition on the same day come out one hour early.
func TestResolveSpringForwardLimitation(t *testing.T) {
	got, err := Resolve("2024-03-10", "01:00", "America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	if key := FormatKey(got); key != "2024-03-10T05:00:00.000Z" {
		t.Errorf("Resolve() = %s, want the noon-offset result 2024-03-10T05:00:00.000Z", key)
	}
}

func TestResolveErrors(t *testing.T) {
	if _, err := Resolve("2024-01-01", "09:00", "Mars/Olympus"); !errors.Is(err, ErrInvalidTimeZone) {
		t.Errorf("unknown zone: err = %v", err)
	}
	if _, err := Resolve("2024-01-01", "09:00", ""); !errors.Is(err, ErrInvalidTimeZone) {
		t.Errorf("empty zone: err = %v", err)
	}
	if _, err := Resolve("2024-01-01", "09:00", "Local"); !errors.Is(err, ErrInvalidTimeZone) {
		t.Errorf("Local zone: err = %v", err)
	}
	if _, err := Resolve("2024-02-30", "09:00", "UTC"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date: err = %v", err)
	}
	if _, err := Resolve("2024-02-01", "25:00", "UTC"); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("bad time: err = %v", err)
	}
}

func TestLiteralKey(t *testing.T) {
	got, err := LiteralKey("2024-06-01", "09:30")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2024-06-01T09:30:00.000Z" {
		t.Errorf("LiteralKey() = %s", got)
	}
}

func TestParseKey(t *testing.T) {
	tests := map[string]string{
		"2024-06-01T09:30:00.000Z":    "2024-06-01T09:30:00.000Z",
		"2024-06-01T09:30:00Z":        "2024-06-01T09:30:00.000Z",
		"2024-06-01T11:30:00+02:00":   "2024-06-01T09:30:00.000Z",
		" 2024-06-01T09:30:00.1234Z ": "2024-06-01T09:30:00.123Z",
	}
	for in, want := range tests {
		got, err := ParseKey(in)
		if err != nil {
			t.Errorf("ParseKey(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseKey(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseKey("tomorrow at nine"); err == nil {
		t.Error("ParseKey accepted garbage")
	}
}
