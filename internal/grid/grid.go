// Package grid maps an event's dates, daily time window and time zone onto
// canonical UTC slot keys and aggregates participant availability per slot.
package grid

import (
	"log/slog"
	"time"
)

// Cell is one (date, time of day) position in the grid.
type Cell struct {
	Date string `json:"date" yaml:"date"`
	Time string `json:"time" yaml:"time"`
	Key  string `json:"key" yaml:"key"`
	// Fallback is set when Key is a UTC-literal key because the zone
	// could not be loaded. Such keys do not match the real instant.
	Fallback bool `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

type Row struct {
	Date  string `json:"date" yaml:"date"`
	Cells []Cell `json:"cells" yaml:"cells"`
}

type Grid struct {
	TimeZone string   `json:"timeZone" yaml:"timeZone"`
	Times    []string `json:"times" yaml:"times"`
	Rows     []Row    `json:"rows" yaml:"rows"`
}

// Build lays out one row per date and one column per enumerated time.
// An unknown zone does not fail the build: cells get UTC-literal keys,
// are flagged Fallback, and the anomaly is logged.
func Build(dates []string, start, end, zone string, interval int, logger *slog.Logger) (*Grid, error) {
	if logger == nil {
		logger = slog.Default()
	}
	times, err := Enumerate(start, end, interval)
	if err != nil {
		return nil, err
	}

	loc, zoneErr := LoadZone(zone)
	if zoneErr != nil {
		logger.Warn("Falling back to UTC-literal slot keys", "time_zone", zone, "error", zoneErr)
	}

	g := &Grid{TimeZone: zone, Times: times, Rows: make([]Row, 0, len(dates))}
	for _, date := range dates {
		row := Row{Date: date, Cells: make([]Cell, 0, len(times))}
		for _, tod := range times {
			cell := Cell{Date: date, Time: tod}
			if loc != nil {
				var at time.Time
				at, err = ResolveIn(date, tod, loc)
				if err != nil {
					return nil, err
				}
				cell.Key = FormatKey(at)
			} else {
				cell.Key, err = LiteralKey(date, tod)
				if err != nil {
					return nil, err
				}
				cell.Fallback = true
			}
			row.Cells = append(row.Cells, cell)
		}
		g.Rows = append(g.Rows, row)
	}
	return g, nil
}

// Keys returns every cell key in row-major order.
func (g *Grid) Keys() []string {
	keys := make([]string, 0, len(g.Rows)*len(g.Times))
	for _, row := range g.Rows {
		for _, c := range row.Cells {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// Contains reports whether key names a cell of g.
func (g *Grid) Contains(key string) bool {
	_, ok := g.Lookup(key)
	return ok
}

// Lookup finds the cell for key.
func (g *Grid) Lookup(key string) (Cell, bool) {
	for _, row := range g.Rows {
		for _, c := range row.Cells {
			if c.Key == key {
				return c, true
			}
		}
	}
	return Cell{}, false
}

