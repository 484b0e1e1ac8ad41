package models

import (
	"log/slog"
	"time"

	"github.com/joshua-takyi/tessalate/internal/grid"
)

// Event is a shareable availability poll. Dates, StartTime, EndTime and
// TimeZone never change after creation; Participants grows and is
// overwritten one name at a time.
type Event struct {
	ID           string                  `json:"id"`
	Title        string                  `json:"title"`
	Dates        []string                `json:"dates"`     // e.g. ["2023-10-28", "2023-10-29"]
	StartTime    string                  `json:"startTime"` // e.g. "11:00"
	EndTime      string                  `json:"endTime"`   // e.g. "14:00"
	TimeZone     string                  `json:"timeZone"`  // e.g. "America/New_York"
	Participants map[string]grid.SlotSet `json:"participants"`
	CreatedAt    time.Time               `json:"createdAt"`
}

type CreateEventRequest struct {
	Title     string   `json:"title" validate:"max=200"`
	Dates     []string `json:"dates" validate:"required,min=1,max=62,unique,dive,datetime=2006-01-02"`
	StartTime string   `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string   `json:"endTime" validate:"required,datetime=15:04"`
	TimeZone  string   `json:"timeZone" validate:"required"`
}

type AvailabilityRequest struct {
	Name         string        `json:"name" validate:"required,max=100"`
	Availability *grid.SlotSet `json:"availability" validate:"required"`
}

// Clone returns a deep copy so callers never share participant sets with
// a store.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	out := *e
	out.Dates = append([]string(nil), e.Dates...)
	out.Participants = make(map[string]grid.SlotSet, len(e.Participants))
	for name, slots := range e.Participants {
		out.Participants[name] = slots.Clone()
	}
	return &out
}

// Grid lays out the event's slot grid.
func (e *Event) Grid(interval int, logger *slog.Logger) (*grid.Grid, error) {
	return grid.Build(e.Dates, e.StartTime, e.EndTime, e.TimeZone, interval, logger)
}
