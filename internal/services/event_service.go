package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/joshua-takyi/tessalate/internal/grid"
	"github.com/joshua-takyi/tessalate/internal/helpers"
	"github.com/joshua-takyi/tessalate/internal/models"
)

const createAttempts = 3

type EventService struct {
	eventsRepo  models.EventRepo
	logger      *slog.Logger
	interval    int
	strictSlots bool
	now         func() time.Time
	newID       func() string
}

type EventServiceOptions struct {
	Interval int
	// StrictSlots drops submitted keys that are not on the event grid.
	StrictSlots bool
}

func NewEventService(eventsRepo models.EventRepo, logger *slog.Logger, opts EventServiceOptions) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Interval <= 0 {
		opts.Interval = grid.DefaultInterval
	}
	return &EventService{
		eventsRepo:  eventsRepo,
		logger:      logger,
		interval:    opts.Interval,
		strictSlots: opts.StrictSlots,
		now:         time.Now,
		newID:       helpers.GenerateEventID,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", models.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (es *EventService) CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error) {
	if req == nil {
		return nil, invalid("request body is required")
	}
	dates := make([]string, 0, len(req.Dates))
	for _, d := range req.Dates {
		dates = append(dates, helpers.DateOnly(d))
	}
	req.Dates = dates
	req.Title = strings.TrimSpace(req.Title)
	req.TimeZone = strings.TrimSpace(req.TimeZone)

	if err := models.Validate.Struct(req); err != nil {
		return nil, invalid("%s", helpers.ValidationMessage(err))
	}
	if _, err := grid.LoadZone(req.TimeZone); err != nil {
		return nil, err
	}
	times, err := grid.Enumerate(req.StartTime, req.EndTime, es.interval)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
	}
	sort.Strings(dates)

	event := &models.Event{
		Title: req.Title,
		Dates: dates,
		// stored normalized, e.g. "9:00" -> "09:00"
		StartTime:    times[0],
		EndTime:      times[len(times)-1],
		TimeZone:     req.TimeZone,
		Participants: map[string]grid.SlotSet{},
		CreatedAt:    es.now().UTC(),
	}

	for attempt := 1; ; attempt++ {
		event.ID = es.newID()
		err := es.eventsRepo.CreateEvent(ctx, event)
		if err == nil {
			break
		}
		if !errors.Is(err, models.ErrDuplicateID) || attempt == createAttempts {
			return nil, fmt.Errorf("failed to create event: %w", err)
		}
		es.logger.Warn("Event id collision, retrying", "event_id", event.ID, "attempt", attempt)
	}

	es.logger.Info("Event created", "event_id", event.ID, "title", event.Title, "dates", len(event.Dates), "time_zone", event.TimeZone)
	return event, nil
}

func (es *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	id = helpers.StringTrim(id)
	if id == "" {
		return nil, invalid("event id is required")
	}
	return es.eventsRepo.GetEvent(ctx, id)
}

// SubmitAvailability replaces name's availability with exactly the
// submitted keys and returns the updated event.
func (es *EventService) SubmitAvailability(ctx context.Context, id string, req *models.AvailabilityRequest) (*models.Event, error) {
	if req == nil {
		return nil, invalid("request body is required")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := models.Validate.Struct(req); err != nil {
		return nil, invalid("%s", helpers.ValidationMessage(err))
	}

	slots := make(grid.SlotSet, len(*req.Availability))
	for raw := range *req.Availability {
		key, err := grid.ParseKey(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
		}
		slots.Add(key)
	}

	if es.strictSlots {
		event, err := es.GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		g, err := event.Grid(es.interval, es.logger)
		if err != nil {
			return nil, err
		}
		for key := range slots {
			if !g.Contains(key) {
				es.logger.Warn("Dropping off-grid slot", "event_id", event.ID, "name", req.Name, "slot", key)
				delete(slots, key)
			}
		}
	}

	event, err := es.eventsRepo.SetAvailability(ctx, helpers.StringTrim(id), req.Name, slots)
	if err != nil {
		return nil, err
	}
	es.logger.Info("Availability updated", "event_id", event.ID, "name", req.Name, "slots", len(slots))
	return event, nil
}

// GetAvailability returns name's slots. Unknown names yield an empty set
// with exists=false.
func (es *EventService) GetAvailability(ctx context.Context, id, name string) (*models.ParticipantAvailability, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	event, err := es.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	slots, exists := event.Participants[name]
	return &models.ParticipantAvailability{
		Name:         name,
		Exists:       exists,
		Availability: slots.Keys(),
	}, nil
}

// GetGrid builds the heatmap for an event. Only keys on the event's own
// grid are rendered; anything else stored is reported in IgnoredSlots.
func (es *EventService) GetGrid(ctx context.Context, id string) (*models.GridView, error) {
	event, err := es.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := event.Grid(es.interval, es.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build grid for event %s: %w", event.ID, err)
	}

	stats := grid.Aggregate(event.Participants, g.Keys()...)

	view := &models.GridView{
		EventID:      event.ID,
		Title:        event.Title,
		TimeZone:     event.TimeZone,
		Participants: grid.Names(event.Participants),
		Times:        g.Times,
		Rows:         make([]models.RowView, 0, len(g.Rows)),
		CreatedAt:    event.CreatedAt,
	}
	for _, row := range g.Rows {
		rv := models.RowView{Date: row.Date, Cells: make([]models.CellView, 0, len(row.Cells))}
		for _, c := range row.Cells {
			s := stats[c.Key]
			rv.Cells = append(rv.Cells, models.CellView{
				Date:           c.Date,
				Time:           c.Time,
				Key:            c.Key,
				AvailableCount: s.AvailableCount,
				AvailableNames: s.AvailableNames,
				Ratio:          s.Ratio,
				HeatmapLevel:   s.Level,
				Fallback:       c.Fallback,
			})
		}
		view.Rows = append(view.Rows, rv)
	}
	for key := range stats {
		if !g.Contains(key) {
			view.IgnoredSlots++
		}
	}
	if view.IgnoredSlots > 0 {
		es.logger.Debug("Ignoring off-grid slots", "event_id", event.ID, "count", view.IgnoredSlots)
	}
	return view, nil
}

// GetSlot lists who is and is not available for one grid slot.
func (es *EventService) GetSlot(ctx context.Context, id, rawKey string) (*models.SlotDetail, error) {
	key, err := grid.ParseKey(rawKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
	}
	event, err := es.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := event.Grid(es.interval, es.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build grid for event %s: %w", event.ID, err)
	}
	cell, ok := g.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: slot %s is not part of event %s", models.ErrNotFound, key, event.ID)
	}

	s := grid.Aggregate(event.Participants, key)[key]
	return &models.SlotDetail{
		Key:              key,
		Date:             cell.Date,
		Time:             cell.Time,
		AvailableNames:   s.AvailableNames,
		UnavailableNames: grid.UnavailableNames(event.Participants, key),
		AvailableCount:   s.AvailableCount,
		Ratio:            s.Ratio,
		HeatmapLevel:     s.Level,
	}, nil
}
