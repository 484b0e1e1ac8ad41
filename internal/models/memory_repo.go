package models

import (
	"context"
	"sync"

	"github.com/joshua-takyi/tessalate/internal/grid"
)

// MemoryRepo keeps every event in process memory. Nothing is evicted.
type MemoryRepo struct {
	mu     sync.RWMutex
	events map[string]*Event
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{events: make(map[string]*Event)}
}

func (m *MemoryRepo) CreateEvent(ctx context.Context, event *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.events[event.ID]; exists {
		return ErrDuplicateID
	}
	m.events[event.ID] = event.Clone()
	return nil
}

func (m *MemoryRepo) GetEvent(ctx context.Context, id string) (*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	event, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return event.Clone(), nil
}

func (m *MemoryRepo) SetAvailability(ctx context.Context, id, name string, slots grid.SlotSet) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	if event.Participants == nil {
		event.Participants = make(map[string]grid.SlotSet)
	}
	event.Participants[name] = slots.Clone()
	return event.Clone(), nil
}
