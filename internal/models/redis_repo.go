package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/joshua-takyi/tessalate/internal/grid"
	"github.com/redis/go-redis/v9"
)

const RedisKeyPrefix = "tessalate:event:"

// RedisRepo stores the immutable event fields as one JSON string and the
// participants in a hash, so replacing one participant is a single HSET.
type RedisRepo struct {
	rdb *redis.Client
}

func RedisNewRepo(rdb *redis.Client) *RedisRepo {
	return &RedisRepo{rdb: rdb}
}

func eventKey(id string) string        { return RedisKeyPrefix + id }
func participantsKey(id string) string { return RedisKeyPrefix + id + ":participants" }

func (r *RedisRepo) CreateEvent(ctx context.Context, event *Event) error {
	header := *event
	header.Participants = nil
	data, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("error encoding event: %w", err)
	}
	ok, err := r.rdb.SetNX(ctx, eventKey(event.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("error storing event: %w", err)
	}
	if !ok {
		return ErrDuplicateID
	}
	for name, slots := range event.Participants {
		if err := r.hsetParticipant(ctx, event.ID, name, slots); err != nil {
			return err
		}
	}
	return nil
}

func (r *RedisRepo) GetEvent(ctx context.Context, id string) (*Event, error) {
	var headerCmd *redis.StringCmd
	var participantsCmd *redis.MapStringStringCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		headerCmd = pipe.Get(ctx, eventKey(id))
		participantsCmd = pipe.HGetAll(ctx, participantsKey(id))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("error reading event: %w", err)
	}

	data, err := headerCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading event: %w", err)
	}
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("error decoding event %s: %w", id, err)
	}

	raw, err := participantsCmd.Result()
	if err != nil {
		return nil, fmt.Errorf("error reading participants: %w", err)
	}
	event.Participants = make(map[string]grid.SlotSet, len(raw))
	for name, encoded := range raw {
		var slots grid.SlotSet
		if err := json.Unmarshal([]byte(encoded), &slots); err != nil {
			return nil, fmt.Errorf("error decoding availability for %q: %w", name, err)
		}
		if slots == nil {
			slots = grid.SlotSet{}
		}
		event.Participants[name] = slots
	}
	return &event, nil
}

func (r *RedisRepo) SetAvailability(ctx context.Context, id, name string, slots grid.SlotSet) (*Event, error) {
	exists, err := r.rdb.Exists(ctx, eventKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("error checking event: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}
	if err := r.hsetParticipant(ctx, id, name, slots); err != nil {
		return nil, err
	}
	return r.GetEvent(ctx, id)
}

func (r *RedisRepo) hsetParticipant(ctx context.Context, id, name string, slots grid.SlotSet) error {
	encoded, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("error encoding availability: %w", err)
	}
	if err := r.rdb.HSet(ctx, participantsKey(id), name, encoded).Err(); err != nil {
		return fmt.Errorf("error storing availability: %w", err)
	}
	return nil
}
