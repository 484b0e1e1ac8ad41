package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joshua-takyi/tessalate/internal/grid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	EventsDbName  = "tessalate"
	EventsColName = "events"
)

// Participants are stored as an array because names and slot keys may
// contain characters that are not safe in BSON field names.
type participantDocument struct {
	Name  string   `bson:"name"`
	Slots []string `bson:"slots"`
}

type eventDocument struct {
	ID           string                `bson:"_id"`
	Title        string                `bson:"title"`
	Dates        []string              `bson:"dates"`
	StartTime    string                `bson:"start_time"`
	EndTime      string                `bson:"end_time"`
	TimeZone     string                `bson:"time_zone"`
	Participants []participantDocument `bson:"participants"`
	CreatedAt    time.Time             `bson:"created_at"`
}

func toEventDocument(e *Event) eventDocument {
	doc := eventDocument{
		ID:           e.ID,
		Title:        e.Title,
		Dates:        e.Dates,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		TimeZone:     e.TimeZone,
		Participants: []participantDocument{},
		CreatedAt:    e.CreatedAt,
	}
	for _, name := range grid.Names(e.Participants) {
		doc.Participants = append(doc.Participants, participantDocument{
			Name:  name,
			Slots: e.Participants[name].Keys(),
		})
	}
	return doc
}

func (d eventDocument) toEvent() *Event {
	e := &Event{
		ID:           d.ID,
		Title:        d.Title,
		Dates:        d.Dates,
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
		TimeZone:     d.TimeZone,
		Participants: make(map[string]grid.SlotSet, len(d.Participants)),
		CreatedAt:    d.CreatedAt.UTC(),
	}
	for _, p := range d.Participants {
		e.Participants[p.Name] = grid.NewSlotSet(p.Slots...)
	}
	return e
}

// EnsureIndexes creates the listing index on created_at.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, mdb.dbName, EventsColName)
	if err != nil {
		return err
	}
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("created_at_desc"),
	})
	if err != nil {
		return fmt.Errorf("error creating events index: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) error {
	col, err := mdb.GetCollection(ctx, mdb.dbName, EventsColName)
	if err != nil {
		return err
	}
	if _, err := col.InsertOne(ctx, toEventDocument(event)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("error inserting event: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetEvent(ctx context.Context, id string) (*Event, error) {
	col, err := mdb.GetCollection(ctx, mdb.dbName, EventsColName)
	if err != nil {
		return nil, err
	}
	var doc eventDocument
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding event: %w", err)
	}
	return doc.toEvent(), nil
}

// SetAvailability swaps one participant entry with a single pipeline update
// so readers never see the old and new entries together or neither of them.
func (mdb *MongodbRepo) SetAvailability(ctx context.Context, id, name string, slots grid.SlotSet) (*Event, error) {
	col, err := mdb.GetCollection(ctx, mdb.dbName, EventsColName)
	if err != nil {
		return nil, err
	}

	keys := slots.Keys()
	literalKeys := make(bson.A, 0, len(keys))
	for _, k := range keys {
		literalKeys = append(literalKeys, k)
	}
	others := bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$participants", bson.A{}}}}},
		{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this.name", bson.D{{Key: "$literal", Value: name}}}}}},
	}}}
	entry := bson.D{
		{Key: "name", Value: bson.D{{Key: "$literal", Value: name}}},
		{Key: "slots", Value: bson.D{{Key: "$literal", Value: literalKeys}}},
	}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "participants", Value: bson.D{{Key: "$concatArrays", Value: bson.A{others, bson.A{entry}}}}},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc eventDocument
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating availability: %w", err)
	}
	return doc.toEvent(), nil
}
