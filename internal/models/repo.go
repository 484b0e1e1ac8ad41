package models

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/tessalate/internal/grid"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = newValidator()

// newValidator reports fields by their JSON names so messages match the
// request payload.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// EventRepo is the availability store. SetAvailability replaces the named
// participant's whole set; it never merges with what was stored before.
type EventRepo interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	SetAvailability(ctx context.Context, id, name string, slots grid.SlotSet) (*Event, error)
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	if dbName == "" {
		dbName = EventsDbName
	}
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(dbName).Collection(colName), nil
}
