package container

import (
	"fmt"
	"log/slog"

	"github.com/joshua-takyi/tessalate/internal/config"
	"github.com/joshua-takyi/tessalate/internal/models"
	"github.com/joshua-takyi/tessalate/internal/services"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	// Database clients, nil unless the matching backend is selected
	MongoDBClient *mongo.Client
	RedisClient   *redis.Client
	EventsRepo    models.EventRepo
	EventService  *services.EventService
}

// NewContainer picks the event store for cfg.StoreBackend and wires the
// services on top of it.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
) (*Container, error) {
	var repo models.EventRepo
	switch cfg.StoreBackend {
	case config.BackendMemory:
		repo = models.NewMemoryRepo()
	case config.BackendMongo:
		if mongoDBClient == nil {
			return nil, fmt.Errorf("store backend %q requires a MongoDB client", cfg.StoreBackend)
		}
		repo = models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)
	case config.BackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("store backend %q requires a Redis client", cfg.StoreBackend)
		}
		repo = models.RedisNewRepo(redisClient)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	eventService := services.NewEventService(repo, logger, services.EventServiceOptions{
		Interval:    cfg.SlotInterval,
		StrictSlots: cfg.StrictSlots,
	})

	return &Container{
		Config:        cfg,
		Logger:        logger,
		MongoDBClient: mongoDBClient,
		RedisClient:   redisClient,
		EventsRepo:    repo,
		EventService:  eventService,
	}, nil
}
