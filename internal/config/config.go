package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joshua-takyi/tessalate/internal/grid"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

type Config struct {
	Port            string
	Environment     string
	LogLevel        string
	CORSOrigins     []string
	StoreBackend    string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBDatabase string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SlotInterval    int
	StrictSlots     bool
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "3021"),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		CORSOrigins:     splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),
		StoreBackend:    strings.ToLower(getEnvWithDefault("STORE_BACKEND", BackendMemory)),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase: getEnvWithDefault("MONGODB_DATABASE", "tessalate"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.RedisDB, err = getIntWithDefault("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.SlotInterval, err = getIntWithDefault("SLOT_INTERVAL_MINUTES", grid.DefaultInterval); err != nil {
		return nil, err
	}
	if cfg.StrictSlots, err = getBoolWithDefault("STRICT_SLOTS", false); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendMongo:
		if c.MongoDBURI == "" {
			return fmt.Errorf("MONGODB_URI is required when STORE_BACKEND=mongo")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when STORE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q (expected memory, mongo, redis)", c.StoreBackend)
	}
	if c.SlotInterval <= 0 || c.SlotInterval > 24*60 {
		return fmt.Errorf("SLOT_INTERVAL_MINUTES must be between 1 and 1440, got %d", c.SlotInterval)
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getBoolWithDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
