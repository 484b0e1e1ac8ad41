package config

import (
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "LOG_LEVEL", "CORS_ORIGINS", "STORE_BACKEND",
		"MONGODB_URI", "MONGODB_PASSWORD", "MONGODB_DATABASE",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"SLOT_INTERVAL_MINUTES", "STRICT_SLOTS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != "3021" || cfg.StoreBackend != BackendMemory || cfg.SlotInterval != 30 || cfg.StrictSlots {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if want := []string{"http://localhost:3000"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("STRICT_SLOTS", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.StoreBackend != BackendRedis || cfg.RedisDB != 2 || !cfg.StrictSlots {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := map[string]map[string]string{
		"mongo without uri":  {"STORE_BACKEND": "mongo"},
		"redis without addr": {"STORE_BACKEND": "redis"},
		"unknown backend":    {"STORE_BACKEND": "etcd"},
		"bad interval":       {"SLOT_INTERVAL_MINUTES": "0"},
		"non-numeric db":     {"REDIS_DB": "one"},
		"bad bool":           {"STRICT_SLOTS": "maybe"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Error("LoadConfig() succeeded, want error")
			}
		})
	}
}
