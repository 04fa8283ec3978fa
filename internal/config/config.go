package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourceHTTP     = "http"
	SourceSQL      = "sql"
	SourceOverpass = "overpass"

	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the service configuration read from the environment.
type Config struct {
	Port string

	PointSource   string
	PointsBaseURL string
	PointsTimeout time.Duration

	DBDriver    string
	DatabaseURL string
	SeedPath    string

	OverpassURL  string
	OverpassBBox string

	ViewStore   string
	RedisAddr   string
	RedisPrefix string

	LogLevel string
	DevMode  bool
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration and validates the selected backends.
func Load() (Config, error) {
	timeout, err := time.ParseDuration(Get("POINTS_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: POINTS_TIMEOUT: %w", err)
	}

	devMode, err := strconv.ParseBool(Get("DEV_MODE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: DEV_MODE: %w", err)
	}

	cfg := Config{
		Port:          Get("PORT", "8080"),
		PointSource:   strings.ToLower(Get("POINT_SOURCE", SourceHTTP)),
		PointsBaseURL: Get("POINTS_BASE_URL", ""),
		PointsTimeout: timeout,
		DBDriver:      Get("DB_DRIVER", "sqlite"),
		DatabaseURL:   Get("DATABASE_URL", "data/app.db"),
		SeedPath:      Get("SEED_PATH", ""),
		OverpassURL:   Get("OVERPASS_URL", ""),
		OverpassBBox:  Get("OVERPASS_BBOX", ""),
		ViewStore:     strings.ToLower(Get("VIEW_STORE", StoreMemory)),
		RedisAddr:     Get("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:   Get("REDIS_PREFIX", "cybermap"),
		LogLevel:      Get("LOG_LEVEL", "info"),
		DevMode:       devMode,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.PointSource {
	case SourceHTTP:
		if c.PointsBaseURL == "" {
			return errors.New("POINTS_BASE_URL is required when POINT_SOURCE=http")
		}
	case SourceSQL:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when POINT_SOURCE=sql")
		}
	case SourceOverpass:
		if c.OverpassBBox == "" {
			return errors.New("OVERPASS_BBOX is required when POINT_SOURCE=overpass")
		}
	default:
		return fmt.Errorf("unknown POINT_SOURCE %q", c.PointSource)
	}

	switch c.ViewStore {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown VIEW_STORE %q", c.ViewStore)
	}

	return nil
}
