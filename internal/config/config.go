package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultEnv           = "development"
	defaultDBPath        = "./dev.db"
	defaultPort          = "8080"
	defaultMigrationsDir = "migrations"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env             string
	Port            string
	DBPath          string
	MigrationsDir   string
	SeedStarterData bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load reads environment variables and returns a populated Config.
func Load() (Config, error) {
	// Best-effort: production should use real env injection.
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Env:             getEnv("APP_ENV", defaultEnv),
		Port:            getEnv("PORT", defaultPort),
		DBPath:          getEnv("DB_PATH", defaultDBPath),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", defaultMigrationsDir),
		ReadTimeout:     getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		ShutdownTimeout: getDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	seedStarter, err := getBool("SEED_STARTER_DATA", cfg.IsDev())
	if err != nil {
		return Config{}, err
	}
	cfg.SeedStarterData = seedStarter

	return cfg, nil
}

// IsDev reports whether the app runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getBool(key string, fallback bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, val)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		// Plain integers are seconds.
		if secs, convErr := strconv.Atoi(val); convErr == nil {
			return time.Duration(secs) * time.Second
		}
		return fallback
	}
	return d
}
