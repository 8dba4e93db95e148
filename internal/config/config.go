// Package config reads runtime settings from the environment. Callers load
// a .env file first with godotenv when they want one.
package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultDBPath   = "ui19.db"
	defaultPort     = "8080"
	defaultExportTZ = "Africa/Johannesburg"
)

type Config struct {
	DBPath string
	Port   string
	// Location is the zone export filename timestamps are rendered in.
	Location *time.Location
}

// FromEnv reads DB_PATH, PORT and EXPORT_TZ, falling back to defaults for
// anything unset.
func FromEnv() (Config, error) {
	cfg := Config{
		DBPath: getenv("DB_PATH", defaultDBPath),
		Port:   getenv("PORT", defaultPort),
	}
	tz := getenv("EXPORT_TZ", defaultExportTZ)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("EXPORT_TZ %q: %w", tz, err)
	}
	cfg.Location = loc
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
