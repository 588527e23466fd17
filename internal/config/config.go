// Package config loads application configuration from environment
// variables. cmd/server loads a .env file first, so local development
// needs no exported shell variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Backend names accepted in DATA_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds all runtime configuration values. JWTSecret is the only
// value without a usable default; everything else falls back to
// demo-friendly settings.
type Config struct {
	Env            string // application environment (dev/prod)
	Port           string // HTTP port to listen on
	DataBackend    string // "sqlite" (persistent) or "memory" (demo mirror)
	DBPath         string // SQLite database file path
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	AMQPURL        string // RabbitMQ URL; empty disables check-in events
	AdminEmail     string // optional bootstrap admin account
	AdminPassword  string
	AdminName      string
}

// Load reads configuration from the environment. The process exits
// when JWT_SECRET is missing or the backend name is unknown.
func Load() Config {
	cfg := Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "8080"),
		DataBackend:    getenv("DATA_BACKEND", BackendSQLite),
		DBPath:         getenv("DB_PATH", "cphva_connect.db"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   getenvInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: getenvInt("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     getenvInt("BCRYPT_COST", 10),
		AMQPURL:        firstEnv("RABBITMQ_URL", "AMQP_URL"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		AdminName:      getenv("ADMIN_NAME", "Administrator"),
	}
	if cfg.DataBackend != BackendSQLite && cfg.DataBackend != BackendMemory {
		log.Fatalf("unknown DATA_BACKEND: %q (want %q or %q)", cfg.DataBackend, BackendSQLite, BackendMemory)
	}
	return cfg
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
