package main

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
	driverMemory   = "memory"
)

type config struct {
	StoreDriver        string
	DatabaseURL        string
	HTTPAddr           string
	LogLevel           string
	AdminToken         string
	ContextLifespan    int
	RecordInteractions bool
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
}

func loadConfig() (config, error) {
	var cfg config

	var err error
	cfg.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", driverPostgres))
	switch cfg.StoreDriver {
	case driverPostgres, driverSQLite:
		if cfg.DatabaseURL, err = getRequiredEnv("DATABASE_URL"); err != nil {
			return cfg, err
		}
	case driverMemory:
	default:
		return cfg, &configError{message: "unsupported STORE_DRIVER: " + cfg.StoreDriver}
	}
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":"+getEnv("PORT", "3000"))
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.AdminToken = strings.TrimSpace(os.Getenv("ADMIN_TOKEN"))
	if cfg.ContextLifespan, err = getEnvInt("CONTEXT_LIFESPAN", 5); err != nil {
		return cfg, err
	}
	if cfg.RecordInteractions, err = getEnvBool("RECORD_INTERACTIONS", false); err != nil {
		return cfg, err
	}
	if cfg.DBMaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return cfg, err
	}
	if cfg.DBMaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return cfg, err
	}
	if cfg.DBConnMaxLifetime, err = getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func getRequiredEnv(key string) (string, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", &configError{message: "missing required environment variable: " + key}
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, &configError{message: "invalid int for " + key + ": " + err.Error()}
	}
	return parsed, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, &configError{message: "invalid bool for " + key + ": " + err.Error()}
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, &configError{message: "invalid duration for " + key + ": " + err.Error()}
	}
	return parsed, nil
}

type configError struct {
	message string
}

func (e *configError) Error() string {
	return e.message
}

var _ error = (*configError)(nil)
