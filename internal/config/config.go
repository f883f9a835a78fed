package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/An-Array/SM-Backend/internal/validator"
)

// Config holds every runtime setting the server needs. Values come from the
// environment, optionally seeded from a .env file for local development.
type Config struct {
	Port         string        `validate:"required"`
	DatabaseURL  string        `validate:"required"`
	JWTSecret    string        `validate:"required,min=16"`
	TokenTTL     time.Duration `validate:"required"`
	OTLPEndpoint string        `validate:"required"`
	CORSOrigin   string        `validate:"required"`
	LogLevel     string        `validate:"oneof=debug info warn error"`
}

// Load reads configuration from the environment. A missing .env file is not an
// error; production sets variables directly.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	ttlMinutes, err := strconv.Atoi(getEnv("TOKEN_TTL_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES: %w", err)
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", "sqlite://sm.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     time.Duration(ttlMinutes) * time.Minute,
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "*"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
