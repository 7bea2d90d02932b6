package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// HTTPAddr is the API listen address.
	HTTPAddr string `json:"httpAddr"`
	// PricePerByte is the storage price charged per marginal byte, in
	// service units. Supplied by the hosting environment; constant for the
	// lifetime of a call.
	PricePerByte uint64 `json:"pricePerByte"`
	// JWTSecret signs and verifies caller identity tokens.
	JWTSecret string `json:"jwtSecret"`
	// AMQPURL, when set, enables entity-change notifications to RabbitMQ.
	AMQPURL string `json:"amqpUrl"`
	// LogLevel and LogFormat configure the process logger.
	LogLevel  string `json:"logLevel"`
	LogFormat string `json:"logFormat"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		HTTPAddr:     ":8080",
		PricePerByte: 100,
		JWTSecret:    "dev-secret",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads configuration: a .env file when present (development
// convenience, ignored when absent), then the JSON file at path when path is
// non-empty, then EVP_* environment overrides.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	FromEnv(&cfg)
	return cfg, nil
}
