package config

import (
	"os"
	"strconv"
)

// FromEnv overlays EVP_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("EVP_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("EVP_PRICE_PER_BYTE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.PricePerByte = n
		}
	}
	if v := os.Getenv("EVP_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("EVP_AMQP_URL"); v != "" {
		cfg.AMQPURL = v
	}
	if v := os.Getenv("EVP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("EVP_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
