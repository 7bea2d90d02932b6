// Package config loads service configuration from JSON files, an optional
// .env file, and EVP_* environment variables, with sensible defaults.
package config
