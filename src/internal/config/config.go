// Package config resolves folio settings from the environment and an
// optional .env file.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvData     = "FOLIO_DATA"
	EnvFormat   = "FOLIO_FORMAT"
	EnvLogLevel = "FOLIO_LOG_LEVEL"
)

// Config holds defaults for the CLI flags.
type Config struct {
	Data     string
	Format   string
	LogLevel string
}

// Load reads .env from the working directory if present, then the FOLIO_*
// variables. Values already set in the environment win over .env.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the FOLIO_* variables without touching .env.
func FromEnv() Config {
	return Config{
		Data:     getEnv(EnvData, "data.json"),
		Format:   getEnv(EnvFormat, "html"),
		LogLevel: getEnv(EnvLogLevel, "info"),
	}
}

// getEnv returns the environment value for key or def if unset.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
