// Package config provides functionality for loading and accessing application
// configuration and environment variables.
package config

import (
	"os"
	"path/filepath"

	"ledgerlens/ledgerlens/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the current or the
// parent directory, if one exists. It returns the loaded file, or "" when none
// was found.
func LoadEnv() (string, error) {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return envFile, err
		}
		return envFile, nil
	}
	return "", nil
}

// NewLogger builds the application logger from the configuration.
func NewLogger(cfg *Config) logging.Logger {
	return logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
}
