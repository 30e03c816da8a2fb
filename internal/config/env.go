package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override finboard.yaml.
const (
	EnvStorageDriver = "FINBOARD_STORAGE_DRIVER"
	EnvStoragePath   = "FINBOARD_STORAGE_PATH"
	EnvLogLevel      = "FINBOARD_LOG_LEVEL"
	EnvLogFormat     = "FINBOARD_LOG_FORMAT"
	EnvActivityLog   = "FINBOARD_ACTIVITY_LOG"
)

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment. A missing file is not an error. Existing variables win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from FINBOARD_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvStorageDriver); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv(EnvStoragePath); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvActivityLog); v != "" {
		c.ActivityLog = v
	}
}
