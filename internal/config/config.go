// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"traveline/local-app/internal/model"
)

// DefaultPath is used when neither the -config flag nor TRAVELINE_CONFIG is set.
const DefaultPath = "./data/config.json"

// Default returns the configuration written on first run.
func Default() *model.Config {
	return &model.Config{
		APIBaseURL:            "http://localhost:8000/api",
		RequestTimeoutSeconds: 15,
		StorageType:           "sqlite",
		StorageDir:            "./data",
		StorageFile:           "traveline.db",
		LogFolder:             "./logs",
		CommandLog:            "commands.log",
		ErrorLog:              "errors.log",
		InfoLog:               "info.log",
		LogLevel:              "info",
		HistoryFile:           "./data/history.txt",
	}
}

// ResolvePath picks the config file location: the flag value, then the
// TRAVELINE_CONFIG environment variable, then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("TRAVELINE_CONFIG"); env != "" {
		return env
	}
	return DefaultPath
}

// Load reads the configuration from the JSON file at path, applying
// environment overrides. If the file doesn't exist, a default one is created.
func Load(path string) (*model.Config, error) {
	dataDir := filepath.Dir(path)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := Save(path, Default()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	// An optional .env beside the config file feeds the TRAVELINE_* overrides.
	if err := godotenv.Load(filepath.Join(dataDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	var cfg model.Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if cfg.StorageType != "sqlite" && cfg.StorageType != "memory" {
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("request_timeout_seconds must be positive, got %d", cfg.RequestTimeoutSeconds)
	}

	return &cfg, nil
}

// Save writes the provided configuration to the JSON file at path.
func Save(path string, cfg *model.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
