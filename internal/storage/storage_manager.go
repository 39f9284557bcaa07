package storage

import (
	"fmt"
	"path/filepath"

	"traveline/local-app/internal/log"
	"traveline/local-app/internal/model"
)

// StorageMemory selects the non-durable in-process store.
const StorageMemory = "memory"

// New creates the KeyValueStore selected by the config's storage type.
func New(cfg *model.Config, logger *log.Logger) (KeyValueStore, error) {
	if cfg.StorageType == StorageMemory {
		return NewMemoryStore(), nil
	}

	dbDriver, err := validateDBDriver(cfg.StorageType)
	if err != nil {
		return nil, fmt.Errorf("invalid storage type '%s': %w", cfg.StorageType, err)
	}

	db, err := NewDatabase(dbDriver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database instance: %w", err)
	}

	dataSourceName := filepath.Join(cfg.StorageDir, cfg.StorageFile)
	if err := db.Open(dataSourceName); err != nil {
		return nil, fmt.Errorf("failed to open database connection '%s': %w", dataSourceName, err)
	}

	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return NewSQLStore(db, logger), nil
}
