package main

import (
	"fmt"

	"github.com/mcqdeck/mcqdeck/internal/config"
	"github.com/mcqdeck/mcqdeck/internal/database"
	"github.com/mcqdeck/mcqdeck/internal/storage"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newStore builds the configured store: the JSON file store or the MySQL
// one, wrapped with the remote mirror when a mirror URL is configured.
func newStore(cfg *config.Config) (storage.Store, error) {
	var store storage.Store

	switch cfg.Storage.Backend {
	case "mysql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open() > %w", err)
		}
		store, err = storage.NewDBStore(db)
		if err != nil {
			return nil, fmt.Errorf("storage.NewDBStore() > %w", err)
		}
	default:
		fileStore, err := storage.NewFileStore(cfg.Storage.DataDirectory)
		if err != nil {
			return nil, fmt.Errorf("storage.NewFileStore() > %w", err)
		}
		store = fileStore
	}

	if cfg.Mirror.BaseURL != "" {
		store = storage.NewMirroredStore(store, storage.NewRestMirror(cfg.Mirror.BaseURL, cfg.Mirror.APIKey))
	}
	return store, nil
}
