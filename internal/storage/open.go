package storage

import (
	"fmt"
	"log/slog"

	"busline/internal/cache"
	"busline/internal/config"
	"busline/internal/database"
	apperrors "busline/internal/errors"
	"busline/internal/repository"
)

// Backend is a repository.Storage that owns a connection.
type Backend interface {
	repository.Storage
	Close() error
}

// Open creates the storage backend selected by cfg.Storage.Backend.
func Open(cfg *config.Config) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		slog.Warn("Using in-memory storage, bookings are lost on restart")
		return NewMemoryStorage(), nil

	case config.StorageFile:
		fs, err := NewFileStorage(cfg.Storage.FilePath)
		if err != nil {
			return nil, err
		}
		slog.Info("Using file storage", "path", fs.Path())
		return fs, nil

	case config.StoragePostgres:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, err
		}
		return database.NewRecordStorage(db, cfg.Storage.Key), nil

	case config.StorageValkey:
		vs, err := cache.NewValkeyStorage(cfg.Valkey, cfg.Storage.Key)
		if err != nil {
			return nil, err
		}
		slog.Info("Using Valkey storage", "addr", cfg.Valkey.Addr, "key", cfg.Storage.Key)
		return vs, nil
	}

	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownStorageBackend, cfg.Storage.Backend)
}
