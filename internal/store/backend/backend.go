// Package backend opens the store.Store selected by configuration.
package backend

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/idilsaglam/todomvc/internal/config"
	"github.com/idilsaglam/todomvc/internal/store"
	"github.com/idilsaglam/todomvc/internal/store/boltstore"
	"github.com/idilsaglam/todomvc/internal/store/jsonstore"
	"github.com/idilsaglam/todomvc/internal/store/memstore"
	"github.com/idilsaglam/todomvc/internal/store/sqlitestore"
)

// File names used inside storage.data_dir.
const (
	SQLiteFile = "todos.db"
	BoltFile   = "todos.bolt"
)

// Open returns the configured store and a function releasing it.
func Open(cfg config.StorageConfig, logger *zap.Logger) (store.Store, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendJSON:
		return jsonstore.New(cfg.DataDir, logger), noop, nil
	case config.BackendMemory:
		return memstore.New(logger), noop, nil
	case config.BackendSQLite:
		s, err := sqlitestore.New(filepath.Join(cfg.DataDir, SQLiteFile), logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendBolt:
		s, err := boltstore.New(filepath.Join(cfg.DataDir, BoltFile), logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
