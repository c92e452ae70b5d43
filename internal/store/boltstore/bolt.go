// Package boltstore keeps todo snapshots in a bbolt database, one key per
// namespace inside a single bucket.
package boltstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/store"
)

const bucketTodos = "todos"

// Store implements store.Store on top of bbolt.
type Store struct {
	db     *bolt.DB
	logger *zap.Logger
}

// New opens (creating if needed) the database file at path. Opening blocks
// for at most a second if another process holds the file lock.
func New(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketTodos))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing bucket: %w", err)
	}
	return &Store{db: db, logger: logger.With(zap.String("component", "boltstore"))}, nil
}

func (s *Store) Load(namespace string) []model.Item {
	var items []model.Item
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTodos))
		v := b.Get([]byte(store.Namespace(namespace)))
		if v == nil {
			return nil
		}
		// v is only valid inside the transaction; Decode copies out of it.
		var err error
		items, err = store.Decode(v)
		return err
	})
	if err != nil {
		s.logger.Warn("discarding stored list", zap.String("namespace", namespace), zap.Error(err))
		return []model.Item{}
	}
	if items == nil {
		return []model.Item{}
	}
	return items
}

func (s *Store) Save(namespace string, items []model.Item) error {
	v, err := store.Encode(items)
	if err != nil {
		return err
	}
	return s.put(store.Namespace(namespace), v)
}

func (s *Store) put(key string, v []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTodos)).Put([]byte(key), v)
	})
	if err != nil {
		return fmt.Errorf("saving namespace %q: %w", key, err)
	}
	return nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}
