// Package memstore keeps serialized todo snapshots in process memory.
// It stands in for durable storage in tests and throwaway sessions.
package memstore

import (
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/store"
)

// Store holds one encoded snapshot per namespace.
type Store struct {
	mu     sync.Mutex
	data   map[string][]byte
	saves  int
	logger *zap.Logger
}

// New returns an empty in-memory store. A nil logger disables logging.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		data:   make(map[string][]byte),
		logger: logger.With(zap.String("component", "memstore")),
	}
}

func (s *Store) Load(namespace string) []model.Item {
	s.mu.Lock()
	b, ok := s.data[store.Namespace(namespace)]
	s.mu.Unlock()
	if !ok {
		return []model.Item{}
	}
	items, err := store.Decode(b)
	if err != nil {
		s.logger.Warn("discarding stored list", zap.String("namespace", namespace), zap.Error(err))
		return []model.Item{}
	}
	return items
}

func (s *Store) Save(namespace string, items []model.Item) error {
	b, err := store.Encode(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[store.Namespace(namespace)] = b
	s.saves++
	s.mu.Unlock()
	return nil
}

// Raw returns the encoded value stored under namespace.
func (s *Store) Raw(namespace string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[store.Namespace(namespace)]
	return b, ok
}

// SetRaw replaces the value stored under namespace without validation.
// Tests use it to plant malformed data.
func (s *Store) SetRaw(namespace string, b []byte) {
	s.mu.Lock()
	s.data[store.Namespace(namespace)] = b
	s.mu.Unlock()
}

// Saves reports how many times Save has succeeded.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
