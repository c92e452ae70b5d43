// Package sqlitestore keeps todo snapshots in a SQLite key-value table using
// modernc.org/sqlite. It is the closest analogue of browser localStorage: one
// row per namespace, the value being the encoded list.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/store"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store implements store.Store on top of SQLite.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// New opens (creating if needed) the database at path.
// Parent directories are created if needed.
func New(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "sqlitestore"))

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if path != MemoryPath {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
	}

	s := &Store{db: db, logger: logger}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Debug("SQLite store initialized", zap.String("path", path))
	return s, nil
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS namespaces (
			namespace  TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	return err
}

func (s *Store) Load(namespace string) []model.Item {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM namespaces WHERE namespace = ?`,
		store.Namespace(namespace),
	).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("query namespace", zap.String("namespace", namespace), zap.Error(err))
		}
		return []model.Item{}
	}
	items, err := store.Decode([]byte(value))
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
	_, err = s.db.Exec(`
		INSERT INTO namespaces (namespace, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		store.Namespace(namespace), string(b), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving namespace %q: %w", namespace, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// setRaw stores value without validation.
func (s *Store) setRaw(namespace, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO namespaces (namespace, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET value = excluded.value`,
		namespace, value, time.Now().UTC(),
	)
	return err
}
