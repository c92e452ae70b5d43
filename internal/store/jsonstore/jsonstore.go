package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/store"
)

// JSON-backed storage. One human-readable file per namespace inside a data
// directory. No locking; last writer wins.

const fileExt = ".json"

// Store keeps each namespace in <dir>/<namespace>.json.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New returns a store rooted at dir. The directory is created on first Save.
func New(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger.With(zap.String("component", "jsonstore"))}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the file backing namespace.
func (s *Store) Path(namespace string) string {
	return filepath.Join(s.dir, fileName(namespace))
}

// fileName escapes every byte outside [A-Za-z0-9_-] as %XX, so distinct
// namespaces never share a file and no name can start with a dot.
func fileName(namespace string) string {
	const hex = "0123456789ABCDEF"
	ns := store.Namespace(namespace)
	var b strings.Builder
	b.Grow(len(ns) + len(fileExt))
	for i := 0; i < len(ns); i++ {
		c := ns[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0F])
		}
	}
	b.WriteString(fileExt)
	return b.String()
}

func (s *Store) Load(namespace string) []model.Item {
	p := s.Path(namespace)
	b, err := os.ReadFile(p)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("read file", zap.String("path", p), zap.Error(err))
		}
		return []model.Item{}
	}
	items, err := store.Decode(b)
	if err != nil {
		s.logger.Warn("discarding stored list", zap.String("path", p), zap.Error(err))
		return []model.Item{}
	}
	return items
}

func (s *Store) Save(namespace string, items []model.Item) error {
	b, err := store.Encode(items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	p := s.Path(namespace)
	// Write next to the target and rename so readers never see a partial file.
	tmp, err := os.CreateTemp(s.dir, ".tmp-*"+fileExt)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename: %w", err)
	}
	s.logger.Debug("saved", zap.String("path", p), zap.Int("items", len(items)))
	return nil
}
