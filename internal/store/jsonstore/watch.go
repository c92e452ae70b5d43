package jsonstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reports changes to the file backing namespace, including writes made
// by other processes. The returned channel receives a value per burst of
// changes (sends are coalesced while the receiver is busy) and is closed once
// ctx is done.
func (s *Store) Watch(ctx context.Context, namespace string) (<-chan struct{}, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	// Watch the directory: Save replaces the file by rename, which would
	// silently drop a watch placed on the file itself.
	if err := w.Add(s.dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", s.dir, err)
	}

	target := filepath.Clean(s.Path(namespace))
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
					!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("watch", zap.String("dir", s.dir), zap.Error(err))
			}
		}
	}()
	return out, nil
}
