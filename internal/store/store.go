// Package store persists todo lists as whole-list snapshots keyed by namespace.
//
// Every backend shares the same layout: the value stored under a namespace is
// a JSON array of {"id", "title", "completed"} objects. Reading never fails
// from the caller's point of view; anything that does not decode into that
// shape is treated as "nothing stored".
package store

import (
	"context"

	"github.com/idilsaglam/todomvc/internal/model"
)

// DefaultNamespace is used when a caller passes an empty namespace.
const DefaultNamespace = "todos-go"

// Store is the persistence contract the todo model depends on.
type Store interface {
	// Load returns the list stored under namespace, or an empty list when
	// nothing is stored or the stored value is malformed.
	Load(namespace string) []model.Item
	// Save overwrites the whole value stored under namespace.
	Save(namespace string, items []model.Item) error
}

// Namespace normalizes ns, substituting DefaultNamespace for an empty value.
func Namespace(ns string) string {
	if ns == "" {
		return DefaultNamespace
	}
	return ns
}

// Watcher is implemented by stores that can report writes made outside this
// process, the way a browser reports storage events from other tabs.
type Watcher interface {
	Watch(ctx context.Context, namespace string) (<-chan struct{}, error)
}
