// Package todo holds the in-memory todo list and every operation on it.
//
// A Model is owned by a single goroutine. Each mutation rewrites the full
// snapshot through the injected store.Store; operations on unknown ids and
// empty titles are silent no-ops rather than errors.
package todo

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/store"
)

// Model is the todo list for one namespace.
type Model struct {
	store     store.Store
	namespace string
	items     []model.Item
	newID     func() string
	logger    *zap.Logger
	err       error
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used to report persistence failures.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(m *Model) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// New loads the list stored under namespace and returns a model over it.
func New(st store.Store, namespace string, opts ...Option) *Model {
	m := &Model{
		store:     st,
		namespace: store.Namespace(namespace),
		newID:     uuid.NewString,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(zap.String("namespace", m.namespace))
	m.items = st.Load(m.namespace)
	return m
}

// Namespace returns the key the list is persisted under.
func (m *Model) Namespace() string { return m.namespace }

// Err returns the error from the most recent save, or nil if it succeeded.
func (m *Model) Err() error { return m.err }

// Reload replaces the in-memory list with what the store currently holds
// and reports whether it differs from the list held before.
func (m *Model) Reload() bool {
	items := m.store.Load(m.namespace)
	if slices.Equal(items, m.items) {
		return false
	}
	m.items = items
	return true
}

func (m *Model) persist() {
	m.err = m.store.Save(m.namespace, m.items)
	if m.err != nil {
		m.logger.Error("save failed", zap.Error(m.err))
	}
}

func (m *Model) index(id string) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Create appends a new active item. Titles that are empty after trimming
// are ignored and ok is false.
func (m *Model) Create(title string) (it model.Item, ok bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Item{}, false
	}
	it = model.Item{ID: m.newID(), Title: title}
	m.items = append(m.items, it)
	m.persist()
	return it, true
}

// Toggle flips the completed flag of the item with id.
func (m *Model) Toggle(id string) {
	i := m.index(id)
	if i < 0 {
		return
	}
	m.items[i].Completed = !m.items[i].Completed
	m.persist()
}

// ToggleAll sets the completed flag of every item.
func (m *Model) ToggleAll(completed bool) {
	for i := range m.items {
		m.items[i].Completed = completed
	}
	m.persist()
}

// Update retitles the item with id. An empty title deletes the item.
func (m *Model) Update(id, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		m.Destroy(id)
		return
	}
	i := m.index(id)
	if i < 0 {
		return
	}
	m.items[i].Title = title
	m.persist()
}

// Destroy removes the item with id.
func (m *Model) Destroy(id string) {
	i := m.index(id)
	if i < 0 {
		return
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	m.persist()
}

// DestroyCompleted removes every completed item.
func (m *Model) DestroyCompleted() {
	kept := m.items[:0]
	for _, it := range m.items {
		if !it.Completed {
			kept = append(kept, it)
		}
	}
	m.items = kept
	m.persist()
}

// Get returns the item with id.
func (m *Model) Get(id string) (model.Item, bool) {
	i := m.index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return m.items[i], true
}

// Len returns the number of items.
func (m *Model) Len() int { return len(m.items) }

// Items returns a copy of every item in creation order.
func (m *Model) Items() []model.Item { return model.Clone(m.items) }

// ActiveCount returns the number of items not yet completed.
func (m *Model) ActiveCount() int {
	n := 0
	for _, it := range m.items {
		if !it.Completed {
			n++
		}
	}
	return n
}

// CompletedCount returns the number of completed items.
func (m *Model) CompletedCount() int {
	return len(m.items) - m.ActiveCount()
}

// Filtered returns a new slice holding the items selected by f, in order.
func (m *Model) Filtered(f model.Filter) []model.Item {
	out := make([]model.Item, 0, len(m.items))
	for _, it := range m.items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
