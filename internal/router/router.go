// Package router derives the active view filter from a navigation hash.
package router

import (
	"strings"
	"sync"

	"github.com/idilsaglam/todomvc/internal/model"
)

// FilterFromHash maps a navigation hash such as "#/active" to a filter.
// The leading "#", a trailing "/" and surrounding whitespace are optional.
// Empty or unrecognized hashes map to model.FilterAll.
func FilterFromHash(hash string) model.Filter {
	h := strings.TrimSpace(hash)
	h = strings.TrimPrefix(h, "#")
	h = strings.Trim(h, "/")
	switch strings.ToLower(h) {
	case "active":
		return model.FilterActive
	case "completed":
		return model.FilterCompleted
	default:
		return model.FilterAll
	}
}

// Router holds the current filter and notifies subscribers when navigation
// changes it.
type Router struct {
	mu      sync.Mutex
	hash    string
	current model.Filter
	nextID  int
	subs    map[int]func(model.Filter)
}

// New returns a router positioned at initialHash.
func New(initialHash string) *Router {
	return &Router{
		hash:    initialHash,
		current: FilterFromHash(initialHash),
		subs:    make(map[int]func(model.Filter)),
	}
}

// Current returns the active filter.
func (r *Router) Current() model.Filter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Hash returns the last hash navigated to.
func (r *Router) Hash() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hash
}

// Navigate moves to hash. Subscribers are called with the new filter only
// when it differs from the current one.
func (r *Router) Navigate(hash string) {
	f := FilterFromHash(hash)

	r.mu.Lock()
	r.hash = hash
	if f == r.current {
		r.mu.Unlock()
		return
	}
	r.current = f
	subs := make([]func(model.Filter), 0, len(r.subs))
	for id := 0; id < r.nextID; id++ {
		if fn, ok := r.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	r.mu.Unlock()

	// called without the lock so callbacks may navigate or unsubscribe
	for _, fn := range subs {
		fn(f)
	}
}

// Subscribe registers fn to be called after each filter change, in
// subscription order. The returned function removes it; calling it more
// than once is harmless.
func (r *Router) Subscribe(fn func(model.Filter)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
		})
	}
}

// Subscribers returns the number of registered callbacks.
func (r *Router) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
