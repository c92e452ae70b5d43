// Package controller connects the todo model, the filter router and a view.
//
// Every intent is applied to the model and followed by exactly one render;
// every filter change reported by the router also triggers one render.
package controller

import (
	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/router"
	"github.com/idilsaglam/todomvc/internal/todo"
)

// State is the render payload handed to a View.
type State struct {
	Items          []model.Item
	ActiveCount    int
	CompletedCount int
	Filter         model.Filter
}

// Total returns the number of items in the whole list, not just the view.
func (s State) Total() int { return s.ActiveCount + s.CompletedCount }

// AllCompleted reports whether a non-empty list has no active items.
func (s State) AllCompleted() bool { return s.Total() > 0 && s.ActiveCount == 0 }

// ItemWord returns "item" or "items" to follow ActiveCount.
func (s State) ItemWord() string {
	if s.ActiveCount == 1 {
		return "item"
	}
	return "items"
}

// View renders controller state. Render is called synchronously on the
// goroutine that issued the intent or navigation.
type View interface {
	Render(State)
}

// ViewFunc adapts a function to the View interface.
type ViewFunc func(State)

func (f ViewFunc) Render(s State) { f(s) }

// Controller forwards intents to the model and re-renders the view.
type Controller struct {
	model       *todo.Model
	router      *router.Router
	view        View
	unsubscribe func()
}

// New wires m, r and v together and renders the initial state.
func New(m *todo.Model, r *router.Router, v View) *Controller {
	c := &Controller{model: m, router: r, view: v}
	c.unsubscribe = r.Subscribe(func(model.Filter) { c.render() })
	c.render()
	return c
}

// State returns the payload the next render would produce.
func (c *Controller) State() State {
	f := c.router.Current()
	return State{
		Items:          c.model.Filtered(f),
		ActiveCount:    c.model.ActiveCount(),
		CompletedCount: c.model.CompletedCount(),
		Filter:         f,
	}
}

// Model returns the underlying todo model.
func (c *Controller) Model() *todo.Model { return c.model }

func (c *Controller) render() {
	c.view.Render(c.State())
}

// Create adds an item titled title; blank titles are ignored.
func (c *Controller) Create(title string) {
	c.model.Create(title)
	c.render()
}

// Toggle flips the completed flag of the item with id.
func (c *Controller) Toggle(id string) {
	c.model.Toggle(id)
	c.render()
}

// ToggleAll marks every item completed or active.
func (c *Controller) ToggleAll(completed bool) {
	c.model.ToggleAll(completed)
	c.render()
}

// Update retitles the item with id. An empty title destroys it.
func (c *Controller) Update(id, title string) {
	c.model.Update(id, title)
	c.render()
}

// Destroy removes the item with id.
func (c *Controller) Destroy(id string) {
	c.model.Destroy(id)
	c.render()
}

// DestroyCompleted removes every completed item.
func (c *Controller) DestroyCompleted() {
	c.model.DestroyCompleted()
	c.render()
}

// Navigate moves the router to hash. A render follows only if the filter
// changed.
func (c *Controller) Navigate(hash string) {
	c.router.Navigate(hash)
}

// Refresh reloads the model from its store and renders if the stored list
// differs from the one on screen. It reports whether a render happened.
func (c *Controller) Refresh() bool {
	if !c.model.Reload() {
		return false
	}
	c.render()
	return true
}

// Close detaches the controller from the router. Safe to call twice.
func (c *Controller) Close() {
	c.unsubscribe()
}
