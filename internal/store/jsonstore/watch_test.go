package jsonstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todomvc/internal/model"
)

func TestWatchSeesExternalWrite(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "todos")
	require.NoError(t, err)

	// A second store over the same directory plays the other process.
	other := New(dir, nil)
	require.NoError(t, other.Save("todos", []model.Item{{ID: "1", Title: "from elsewhere"}}))

	select {
	case _, ok := <-events:
		require.True(t, ok, "channel closed before any event")
	case <-time.After(5 * time.Second):
		t.Fatal("no change event within 5s")
	}
	require.Equal(t, "from elsewhere", s.Load("todos")[0].Title)
}

func TestWatchIgnoresOtherNamespaces(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "todos")
	require.NoError(t, err)

	require.NoError(t, s.Save("todos-other", []model.Item{{ID: "1", Title: "x"}}))

	select {
	case <-events:
		t.Fatal("unexpected event for another namespace")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	s := New(t.TempDir(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := s.Watch(ctx, "todos")
	require.NoError(t, err)
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}
