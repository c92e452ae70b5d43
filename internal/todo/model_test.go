package todo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/store"
	"github.com/idilsaglam/todomvc/internal/store/memstore"
)

const ns = "todos-test"

func seqIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func newModel(t *testing.T) (*Model, *memstore.Store) {
	t.Helper()
	st := memstore.New(nil)
	return New(st, ns, seqIDs()), st
}

func TestNewLoadsStoredList(t *testing.T) {
	st := memstore.New(nil)
	require.NoError(t, st.Save(ns, []model.Item{{ID: "x", Title: "stored"}}))

	m := New(st, ns)
	assert.Equal(t, []model.Item{{ID: "x", Title: "stored"}}, m.Items())
}

func TestNewWithMalformedStoreStartsEmpty(t *testing.T) {
	st := memstore.New(nil)
	st.SetRaw(ns, []byte(`{{`))

	m := New(st, ns)
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Items())
}

func TestNewDropsBlankStoredTitles(t *testing.T) {
	st := memstore.New(nil)
	st.SetRaw(ns, []byte(`[
		{"id":"1","title":"   ","completed":false},
		{"id":"2","title":"","completed":true},
		{"id":"3","title":" keep me ","completed":false}
	]`))

	m := New(st, ns)
	assert.Equal(t, []model.Item{{ID: "3", Title: "keep me"}}, m.Items())
	assert.Equal(t, 1, m.ActiveCount())
	assert.Equal(t, 0, m.CompletedCount())
}

func TestEmptyNamespaceUsesDefault(t *testing.T) {
	m := New(memstore.New(nil), "")
	assert.Equal(t, store.DefaultNamespace, m.Namespace())
}

func TestCreate(t *testing.T) {
	m, st := newModel(t)

	it, ok := m.Create("  Buy milk \t")
	require.True(t, ok)
	assert.Equal(t, model.Item{ID: "id-1", Title: "Buy milk"}, it)
	assert.Equal(t, []model.Item{it}, st.Load(ns))
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	m := New(memstore.New(nil), ns)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		it, ok := m.Create(fmt.Sprintf("item %d", i))
		require.True(t, ok)
		require.NotEmpty(t, it.ID)
		require.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
}

func TestCreateEmptyIsNoop(t *testing.T) {
	m, st := newModel(t)
	m.Create("keep")
	saves := st.Saves()

	for _, title := range []string{"", "   ", "\n\t"} {
		_, ok := m.Create(title)
		assert.False(t, ok, "title %q", title)
	}
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, saves, st.Saves(), "no-op create must not write")
}

func TestCountsSumToTotal(t *testing.T) {
	m, _ := newModel(t)
	for i, title := range []string{"a", "b", "c", "d", "e"} {
		it, _ := m.Create(title)
		if i%2 == 0 {
			m.Toggle(it.ID)
		}
		assert.Equal(t, m.Len(), m.ActiveCount()+m.CompletedCount())
	}
	assert.Equal(t, 2, m.ActiveCount())
	assert.Equal(t, 3, m.CompletedCount())
}

func TestToggleTwiceRestores(t *testing.T) {
	m, _ := newModel(t)
	it, _ := m.Create("a")

	m.Toggle(it.ID)
	got, _ := m.Get(it.ID)
	assert.True(t, got.Completed)

	m.Toggle(it.ID)
	got, _ = m.Get(it.ID)
	assert.False(t, got.Completed)
}

func TestUnknownIDIsNoop(t *testing.T) {
	m, st := newModel(t)
	m.Create("a")
	before := m.Items()
	saves := st.Saves()

	m.Toggle("missing")
	m.Update("missing", "new title")
	m.Update("missing", "")
	m.Destroy("missing")

	assert.Equal(t, before, m.Items())
	assert.Equal(t, saves, st.Saves())
}

func TestToggleAll(t *testing.T) {
	m, st := newModel(t)
	m.Create("a")
	m.Create("b")

	m.ToggleAll(true)
	assert.Equal(t, 2, m.CompletedCount())
	for _, it := range st.Load(ns) {
		assert.True(t, it.Completed)
	}

	m.ToggleAll(false)
	assert.Equal(t, 2, m.ActiveCount())
}

func TestUpdateTrimsTitle(t *testing.T) {
	m, st := newModel(t)
	it, _ := m.Create("a")

	m.Update(it.ID, "  renamed  ")
	got, _ := m.Get(it.ID)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "renamed", st.Load(ns)[0].Title)
}

func TestUpdateEmptyDestroys(t *testing.T) {
	m, st := newModel(t)
	a, _ := m.Create("a")
	b, _ := m.Create("b")
	c, _ := m.Create("c")

	m.Update(b.ID, "   ")

	assert.Equal(t, []model.Item{a, c}, m.Items())
	assert.Equal(t, []model.Item{a, c}, st.Load(ns))
}

func TestDestroyKeepsOrder(t *testing.T) {
	m, _ := newModel(t)
	a, _ := m.Create("a")
	b, _ := m.Create("b")
	c, _ := m.Create("c")

	m.Destroy(a.ID)
	assert.Equal(t, []model.Item{b, c}, m.Items())
}

func TestDestroyCompletedThenFilterCompletedIsEmpty(t *testing.T) {
	m, _ := newModel(t)
	for _, title := range []string{"a", "b", "c"} {
		it, _ := m.Create(title)
		if title != "b" {
			m.Toggle(it.ID)
		}
	}

	m.DestroyCompleted()
	assert.Empty(t, m.Filtered(model.FilterCompleted))
	assert.Equal(t, 1, m.Len())
}

func TestFilteredReturnsFreshSlice(t *testing.T) {
	m, _ := newModel(t)
	a, _ := m.Create("a")
	b, _ := m.Create("b")
	m.Toggle(b.ID)

	all := m.Filtered(model.FilterAll)
	all[0].Title = "mutated"
	got, _ := m.Get(a.ID)
	assert.Equal(t, "a", got.Title)

	assert.Equal(t, []string{a.ID}, ids(m.Filtered(model.FilterActive)))
	assert.Equal(t, []string{b.ID}, ids(m.Filtered(model.FilterCompleted)))
	assert.Equal(t, []string{a.ID, b.ID}, ids(m.Filtered(model.FilterAll)))
}

func TestReload(t *testing.T) {
	m, st := newModel(t)
	m.Create("a")
	require.NoError(t, st.Save(ns, []model.Item{{ID: "other", Title: "written elsewhere"}}))

	assert.True(t, m.Reload())
	assert.Equal(t, []model.Item{{ID: "other", Title: "written elsewhere"}}, m.Items())

	assert.False(t, m.Reload(), "nothing changed since the last load")
}

func TestBuyMilkScenario(t *testing.T) {
	m, _ := newModel(t)

	it, ok := m.Create("Buy milk")
	require.True(t, ok)
	if diff := cmp.Diff([]model.Item{{ID: it.ID, Title: "Buy milk"}}, m.Items()); diff != "" {
		t.Fatalf("after create (-want +got):\n%s", diff)
	}

	m.Toggle(it.ID)
	got, _ := m.Get(it.ID)
	assert.True(t, got.Completed)
	assert.Equal(t, 0, m.ActiveCount())
	assert.Equal(t, 1, m.CompletedCount())
	assert.Empty(t, m.Filtered(model.FilterActive))
	assert.Equal(t, []model.Item{got}, m.Filtered(model.FilterCompleted))
}

func TestDestroyCompletedPersistsSnapshot(t *testing.T) {
	m, st := newModel(t)
	a, _ := m.Create("A")
	b, _ := m.Create("B")
	m.Toggle(b.ID)

	m.DestroyCompleted()

	assert.Equal(t, []model.Item{a}, m.Items())
	assert.Equal(t, []model.Item{a}, st.Load(ns))
}

type failingStore struct {
	*memstore.Store
	fail bool
}

var errDiskFull = errors.New("disk full")

func (f *failingStore) Save(namespace string, items []model.Item) error {
	if f.fail {
		return errDiskFull
	}
	return f.Store.Save(namespace, items)
}

func TestSaveErrorIsRecordedNotRaised(t *testing.T) {
	st := &failingStore{Store: memstore.New(nil), fail: true}
	m := New(st, ns, seqIDs())

	it, ok := m.Create("a")
	require.True(t, ok)
	assert.ErrorIs(t, m.Err(), errDiskFull)
	assert.Equal(t, []model.Item{it}, m.Items(), "in-memory state still changes")

	st.fail = false
	m.Toggle(it.ID)
	assert.NoError(t, m.Err())
}

func ids(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
