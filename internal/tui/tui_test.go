package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/router"
	"github.com/idilsaglam/todomvc/internal/store/memstore"
	"github.com/idilsaglam/todomvc/internal/todo"
)

const ns = "todos-tui"

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func newTestModel(t *testing.T, seed ...string) (Model, *memstore.Store) {
	t.Helper()
	st := memstore.New(nil)
	tm := todo.New(st, ns)
	for _, title := range seed {
		tm.Create(title)
	}
	m := New(tm, router.New(""), WithTheme("mono"))
	t.Cleanup(m.ctrl.Close)
	return m, st
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func titles(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestInitialStateFromStore(t *testing.T) {
	m, _ := newTestModel(t, "A", "B")
	assert.Equal(t, []string{"A", "B"}, titles(m.State().Items))
	assert.Len(t, m.list.Items(), 2)
	assert.Equal(t, model.FilterAll, m.State().Filter)
}

func TestAddItem(t *testing.T) {
	m, st := newTestModel(t)
	m = send(t, m, runes("a"))
	require.True(t, m.adding)

	m = send(t, m, runes("Buy milk"), enter)
	assert.False(t, m.adding)
	assert.Equal(t, []string{"Buy milk"}, titles(st.Load(ns)))
	assert.Len(t, m.list.Items(), 1)
}

func TestAddEmptyShowsError(t *testing.T) {
	m, st := newTestModel(t)
	m = send(t, m, runes("a"), runes("   "), enter)
	assert.True(t, m.adding)
	assert.NotEmpty(t, m.inputErr)
	assert.Empty(t, st.Load(ns))

	m = send(t, m, esc)
	assert.False(t, m.adding)
}

func TestToggleSelected(t *testing.T) {
	m, st := newTestModel(t, "A")
	m = send(t, m, space)
	assert.True(t, st.Load(ns)[0].Completed)
	assert.Equal(t, 1, m.State().CompletedCount)

	send(t, m, space)
	assert.False(t, st.Load(ns)[0].Completed)
}

func TestEditAndAbort(t *testing.T) {
	m, st := newTestModel(t, "A")

	m = send(t, m, runes("e"))
	require.True(t, m.editing)
	assert.Equal(t, "A", m.ti.Value())

	m = send(t, m, runes("bc"), esc)
	assert.False(t, m.editing)
	assert.Equal(t, "A", st.Load(ns)[0].Title)

	m = send(t, m, runes("e"), runes("bc"), enter)
	assert.Equal(t, "Abc", st.Load(ns)[0].Title)
}

func TestEditToEmptyDeletes(t *testing.T) {
	m, st := newTestModel(t, "A", "B")
	m = send(t, m, runes("e"))
	m.ti.SetValue("  ")
	m = send(t, m, enter)

	assert.Equal(t, []string{"B"}, titles(st.Load(ns)))
	assert.Len(t, m.list.Items(), 1)
}

func TestDestroySelected(t *testing.T) {
	m, st := newTestModel(t, "A", "B")
	m = send(t, m, runes("d"))
	assert.Equal(t, []string{"B"}, titles(st.Load(ns)))
	assert.Len(t, m.list.Items(), 1)
}

func TestToggleAllAndClearCompleted(t *testing.T) {
	m, st := newTestModel(t, "A", "B")
	m = send(t, m, runes("A"))
	assert.Equal(t, 2, m.State().CompletedCount)

	m = send(t, m, runes("A"))
	assert.Equal(t, 0, m.State().CompletedCount)

	m = send(t, m, space, runes("C"))
	assert.Equal(t, []string{"B"}, titles(st.Load(ns)))
	assert.Equal(t, 0, m.State().CompletedCount)
}

func TestFilterKeys(t *testing.T) {
	m, _ := newTestModel(t, "A", "B")
	m = send(t, m, space) // complete A

	m = send(t, m, runes("2"))
	assert.Equal(t, model.FilterActive, m.State().Filter)
	assert.Equal(t, []string{"B"}, titles(m.State().Items))
	assert.Len(t, m.list.Items(), 1)

	m = send(t, m, runes("3"))
	assert.Equal(t, []string{"A"}, titles(m.State().Items))

	m = send(t, m, tab)
	assert.Equal(t, model.FilterAll, m.State().Filter)

	m = send(t, m, tab)
	assert.Equal(t, model.FilterActive, m.State().Filter)

	m = send(t, m, runes("1"))
	assert.Equal(t, model.FilterAll, m.State().Filter)
}

func TestStoreChangeReloads(t *testing.T) {
	m, st := newTestModel(t, "A")
	require.NoError(t, st.Save(ns, []model.Item{{ID: "ext", Title: "from elsewhere"}}))

	m = send(t, m, storeChangedMsg{})
	assert.Equal(t, []string{"from elsewhere"}, titles(m.State().Items))
}

func TestOwnSaveEchoKeepsState(t *testing.T) {
	st := memstore.New(nil)
	tm := todo.New(st, ns)
	tm.Create("A")
	tm.Create("B")
	changes := make(chan struct{}, 1)
	m := New(tm, router.New(""), WithTheme("mono"), WithChanges(changes))
	t.Cleanup(m.ctrl.Close)
	before := m.State()
	saves := st.Saves()

	next, cmd := m.Update(storeChangedMsg{})
	m = next.(Model)
	assert.Equal(t, before, m.State())
	assert.Equal(t, saves, st.Saves())
	assert.NotNil(t, cmd, "keeps listening for changes")
}

func TestWaitForChange(t *testing.T) {
	assert.Nil(t, waitForChange(nil))

	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	cmd := waitForChange(ch)
	require.NotNil(t, cmd)
	assert.Equal(t, storeChangedMsg{}, cmd())

	close(ch)
	assert.Equal(t, watchClosedMsg{}, cmd())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewShowsFooter(t *testing.T) {
	m, _ := newTestModel(t, "A", "B")
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}, space)

	v := m.View()
	assert.Contains(t, v, "1 item left")
	assert.Contains(t, v, "Active")
	assert.Contains(t, v, "clear completed")

	m = send(t, m, runes("a"))
	assert.Contains(t, m.View(), "Add new item")
}
