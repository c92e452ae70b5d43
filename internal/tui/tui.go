// Package tui is the interactive terminal shell: a Bubble Tea list that
// turns key presses into controller intents and controller renders into
// list items.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todomvc/internal/controller"
	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/router"
	"github.com/idilsaglam/todomvc/internal/todo"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	item model.Item
}

func (i listItem) FilterValue() string { return i.item.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	styles Styles
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := d.styles.Muted.Render(d.styles.BoxUnchecked)
	text := it.item.Title
	if it.item.Completed {
		box = d.styles.Success.Render(d.styles.BoxChecked)
		text = d.styles.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.styles.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

// sink is the controller's view. The Bubble Tea model copies its state into
// the list after every intent, all on the program's event loop.
type sink struct {
	state   controller.State
	renders int
}

func (s *sink) Render(st controller.State) {
	s.state = st
	s.renders++
}

// storeChangedMsg reports a write to the backing store from elsewhere.
type storeChangedMsg struct{}

// watchClosedMsg reports that no further change notifications will arrive.
type watchClosedMsg struct{}

// Model is the Bubble Tea model of the interactive list.
type Model struct {
	ctrl   *controller.Controller
	sink   *sink
	styles Styles
	keys   keyMap
	list   list.Model

	// Inline add / edit share one text input
	ti       textinput.Model
	adding   bool
	editing  bool
	editID   string
	inputErr string

	changes       <-chan struct{}
	width, height int
}

// Option configures the interactive list.
type Option func(*Model)

// WithTheme picks the style set by name.
func WithTheme(name string) Option {
	return func(m *Model) { m.styles = StylesFor(name) }
}

// WithChanges makes the list reload whenever ch delivers a value.
func WithChanges(ch <-chan struct{}) Option {
	return func(m *Model) { m.changes = ch }
}

// New builds the interactive list over tm, positioned at r's filter.
func New(tm *todo.Model, r *router.Router, opts ...Option) Model {
	m := Model{
		sink:   &sink{},
		styles: StylesFor(""),
		keys:   defaultKeys(),
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(&m)
	}

	l := list.New(nil, itemDelegate{styles: m.styles}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	// filtering belongs to the router, not the list widget
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.Title = m.styles.Title
	l.Styles.HelpStyle = m.styles.Help
	l.Styles.PaginationStyle = m.styles.Help
	l.AdditionalShortHelpKeys = m.keys.short
	l.AdditionalFullHelpKeys = m.keys.full
	m.list = l

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.ctrl = controller.New(tm, r, m.sink)
	m.sync()
	m.resize()
	return m
}

// Run starts the program on the terminal and blocks until the user quits
// or ctx is cancelled. The model persists every change as it happens.
func Run(ctx context.Context, tm *todo.Model, r *router.Router, opts ...Option) error {
	m := New(tm, r, opts...)
	defer m.ctrl.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	if err := tm.Err(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// State returns the last state rendered by the controller.
func (m Model) State() controller.State { return m.sink.state }

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return watchClosedMsg{}
		}
		return storeChangedMsg{}
	}
}

func (m Model) Init() tea.Cmd { return waitForChange(m.changes) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case storeChangedMsg:
		// our own saves echo back through the watcher; they change nothing
		if m.ctrl.Refresh() {
			m.sync()
		}
		return m, waitForChange(m.changes)
	case watchClosedMsg:
		m.changes = nil
		return m, nil
	}

	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			m.ctrl.Close()
			return m, tea.Quit
		case key.Matches(k, m.keys.Add):
			m.adding = true
			m.ti.SetValue("")
			m.ti.Placeholder = "What needs to be done?"
			return m.openInput()
		case key.Matches(k, m.keys.Edit):
			it, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.editing = true
			m.editID = it.ID
			m.ti.SetValue(it.Title)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Empty title deletes the item"
			return m.openInput()
		case key.Matches(k, m.keys.Toggle):
			if it, ok := m.selected(); ok {
				m.ctrl.Toggle(it.ID)
				m.sync()
			}
			return m, nil
		case key.Matches(k, m.keys.Destroy):
			if it, ok := m.selected(); ok {
				m.ctrl.Destroy(it.ID)
				m.sync()
			}
			return m, nil
		case key.Matches(k, m.keys.ToggleAll):
			m.ctrl.ToggleAll(!m.sink.state.AllCompleted())
			m.sync()
			return m, nil
		case key.Matches(k, m.keys.ClearCompleted):
			m.ctrl.DestroyCompleted()
			m.sync()
			return m, nil
		case key.Matches(k, m.keys.All):
			return m.navigate(model.FilterAll)
		case key.Matches(k, m.keys.Active):
			return m.navigate(model.FilterActive)
		case key.Matches(k, m.keys.Completed):
			return m.navigate(model.FilterCompleted)
		case key.Matches(k, m.keys.NextFilter):
			return m.navigate(nextFilter(m.sink.state.Filter))
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			title := m.ti.Value()
			if m.adding {
				if strings.TrimSpace(title) == "" {
					m.inputErr = "Title cannot be empty"
					return m, nil
				}
				m.ctrl.Create(title)
				m.sync()
				if n := len(m.list.Items()); n > 0 {
					m.list.Select(n - 1)
				}
			} else {
				// an empty title removes the item
				m.ctrl.Update(m.editID, title)
				m.sync()
			}
			m.closeInput()
			return m, nil
		case "esc":
			// aborting leaves the item untouched
			m.closeInput()
			return m, nil
		case "ctrl+c":
			m.ctrl.Close()
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) openInput() (tea.Model, tea.Cmd) {
	m.inputErr = ""
	m.resize()
	cmd := m.ti.Focus()
	return m, cmd
}

func (m *Model) closeInput() {
	m.adding, m.editing = false, false
	m.editID, m.inputErr = "", ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m Model) navigate(f model.Filter) (tea.Model, tea.Cmd) {
	m.ctrl.Navigate(f.Hash())
	m.sync()
	return m, nil
}

func nextFilter(f model.Filter) model.Filter {
	for i, cand := range model.Filters {
		if cand == f {
			return model.Filters[(i+1)%len(model.Filters)]
		}
	}
	return model.FilterAll
}

func (m Model) selected() (model.Item, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return li.item, true
}

// sync copies the last rendered state into the list widget.
func (m *Model) sync() {
	st := m.sink.state
	items := make([]list.Item, 0, len(st.Items))
	for _, it := range st.Items {
		items = append(items, listItem{item: it})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.list.Title = fmt.Sprintf("Todos   %s %d  %s %d  %s %d",
		m.styles.Success.Render("✔"), st.CompletedCount,
		m.styles.Pending.Render("•"), st.ActiveCount,
		m.styles.Accent.Render("Total"), st.Total(),
	)
}

func (m *Model) resize() {
	// border (2) + footer (1), plus the input bar while it is open
	h := m.height - 3
	if m.adding || m.editing {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.list.SetSize(w, h)
	m.ti.Width = w - 4
}

func (m Model) footer() string {
	st := m.sink.state
	parts := []string{fmt.Sprintf("%d %s left", st.ActiveCount, st.ItemWord())}
	var filters []string
	for _, f := range model.Filters {
		label := strings.ToUpper(f.String()[:1]) + f.String()[1:]
		if f == st.Filter {
			filters = append(filters, m.styles.Accent.Underline(true).Render(label))
		} else {
			filters = append(filters, m.styles.Muted.Render(label))
		}
	}
	parts = append(parts, strings.Join(filters, " "))
	if st.CompletedCount > 0 {
		parts = append(parts, m.styles.Muted.Render("C clear completed"))
	}
	if err := m.ctrl.Model().Err(); err != nil {
		parts = append(parts, m.styles.Error.Render("save failed: "+err.Error()))
	}
	return strings.Join(parts, "   ")
}

func (m Model) View() string {
	content := m.list.View() + "\n" + m.footer()
	if m.adding || m.editing {
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += " - " + m.styles.Error.Render(m.inputErr)
		}
		content += "\n" + m.styles.Bar.Render(title+"\n"+m.ti.View())
	}
	return m.styles.Bar.Render(content)
}
