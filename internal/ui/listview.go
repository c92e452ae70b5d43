package ui

import (
	"fmt"

	"github.com/idilsaglam/todomvc/internal/controller"
	"github.com/idilsaglam/todomvc/internal/model"
)

const maxTitle = 80

// ListView renders controller state as a framed panel, in the layout of the
// classic todo footer: counts, the filter in use and the items.
type ListView struct {
	Printer *Printer
	// Group splits the list into pending and done sections.
	Group bool
	// Positions maps item ids to their 1-based position in the full list,
	// which is what the toggle/edit/rm commands accept.
	Positions map[string]int
}

// Positions numbers items from 1 in list order.
func Positions(items []model.Item) map[string]int {
	out := make(map[string]int, len(items))
	for i, it := range items {
		out[it.ID] = i + 1
	}
	return out
}

func (v *ListView) Render(s controller.State) {
	t := v.Printer.Theme
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Sprint("Todos"),
		t.Success.Sprint(t.SymDone), s.CompletedCount,
		t.Pending.Sprint(t.SymPending), s.ActiveCount,
		t.Accent.Sprint("Total"), s.Total(),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Sprint(ProgressBar(s.CompletedCount, s.Total(), 28)))
	lines = append(lines, "")

	if v.Group {
		lines = append(lines, v.groupLines(s.Items)...)
	} else {
		lines = append(lines, v.flatLines(s.Items)...)
	}
	lines = append(lines, "")
	lines = append(lines, v.footer(s))
	v.Printer.Panel(lines)
}

func (v *ListView) footer(s controller.State) string {
	t := v.Printer.Theme
	out := fmt.Sprintf("%d %s left  ", s.ActiveCount, s.ItemWord())
	for _, f := range model.Filters {
		label := " " + f.String() + " "
		if f == s.Filter {
			out += t.Accent.Sprint("[" + f.String() + "]")
		} else {
			out += t.Muted.Sprint(label)
		}
	}
	if s.CompletedCount > 0 {
		out += "  " + t.Muted.Sprint("clear-completed")
	}
	return out
}

func (v *ListView) flatLines(items []model.Item) []string {
	t := v.Printer.Theme
	if len(items) == 0 {
		return []string{t.Muted.Sprint("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := fmt.Sprintf("%2d.", v.Positions[it.ID])
		box, c := t.BoxUnchecked, t.Muted
		if it.Completed {
			box, c = t.BoxChecked, t.Success
		}
		title := it.Title
		if r := []rune(title); len(r) > maxTitle {
			title = string(r[:maxTitle-3]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			t.Muted.Sprint(idx), c.Sprint(box), title, t.Muted.Sprint(shortID(it.ID))))
	}
	return out
}

func (v *ListView) groupLines(items []model.Item) []string {
	t := v.Printer.Theme
	var pend, done []model.Item
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Sprint("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Sprint("(none)"))
	} else {
		lines = append(lines, v.flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Sprint("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Sprint("(none)"))
	} else {
		lines = append(lines, v.flatLines(done)...)
	}
	return lines
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
