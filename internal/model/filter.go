package model

// Filter selects which items a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// String returns the string representation of Filter
func (f Filter) String() string {
	return string(f)
}

// Hash returns the canonical navigation hash for f.
func (f Filter) Hash() string {
	switch f {
	case FilterActive:
		return "#/active"
	case FilterCompleted:
		return "#/completed"
	default:
		return "#/"
	}
}

// Match reports whether it belongs in the view selected by f.
// Unknown filters behave like FilterAll.
func (f Filter) Match(it Item) bool {
	switch f {
	case FilterActive:
		return !it.Completed
	case FilterCompleted:
		return it.Completed
	default:
		return true
	}
}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterActive || f == FilterCompleted
}
