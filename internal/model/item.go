package model

// Item is the domain model for a todo entry.
// ID is assigned once at creation and never changes.
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Clone returns a copy of items that shares no backing array with the input.
// A nil input yields an empty, non-nil slice.
func Clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
