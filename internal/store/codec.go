package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/todomvc/internal/model"
)

// ErrMalformed reports a stored value that does not have the expected shape.
var ErrMalformed = errors.New("malformed todo list")

// wireItem mirrors model.Item with pointer fields so missing keys can be
// told apart from zero values.
type wireItem struct {
	ID        *string `json:"id"`
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// Encode serializes items into the persisted layout.
func Encode(items []model.Item) ([]byte, error) {
	b, err := json.MarshalIndent(model.Clone(items), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a persisted value. An empty value decodes to an empty list.
// Any shape mismatch, including a missing or empty id, a missing title or
// completed flag, or a duplicate id, yields ErrMalformed. Titles are trimmed
// and entries whose title is blank are dropped.
func Decode(b []byte) ([]model.Item, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return []model.Item{}, nil
	}
	var raw []wireItem
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	items := make([]model.Item, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, w := range raw {
		if w.ID == nil || *w.ID == "" || w.Title == nil || w.Completed == nil {
			return nil, fmt.Errorf("%w: entry %d is missing a field", ErrMalformed, i)
		}
		if _, dup := seen[*w.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, *w.ID)
		}
		seen[*w.ID] = struct{}{}
		title := strings.TrimSpace(*w.Title)
		if title == "" {
			continue
		}
		items = append(items, model.Item{ID: *w.ID, Title: title, Completed: *w.Completed})
	}
	return items, nil
}
