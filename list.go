package clipview

// NoSelection is the selected index of a list whose filtered view is empty.
const NoSelection = -1

// ListState is the state of the history list: the items, the active query,
// the filtered view and the selection. It is a value; every transition
// returns the next state and leaves the receiver untouched.
type ListState struct {
	items    []Item
	filtered []Item
	query    string
	selected int
	loaded   bool
}

// NewListState returns an empty, not yet loaded list.
func NewListState() ListState {
	return ListState{selected: NoSelection}
}

// Load replaces the items with a fresh snapshot, re-applies the query and
// clamps the selection into the new filtered view.
func (s ListState) Load(items []Item) ListState {
	s.items = append([]Item(nil), items...)
	s.filtered = Filter(s.items, s.query)
	s.loaded = true
	s.selected = clampSelection(s.selected, len(s.filtered))
	return s
}

// SetQuery normalizes and applies a search query. The selection moves to the
// first result, or NoSelection when nothing matches.
func (s ListState) SetQuery(query string) ListState {
	s.query = NormalizeQuery(query)
	s.filtered = Filter(s.items, s.query)
	if len(s.filtered) > 0 {
		s.selected = 0
	} else {
		s.selected = NoSelection
	}
	return s
}

// MoveSelection moves the selection by delta with wraparound. It is a no-op
// on an empty view.
func (s ListState) MoveSelection(delta int) ListState {
	n := len(s.filtered)
	if n == 0 {
		return s
	}
	if s.selected < 0 || s.selected >= n {
		if delta >= 0 {
			s.selected = 0
		} else {
			s.selected = n - 1
		}
		return s
	}
	s.selected = ((s.selected+delta)%n + n) % n
	return s
}

// Select moves the selection to index, clamped into the filtered view.
func (s ListState) Select(index int) ListState {
	n := len(s.filtered)
	switch {
	case n == 0:
		s.selected = NoSelection
	case index < 0:
		s.selected = 0
	case index >= n:
		s.selected = n - 1
	default:
		s.selected = index
	}
	return s
}

// Delete removes the item with id from both the items and the filtered view
// and clamps the selection.
func (s ListState) Delete(id int64) ListState {
	s.items = withoutID(s.items, id)
	s.filtered = withoutID(s.filtered, id)
	s.selected = clampSelection(s.selected, len(s.filtered))
	return s
}

// DeleteAt removes the item at index in the filtered view. Out of range
// indexes leave the state unchanged.
func (s ListState) DeleteAt(index int) ListState {
	it, ok := s.At(index)
	if !ok {
		return s
	}
	return s.Delete(it.ID)
}

// Selected returns the selected item, or false when the view is empty.
func (s ListState) Selected() (Item, bool) {
	return s.At(s.selected)
}

// At returns the item at index in the filtered view.
func (s ListState) At(index int) (Item, bool) {
	if index < 0 || index >= len(s.filtered) {
		return Item{}, false
	}
	return s.filtered[index], true
}

// SelectedIndex returns the selected index, or NoSelection.
func (s ListState) SelectedIndex() int {
	if len(s.filtered) == 0 {
		return NoSelection
	}
	return s.selected
}

// Items returns all items, most recent first.
func (s ListState) Items() []Item { return s.items }

// Filtered returns the items matching the current query.
func (s ListState) Filtered() []Item { return s.filtered }

// Query returns the normalized query.
func (s ListState) Query() string { return s.query }

// Len returns the size of the filtered view.
func (s ListState) Len() int { return len(s.filtered) }

// Loading reports whether no snapshot has been loaded yet.
func (s ListState) Loading() bool { return !s.loaded }

// Searching reports whether a query is active.
func (s ListState) Searching() bool { return s.query != "" }

func clampSelection(selected, n int) int {
	switch {
	case n == 0:
		return NoSelection
	case selected < 0:
		return 0
	case selected >= n:
		return n - 1
	default:
		return selected
	}
}

func withoutID(items []Item, id int64) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
