package clipview

import "time"

// History is the capped, most-recent-first collection of captured items.
// It is not safe for concurrent use.
type History struct {
	items []Item
	limit int
}

// HistoryOption configures a History.
type HistoryOption func(*History)

// WithLimit caps the number of retained items. Values below one are ignored.
func WithLimit(n int) HistoryOption {
	return func(h *History) {
		if n > 0 {
			h.limit = n
		}
	}
}

// NewHistory creates a History seeded with items, most recent first.
// Items beyond the limit are dropped from the tail.
func NewHistory(items []Item, opts ...HistoryOption) *History {
	h := &History{limit: MaxItems}
	for _, opt := range opts {
		opt(h)
	}
	h.items = append([]Item(nil), items...)
	h.evict()
	return h
}

// NewItem builds an item captured at now.
func NewItem(content, sourceApp string, now time.Time) Item {
	return Item{
		ID:        now.UnixMilli(),
		Content:   content,
		Timestamp: now.Unix(),
		SourceApp: sourceApp,
	}
}

// Add prepends item. Invalid content is rejected with the ValidateContent
// error, and content equal to the current most recent item with ErrDuplicate.
// The oldest item is evicted when the limit is exceeded.
func (h *History) Add(item Item) error {
	if err := ValidateContent(item.Content); err != nil {
		return err
	}
	if len(h.items) > 0 && h.items[0].Content == item.Content {
		return ErrDuplicate
	}
	h.items = append([]Item{item}, h.items...)
	h.evict()
	return nil
}

// Delete removes the item with id.
func (h *History) Delete(id int64) error {
	for i, it := range h.items {
		if it.ID == id {
			h.items = append(h.items[:i:i], h.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Get returns the item with id.
func (h *History) Get(id int64) (Item, bool) {
	for _, it := range h.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Purge drops items captured more than maxAge before now and returns how
// many were removed.
func (h *History) Purge(now time.Time, maxAge time.Duration) int {
	cutoff := now.Add(-maxAge).Unix()
	kept := make([]Item, 0, len(h.items))
	for _, it := range h.items {
		if it.Timestamp > cutoff {
			kept = append(kept, it)
		}
	}
	removed := len(h.items) - len(kept)
	h.items = kept
	return removed
}

// Items returns a copy of the items, most recent first.
func (h *History) Items() []Item {
	return append([]Item(nil), h.items...)
}

// Len returns the number of items.
func (h *History) Len() int {
	return len(h.items)
}

func (h *History) evict() {
	if len(h.items) > h.limit {
		h.items = h.items[:h.limit]
	}
}
