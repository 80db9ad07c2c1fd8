// Package clipview provides domain types for browsing and re-pasting clipboard history.
package clipview

import (
	"context"
	"errors"
	"time"
)

// History limits.
const (
	MaxItems         = 100
	MaxContentLength = 10000
	MaxAge           = 7 * 24 * time.Hour
)

// Domain errors.
var (
	ErrEmptyContent   = errors.New("clipboard content is empty")
	ErrContentTooLong = errors.New("clipboard content is too long")
	ErrDuplicate      = errors.New("clipboard content equals the most recent item")
	ErrItemNotFound   = errors.New("clipboard item not found")
)

// Item is a single captured clipboard entry.
type Item struct {
	ID        int64  `json:"id"`         // Unix milliseconds at capture
	Content   string `json:"content"`    // Canonical clipboard text
	Timestamp int64  `json:"timestamp"`  // Unix seconds at capture
	SourceApp string `json:"source_app"` // Focused application, empty when unknown
}

// Type returns the inferred content type of the item.
func (i Item) Type() ContentType {
	return Classify(i.Content)
}

// Service is the collaborator the picker talks to. It owns the history and
// performs the side effects the picker requests.
type Service interface {
	// Items returns a snapshot of the history, most recent first.
	Items(ctx context.Context) ([]Item, error)
	// Paste places the item with the given id on the system clipboard.
	Paste(ctx context.Context, id int64) error
	// Delete removes the item with the given id from the history.
	Delete(ctx context.Context, id int64) error
	// Subscribe registers fn to be called whenever the history changes.
	// The returned function removes the subscription.
	Subscribe(fn func()) (unsubscribe func())
}

// ItemStore persists the history. Several processes may share one store.
type ItemStore interface {
	Load() ([]Item, error)
	Save(items []Item) error
	// Update replaces the stored items with fn applied to the current ones.
	// Concurrent writers are serialized. An error from fn aborts the write
	// and is returned as is.
	Update(fn func(items []Item) ([]Item, error)) error
}

// Clipboard reads and writes the system clipboard as plain text.
type Clipboard interface {
	Read() (string, error)
	Write(content string) error
}

// AppDetector reports the name of the application that currently has focus.
type AppDetector interface {
	// Frontmost returns the focused application name, or an empty string
	// when it cannot be determined on this platform.
	Frontmost(ctx context.Context) (string, error)
}

// Keystroker simulates the platform paste shortcut in the focused application.
type Keystroker interface {
	Paste(ctx context.Context) error
}

// Picker displays the history and blocks until the user pastes an item or
// dismisses the list. A nil item means nothing was pasted.
type Picker interface {
	Pick(ctx context.Context) (*Item, error)
}
