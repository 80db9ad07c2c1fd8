package jsonl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/clipview"
	"github.com/gofrs/flock"
)

// Compile-time interface verification.
var _ clipview.ItemStore = (*Store)(nil)

// Store persists clipboard history to a JSONL file. Writes take an advisory
// lock on a sibling ".lock" file so a watcher and a picker running in
// separate processes never overwrite each other's changes.
type Store struct {
	path string

	mu   sync.Mutex
	lock *flock.Flock
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the history. Returns an empty slice if the file doesn't exist.
// Files are replaced atomically, so Load needs no lock.
func (s *Store) Load() ([]clipview.Item, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	return decode(f)
}

// Save replaces the stored history with items, creating parent directories
// if needed.
func (s *Store) Save(items []clipview.Item) error {
	return s.locked(func() error {
		return writeFile(s.path, items)
	})
}

// Update reads the history, applies fn and writes the result, holding the
// file lock throughout.
func (s *Store) Update(fn func([]clipview.Item) ([]clipview.Item, error)) error {
	return s.locked(func() error {
		items, err := s.Load()
		if err != nil {
			return err
		}
		next, err := fn(items)
		if err != nil {
			return err
		}
		return writeFile(s.path, next)
	})
}

// Watch calls fn after the history file is written or replaced, until ctx is
// cancelled. The parent directory is watched because saves rename a new file
// into place.
func (s *Store) Watch(ctx context.Context, fn func()) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch history: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch history: %w", err)
	}

	name := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == name && ev.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) {
				fn()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch history: %w", err)
		}
	}
}

// locked runs fn holding both the in-process mutex and the file lock.
func (s *Store) locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock history: %w", err)
	}
	defer s.lock.Unlock()

	return fn()
}
