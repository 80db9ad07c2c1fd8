// Package history implements the clipboard history service: it captures
// clipboard changes, persists the history and serves the picker.
package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/clipview"
)

// Compile-time interface verification.
var _ clipview.Service = (*Service)(nil)

// DefaultPollInterval is how often Watch reads the clipboard.
const DefaultPollInterval = 250 * time.Millisecond

// Service owns the clipboard history. It is safe for concurrent use by the
// capture loop and the picker, and several processes may open Services over
// one store: every change re-reads the store under its lock before writing.
type Service struct {
	store     clipview.ItemStore
	clipboard clipview.Clipboard
	apps      clipview.AppDetector
	logger    *slog.Logger
	now       func() time.Time
	maxItems  int
	maxAge    time.Duration

	mu       sync.Mutex
	history  *clipview.History
	lastSeen string

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// Option configures a Service.
type Option func(*Service)

// WithAppDetector tags captured items with the focused application.
func WithAppDetector(d clipview.AppDetector) Option {
	return func(s *Service) {
		s.apps = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithMaxItems caps the history size.
func WithMaxItems(n int) Option {
	return func(s *Service) {
		s.maxItems = n
	}
}

// WithMaxAge sets the age past which items are purged on open. Zero or a
// negative duration disables purging.
func WithMaxAge(d time.Duration) Option {
	return func(s *Service) {
		s.maxAge = d
	}
}

// Open loads the history from store, purges items older than the maximum age
// and returns a ready Service. The purged history is written back only when
// something expired.
func Open(store clipview.ItemStore, cb clipview.Clipboard, opts ...Option) (*Service, error) {
	s := &Service{
		store:     store,
		clipboard: cb,
		logger:    slog.Default(),
		now:       time.Now,
		maxItems:  clipview.MaxItems,
		maxAge:    clipview.MaxAge,
		subs:      make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	s.history = s.newHistory(items)

	if s.maxAge <= 0 {
		return s, nil
	}
	now := s.now()
	if expired := s.newHistory(items).Purge(now, s.maxAge); expired == 0 {
		return s, nil
	}
	var removed int
	if err := s.update(func(h *clipview.History) error {
		removed = h.Purge(now, s.maxAge)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}
	s.logger.Info("purged old items", "count", removed)
	return s, nil
}

// Items returns a snapshot of the history, most recent first. The store is
// re-read so changes made by other processes are included.
func (s *Service) Items(ctx context.Context) ([]clipview.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s.history.Items(), nil
}

// Capture adds content to the history, tagged with the focused application.
// It returns the validation error or clipview.ErrDuplicate when the content
// is rejected.
func (s *Service) Capture(ctx context.Context, content string) (clipview.Item, error) {
	if err := clipview.ValidateContent(content); err != nil {
		return clipview.Item{}, err
	}

	app := s.frontmost(ctx)

	var item clipview.Item
	s.mu.Lock()
	err := s.update(func(h *clipview.History) error {
		item = clipview.NewItem(content, app, s.now())
		if items := h.Items(); len(items) > 0 && item.ID <= items[0].ID {
			// Two captures inside one millisecond.
			item.ID = items[0].ID + 1
		}
		return h.Add(item)
	})
	s.mu.Unlock()
	if err != nil {
		return clipview.Item{}, fmt.Errorf("capture: %w", err)
	}

	s.notify()
	s.logger.Debug("captured item", "id", item.ID, "type", item.Type().String(), "source_app", app)
	return item, nil
}

// Poll reads the clipboard and captures its text when it differs from what
// was last seen. It reports whether an item was added.
func (s *Service) Poll(ctx context.Context) (bool, error) {
	text, err := s.clipboard.Read()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	changed := text != s.lastSeen && strings.TrimSpace(text) != ""
	if changed {
		s.lastSeen = text
	}
	s.mu.Unlock()
	if !changed {
		return false, nil
	}

	if _, err := s.Capture(ctx, text); err != nil {
		if errors.Is(err, clipview.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Watch polls the clipboard every interval until ctx is cancelled. The
// current clipboard content is captured immediately. Poll errors are logged
// and do not stop the loop.
func (s *Service) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	s.logger.Info("watching clipboard", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Poll(ctx); err != nil {
			s.logPollError(err)
		}
		select {
		case <-ctx.Done():
			s.logger.Info("stopped watching clipboard")
			return nil
		case <-ticker.C:
		}
	}
}

// Paste places the item with id on the clipboard. The written text is not
// captured again by Poll.
func (s *Service) Paste(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	err := s.reload()
	item, ok := s.history.Get(id)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("paste item %d: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("paste item %d: %w", id, clipview.ErrItemNotFound)
	}

	if err := s.clipboard.Write(item.Content); err != nil {
		return fmt.Errorf("paste item %d: %w", id, err)
	}

	s.mu.Lock()
	s.lastSeen = item.Content
	s.mu.Unlock()

	s.logger.Debug("pasted item", "id", id)
	return nil
}

// Delete removes the item with id and persists the history.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	err := s.update(func(h *clipview.History) error {
		return h.Delete(id)
	})
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	s.notify()
	s.logger.Debug("deleted item", "id", id)
	return nil
}

// Changed tells subscribers that the stored history was modified outside
// this Service, for example by a watcher running in another process.
func (s *Service) Changed() {
	s.notify()
}

// update applies fn to the stored history under the store's lock and caches
// the result once it is written. Callers hold s.mu.
func (s *Service) update(fn func(h *clipview.History) error) error {
	var next *clipview.History
	err := s.store.Update(func(items []clipview.Item) ([]clipview.Item, error) {
		h := s.newHistory(items)
		if err := fn(h); err != nil {
			return nil, err
		}
		next = h
		return h.Items(), nil
	})
	if err != nil {
		return err
	}
	s.history = next
	return nil
}

// reload refreshes the cached history from the store. Callers hold s.mu.
func (s *Service) reload() error {
	items, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	s.history = s.newHistory(items)
	return nil
}

func (s *Service) newHistory(items []clipview.Item) *clipview.History {
	return clipview.NewHistory(items, clipview.WithLimit(s.maxItems))
}

// Subscribe registers fn to be called after every change to the history.
// Callbacks run on the goroutine that made the change, outside any lock.
func (s *Service) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Service) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Service) frontmost(ctx context.Context) string {
	if s.apps == nil {
		return ""
	}
	app, err := s.apps.Frontmost(ctx)
	if err != nil {
		s.logger.Debug("detect source app", "error", err)
		return ""
	}
	return app
}

func (s *Service) logPollError(err error) {
	switch {
	case errors.Is(err, clipview.ErrContentTooLong):
		s.logger.Debug("skipped clipboard content", "error", err)
	default:
		s.logger.Warn("poll clipboard", "error", err)
	}
}
