package history_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/clipview"
	"github.com/fwojciec/clipview/history"
	"github.com/fwojciec/clipview/jsonl"
	"github.com/fwojciec/clipview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// memStore is an in-memory ItemStore that records writes.
func memStore(initial []clipview.Item) (*mock.ItemStore, *[][]clipview.Item) {
	var mu sync.Mutex
	items := initial
	var saves [][]clipview.Item
	return &mock.ItemStore{
		LoadFn: func() ([]clipview.Item, error) {
			mu.Lock()
			defer mu.Unlock()
			return slices.Clone(items), nil
		},
		SaveFn: func(next []clipview.Item) error {
			mu.Lock()
			defer mu.Unlock()
			items = next
			saves = append(saves, next)
			return nil
		},
		UpdateFn: func(fn func([]clipview.Item) ([]clipview.Item, error)) error {
			mu.Lock()
			defer mu.Unlock()
			next, err := fn(slices.Clone(items))
			if err != nil {
				return err
			}
			items = next
			saves = append(saves, next)
			return nil
		},
	}, &saves
}

// fakeClipboard holds clipboard text in memory.
type fakeClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *fakeClipboard) mock() *mock.Clipboard {
	return &mock.Clipboard{
		ReadFn: func() (string, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			return c.text, nil
		},
		WriteFn: func(content string) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.text = content
			return nil
		},
	}
}

func (c *fakeClipboard) set(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openService(t *testing.T, store clipview.ItemStore, cb clipview.Clipboard, opts ...history.Option) *history.Service {
	t.Helper()
	now := testNow
	opts = append([]history.Option{
		history.WithLogger(quietLogger()),
		history.WithClock(func() time.Time {
			now = now.Add(time.Second)
			return now
		}),
	}, opts...)
	svc, err := history.Open(store, cb, opts...)
	require.NoError(t, err)
	return svc
}

func contents(items []clipview.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Content
	}
	return out
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("purges items older than seven days and saves", func(t *testing.T) {
		t.Parallel()

		fresh := clipview.Item{ID: 2, Content: "fresh", Timestamp: testNow.Add(-time.Hour).Unix()}
		stale := clipview.Item{ID: 1, Content: "stale", Timestamp: testNow.Add(-8 * 24 * time.Hour).Unix()}
		store, saves := memStore([]clipview.Item{fresh, stale})

		svc, err := history.Open(store, (&fakeClipboard{}).mock(),
			history.WithLogger(quietLogger()),
			history.WithClock(func() time.Time { return testNow }))
		require.NoError(t, err)

		items, err := svc.Items(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []clipview.Item{fresh}, items)
		require.Len(t, *saves, 1)
	})

	t.Run("does not save when nothing was purged", func(t *testing.T) {
		t.Parallel()

		store, saves := memStore([]clipview.Item{{ID: 1, Content: "a", Timestamp: testNow.Unix()}})

		_, err := history.Open(store, (&fakeClipboard{}).mock(),
			history.WithLogger(quietLogger()),
			history.WithClock(func() time.Time { return testNow }))

		require.NoError(t, err)
		assert.Empty(t, *saves)
	})

	t.Run("keeps everything when max age is disabled", func(t *testing.T) {
		t.Parallel()

		stale := clipview.Item{ID: 1, Content: "stale", Timestamp: testNow.Add(-30 * 24 * time.Hour).Unix()}
		store, saves := memStore([]clipview.Item{stale})

		svc, err := history.Open(store, (&fakeClipboard{}).mock(),
			history.WithLogger(quietLogger()),
			history.WithClock(func() time.Time { return testNow }),
			history.WithMaxAge(0))
		require.NoError(t, err)

		items, err := svc.Items(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []clipview.Item{stale}, items)
		assert.Empty(t, *saves)
	})

	t.Run("honors a custom max age", func(t *testing.T) {
		t.Parallel()

		recent := clipview.Item{ID: 2, Content: "recent", Timestamp: testNow.Add(-30 * time.Minute).Unix()}
		older := clipview.Item{ID: 1, Content: "older", Timestamp: testNow.Add(-2 * time.Hour).Unix()}
		store, saves := memStore([]clipview.Item{recent, older})

		svc, err := history.Open(store, (&fakeClipboard{}).mock(),
			history.WithLogger(quietLogger()),
			history.WithClock(func() time.Time { return testNow }),
			history.WithMaxAge(time.Hour))
		require.NoError(t, err)

		items, err := svc.Items(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []clipview.Item{recent}, items)
		assert.Len(t, *saves, 1)
	})

	t.Run("wraps load errors", func(t *testing.T) {
		t.Parallel()

		store := &mock.ItemStore{
			LoadFn: func() ([]clipview.Item, error) { return nil, errors.New("disk gone") },
		}

		_, err := history.Open(store, (&fakeClipboard{}).mock())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "load history")
	})
}

func TestService_Capture(t *testing.T) {
	t.Parallel()

	t.Run("prepends item tagged with source app and saves", func(t *testing.T) {
		t.Parallel()

		store, saves := memStore(nil)
		apps := &mock.AppDetector{
			FrontmostFn: func(context.Context) (string, error) { return "Terminal", nil },
		}
		svc := openService(t, store, (&fakeClipboard{}).mock(), history.WithAppDetector(apps))

		_, err := svc.Capture(context.Background(), "first")
		require.NoError(t, err)
		item, err := svc.Capture(context.Background(), "second")
		require.NoError(t, err)

		assert.Equal(t, "Terminal", item.SourceApp)
		items, _ := svc.Items(context.Background())
		assert.Equal(t, []string{"second", "first"}, contents(items))
		assert.Len(t, *saves, 2)
	})

	t.Run("rejects adjacent duplicates but allows older repeats", func(t *testing.T) {
		t.Parallel()

		store, _ := memStore(nil)
		svc := openService(t, store, (&fakeClipboard{}).mock())
		ctx := context.Background()

		_, err := svc.Capture(ctx, "a")
		require.NoError(t, err)
		_, err = svc.Capture(ctx, "a")
		require.ErrorIs(t, err, clipview.ErrDuplicate)
		_, err = svc.Capture(ctx, "b")
		require.NoError(t, err)
		_, err = svc.Capture(ctx, "a")
		require.NoError(t, err)

		items, _ := svc.Items(ctx)
		assert.Equal(t, []string{"a", "b", "a"}, contents(items))
	})

	t.Run("rejects blank and oversized content", func(t *testing.T) {
		t.Parallel()

		store, saves := memStore(nil)
		svc := openService(t, store, (&fakeClipboard{}).mock())

		_, err := svc.Capture(context.Background(), "  \n\t")
		require.ErrorIs(t, err, clipview.ErrEmptyContent)
		_, err = svc.Capture(context.Background(), string(make([]rune, clipview.MaxContentLength+1)))
		require.ErrorIs(t, err, clipview.ErrContentTooLong)

		assert.Empty(t, *saves)
	})

	t.Run("evicts the oldest item past the cap", func(t *testing.T) {
		t.Parallel()

		store, _ := memStore(nil)
		svc := openService(t, store, (&fakeClipboard{}).mock(), history.WithMaxItems(2))
		ctx := context.Background()

		for _, s := range []string{"a", "b", "c"} {
			_, err := svc.Capture(ctx, s)
			require.NoError(t, err)
		}

		items, _ := svc.Items(ctx)
		assert.Equal(t, []string{"c", "b"}, contents(items))
	})

	t.Run("keeps ids unique within one millisecond", func(t *testing.T) {
		t.Parallel()

		store, _ := memStore(nil)
		svc, err := history.Open(store, (&fakeClipboard{}).mock(),
			history.WithLogger(quietLogger()),
			history.WithClock(func() time.Time { return testNow }))
		require.NoError(t, err)

		first, err := svc.Capture(context.Background(), "a")
		require.NoError(t, err)
		second, err := svc.Capture(context.Background(), "b")
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("captures without source app when detection fails", func(t *testing.T) {
		t.Parallel()

		store, _ := memStore(nil)
		apps := &mock.AppDetector{
			FrontmostFn: func(context.Context) (string, error) { return "", errors.New("no display") },
		}
		svc := openService(t, store, (&fakeClipboard{}).mock(), history.WithAppDetector(apps))

		item, err := svc.Capture(context.Background(), "text")

		require.NoError(t, err)
		assert.Empty(t, item.SourceApp)
	})
}

func TestService_Poll(t *testing.T) {
	t.Parallel()

	t.Run("captures changed clipboard text once", func(t *testing.T) {
		t.Parallel()

		cb := &fakeClipboard{}
		store, _ := memStore(nil)
		svc := openService(t, store, cb.mock())
		ctx := context.Background()

		cb.set("hello")
		added, err := svc.Poll(ctx)
		require.NoError(t, err)
		assert.True(t, added)

		added, err = svc.Poll(ctx)
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("ignores blank clipboard", func(t *testing.T) {
		t.Parallel()

		cb := &fakeClipboard{}
		store, _ := memStore(nil)
		svc := openService(t, store, cb.mock())

		cb.set("   ")
		added, err := svc.Poll(context.Background())

		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("does not recapture pasted content", func(t *testing.T) {
		t.Parallel()

		cb := &fakeClipboard{}
		store, _ := memStore(nil)
		svc := openService(t, store, cb.mock())
		ctx := context.Background()

		cb.set("old")
		_, err := svc.Poll(ctx)
		require.NoError(t, err)
		cb.set("new")
		_, err = svc.Poll(ctx)
		require.NoError(t, err)

		items, _ := svc.Items(ctx)
		require.NoError(t, svc.Paste(ctx, items[1].ID))
		added, err := svc.Poll(ctx)

		require.NoError(t, err)
		assert.False(t, added)
		items, _ = svc.Items(ctx)
		assert.Equal(t, []string{"new", "old"}, contents(items))
	})

	t.Run("returns clipboard read errors", func(t *testing.T) {
		t.Parallel()

		store, _ := memStore(nil)
		cb := &mock.Clipboard{ReadFn: func() (string, error) { return "", errors.New("locked") }}
		svc := openService(t, store, cb)

		_, err := svc.Poll(context.Background())

		require.Error(t, err)
	})
}

func TestService_Watch(t *testing.T) {
	t.Parallel()

	cb := &fakeClipboard{text: "initial"}
	store, _ := memStore(nil)
	svc := openService(t, store, cb.mock())

	changed := make(chan struct{}, 10)
	unsubscribe := svc.Subscribe(func() { changed <- struct{}{} })
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Watch(ctx, 5*time.Millisecond) }()

	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("initial clipboard content was not captured")
	}

	cb.set("next")
	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("clipboard change was not captured")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop on cancel")
	}

	items, _ := svc.Items(context.Background())
	assert.Equal(t, []string{"next", "initial"}, contents(items))
}

func TestService_Paste(t *testing.T) {
	t.Parallel()

	t.Run("writes item content to clipboard", func(t *testing.T) {
		t.Parallel()

		cb := &fakeClipboard{}
		store, _ := memStore([]clipview.Item{{ID: 7, Content: "payload", Timestamp: testNow.Unix()}})
		svc := openService(t, store, cb.mock())

		require.NoError(t, svc.Paste(context.Background(), 7))

		assert.Equal(t, "payload", cb.text)
	})

	t.Run("returns ErrItemNotFound for unknown id", func(t *testing.T) {
		t.Parallel()

		store, _ := memStore(nil)
		svc := openService(t, store, (&fakeClipboard{}).mock())

		err := svc.Paste(context.Background(), 99)

		require.ErrorIs(t, err, clipview.ErrItemNotFound)
	})

	t.Run("wraps clipboard write errors", func(t *testing.T) {
		t.Parallel()

		store, _ := memStore([]clipview.Item{{ID: 7, Content: "payload", Timestamp: testNow.Unix()}})
		cb := &mock.Clipboard{
			ReadFn:  func() (string, error) { return "", nil },
			WriteFn: func(string) error { return errors.New("denied") },
		}
		svc := openService(t, store, cb)

		err := svc.Paste(context.Background(), 7)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "paste item 7")
	})
}

func TestService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes item, saves and notifies", func(t *testing.T) {
		t.Parallel()

		store, saves := memStore([]clipview.Item{
			{ID: 2, Content: "b", Timestamp: testNow.Unix()},
			{ID: 1, Content: "a", Timestamp: testNow.Unix()},
		})
		svc := openService(t, store, (&fakeClipboard{}).mock())
		var notified int
		svc.Subscribe(func() { notified++ })

		require.NoError(t, svc.Delete(context.Background(), 2))

		items, _ := svc.Items(context.Background())
		assert.Equal(t, []string{"a"}, contents(items))
		require.Len(t, *saves, 1)
		assert.Equal(t, 1, notified)
	})

	t.Run("returns ErrItemNotFound for unknown id", func(t *testing.T) {
		t.Parallel()

		store, saves := memStore(nil)
		svc := openService(t, store, (&fakeClipboard{}).mock())

		err := svc.Delete(context.Background(), 5)

		require.ErrorIs(t, err, clipview.ErrItemNotFound)
		assert.Empty(t, *saves)
	})

	t.Run("honors cancelled context", func(t *testing.T) {
		t.Parallel()

		store, _ := memStore([]clipview.Item{{ID: 1, Content: "a", Timestamp: testNow.Unix()}})
		svc := openService(t, store, (&fakeClipboard{}).mock())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, svc.Delete(ctx, 1), context.Canceled)
	})
}

func TestService_Subscribe(t *testing.T) {
	t.Parallel()

	store, _ := memStore(nil)
	svc := openService(t, store, (&fakeClipboard{}).mock())
	var calls int
	unsubscribe := svc.Subscribe(func() { calls++ })

	_, err := svc.Capture(context.Background(), "a")
	require.NoError(t, err)
	unsubscribe()
	unsubscribe()
	_, err = svc.Capture(context.Background(), "b")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestService_SharedStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.jsonl")
	old := clipview.Item{ID: 1, Content: "old", Timestamp: testNow.Unix()}
	require.NoError(t, jsonl.NewStore(path).Save([]clipview.Item{old}))

	ctx := context.Background()
	watcher := openService(t, jsonl.NewStore(path), (&fakeClipboard{}).mock())
	picker := openService(t, jsonl.NewStore(path), (&fakeClipboard{}).mock())

	_, err := watcher.Capture(ctx, "new")
	require.NoError(t, err)

	items, err := picker.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, contents(items), "picker sees the watcher's capture")

	require.NoError(t, picker.Delete(ctx, old.ID))
	stored, err := jsonl.NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, contents(stored), "delete keeps the watcher's capture")

	_, err = watcher.Capture(ctx, "another")
	require.NoError(t, err)
	stored, err = jsonl.NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"another", "new"}, contents(stored), "deleted item stays deleted")

	require.NoError(t, picker.Paste(ctx, stored[0].ID), "picker finds items captured elsewhere")
}

func TestService_Changed(t *testing.T) {
	t.Parallel()

	store, _ := memStore(nil)
	svc := openService(t, store, (&fakeClipboard{}).mock())
	var calls int
	svc.Subscribe(func() { calls++ })

	svc.Changed()

	assert.Equal(t, 1, calls)
}
