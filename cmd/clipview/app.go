package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/clipview"
	"golang.org/x/sync/errgroup"
)

// Watcher records clipboard changes until its context is cancelled.
type Watcher interface {
	Watch(ctx context.Context, interval time.Duration) error
}

// App encapsulates the picker session for testing.
type App struct {
	Picker     clipview.Picker
	Keystroker clipview.Keystroker

	// Watcher, when set, records clipboard changes while the picker is open.
	Watcher      Watcher
	PollInterval time.Duration

	// Follow, when set, runs while the picker is open and reports history
	// changes made by other processes.
	Follow func(ctx context.Context) error

	// AutoPaste sends the paste shortcut after an item is pasted.
	AutoPaste bool
}

// Run opens the picker and returns the pasted item, or nil when the picker
// was closed without pasting. The watcher and follower stop when the picker
// closes.
func (a *App) Run(ctx context.Context) (*clipview.Item, error) {
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	if a.Watcher != nil {
		g.Go(func() error {
			return a.Watcher.Watch(gctx, a.PollInterval)
		})
	}

	if a.Follow != nil {
		g.Go(func() error {
			return a.Follow(gctx)
		})
	}

	var picked *clipview.Item
	g.Go(func() error {
		defer stop()
		item, err := a.Picker.Pick(gctx)
		picked = item
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if picked == nil || !a.AutoPaste || a.Keystroker == nil {
		return picked, nil
	}
	if err := a.Keystroker.Paste(ctx); err != nil {
		return picked, fmt.Errorf("auto paste: %w", err)
	}
	return picked, nil
}
