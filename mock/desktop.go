package mock

import (
	"context"

	"github.com/fwojciec/clipview"
	"github.com/fwojciec/clipview/desktop"
)

// Compile-time interface verification.
var (
	_ clipview.AppDetector  = (*AppDetector)(nil)
	_ clipview.Keystroker   = (*Keystroker)(nil)
	_ desktop.CommandRunner = (*CommandRunner)(nil)
)

// AppDetector is a mock implementation of clipview.AppDetector.
type AppDetector struct {
	FrontmostFn func(ctx context.Context) (string, error)
}

func (a *AppDetector) Frontmost(ctx context.Context) (string, error) {
	return a.FrontmostFn(ctx)
}

// Keystroker is a mock implementation of clipview.Keystroker.
type Keystroker struct {
	PasteFn func(ctx context.Context) error
}

func (k *Keystroker) Paste(ctx context.Context) error {
	return k.PasteFn(ctx)
}

// CommandRunner is a mock implementation of desktop.CommandRunner.
type CommandRunner struct {
	RunFn func(ctx context.Context, name string, args ...string) (string, error)
}

func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	return r.RunFn(ctx, name, args...)
}
