package mock

import (
	"context"

	"github.com/fwojciec/clipview"
)

// Compile-time interface verification.
var _ clipview.Picker = (*Picker)(nil)

// Picker is a mock implementation of clipview.Picker.
type Picker struct {
	PickFn func(ctx context.Context) (*clipview.Item, error)
}

func (p *Picker) Pick(ctx context.Context) (*clipview.Item, error) {
	return p.PickFn(ctx)
}
