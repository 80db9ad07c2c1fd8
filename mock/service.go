package mock

import (
	"context"

	"github.com/fwojciec/clipview"
)

// Compile-time interface verification.
var _ clipview.Service = (*Service)(nil)

// Service is a mock implementation of clipview.Service.
type Service struct {
	ItemsFn     func(ctx context.Context) ([]clipview.Item, error)
	PasteFn     func(ctx context.Context, id int64) error
	DeleteFn    func(ctx context.Context, id int64) error
	SubscribeFn func(fn func()) func()
}

func (s *Service) Items(ctx context.Context) ([]clipview.Item, error) {
	return s.ItemsFn(ctx)
}

func (s *Service) Paste(ctx context.Context, id int64) error {
	return s.PasteFn(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.DeleteFn(ctx, id)
}

// Subscribe returns a no-op unsubscribe when SubscribeFn is unset.
func (s *Service) Subscribe(fn func()) func() {
	if s.SubscribeFn == nil {
		return func() {}
	}
	return s.SubscribeFn(fn)
}
