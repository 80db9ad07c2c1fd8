package mock

import "github.com/fwojciec/clipview"

// Compile-time interface verification.
var _ clipview.ItemStore = (*ItemStore)(nil)

// ItemStore is a mock implementation of clipview.ItemStore.
type ItemStore struct {
	LoadFn   func() ([]clipview.Item, error)
	SaveFn   func(items []clipview.Item) error
	UpdateFn func(fn func([]clipview.Item) ([]clipview.Item, error)) error
}

func (s *ItemStore) Load() ([]clipview.Item, error) {
	return s.LoadFn()
}

func (s *ItemStore) Save(items []clipview.Item) error {
	return s.SaveFn(items)
}

func (s *ItemStore) Update(fn func([]clipview.Item) ([]clipview.Item, error)) error {
	return s.UpdateFn(fn)
}
