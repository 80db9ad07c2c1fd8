package mock

import "github.com/fwojciec/clipview"

// Compile-time interface verification.
var _ clipview.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of clipview.Clipboard.
type Clipboard struct {
	ReadFn  func() (string, error)
	WriteFn func(content string) error
}

func (c *Clipboard) Read() (string, error) {
	return c.ReadFn()
}

func (c *Clipboard) Write(content string) error {
	return c.WriteFn(content)
}
