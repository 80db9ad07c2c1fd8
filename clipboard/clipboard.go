// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/clipview"
)

// Ensure System implements the Clipboard interface.
var _ clipview.Clipboard = (*System)(nil)

// ErrUnsupported is returned when no clipboard utility is available on this
// platform (for example, a Linux host without xclip, xsel or wl-clipboard).
var ErrUnsupported = errors.New("clipboard not supported on " + runtime.GOOS)

// System implements Clipboard using the platform clipboard utilities.
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Read returns the current clipboard text.
func (s *System) Read() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// Write replaces the clipboard text with content.
func (s *System) Write(content string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
