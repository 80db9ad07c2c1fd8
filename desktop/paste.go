package desktop

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/fwojciec/clipview"
)

// Compile-time interface verification.
var _ clipview.Keystroker = (*Keystroker)(nil)

// DefaultPasteDelay is how long Paste waits for focus to return to the
// previous application before sending the shortcut.
const DefaultPasteDelay = 100 * time.Millisecond

const (
	pasteScript     = `tell application "System Events" to keystroke "v" using command down`
	pastePowerShell = `Add-Type -AssemblyName System.Windows.Forms; [System.Windows.Forms.SendKeys]::SendWait("^v")`
)

// Keystroker sends the platform paste shortcut to the focused application.
type Keystroker struct {
	runner CommandRunner
	goos   string
	delay  time.Duration
}

// KeystrokerOption configures a Keystroker.
type KeystrokerOption func(*Keystroker)

// WithDelay sets the wait before the shortcut is sent.
func WithDelay(d time.Duration) KeystrokerOption {
	return func(k *Keystroker) {
		k.delay = d
	}
}

// WithGOOS overrides the target platform.
func WithGOOS(goos string) KeystrokerOption {
	return func(k *Keystroker) {
		k.goos = goos
	}
}

// NewKeystroker creates a Keystroker for the running platform.
func NewKeystroker(runner CommandRunner, opts ...KeystrokerOption) *Keystroker {
	k := &Keystroker{runner: runner, goos: runtime.GOOS, delay: DefaultPasteDelay}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Paste waits for the configured delay, then sends Cmd+V on macOS, Ctrl+V via
// xdotool on Linux, or Ctrl+V via SendKeys on Windows.
func (k *Keystroker) Paste(ctx context.Context) error {
	if k.delay > 0 {
		timer := time.NewTimer(k.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	var err error
	switch k.goos {
	case "darwin":
		_, err = k.runner.Run(ctx, "osascript", "-e", pasteScript)
	case "windows":
		_, err = k.runner.Run(ctx, "powershell.exe", "-Command", pastePowerShell)
	case "linux", "freebsd", "openbsd", "netbsd":
		_, err = k.runner.Run(ctx, "xdotool", "key", "ctrl+v")
	default:
		return fmt.Errorf("paste simulation not supported on %s", k.goos)
	}
	if err != nil {
		return fmt.Errorf("simulate paste: %w", err)
	}
	return nil
}
