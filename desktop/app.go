package desktop

import (
	"context"
	"runtime"

	"github.com/fwojciec/clipview"
)

// Compile-time interface verification.
var _ clipview.AppDetector = (*AppDetector)(nil)

const frontmostScript = `tell application "System Events" to return name of first application process whose frontmost is true`

// AppDetector reports the focused application. It uses AppleScript on macOS
// and xdotool on Linux; other platforms report no application.
type AppDetector struct {
	runner CommandRunner
	goos   string
}

// NewAppDetector creates a detector for the running platform.
func NewAppDetector(runner CommandRunner) *AppDetector {
	return NewAppDetectorFor(runner, runtime.GOOS)
}

// NewAppDetectorFor creates a detector for the given GOOS value.
func NewAppDetectorFor(runner CommandRunner, goos string) *AppDetector {
	return &AppDetector{runner: runner, goos: goos}
}

// Frontmost returns the focused application name, or "" when the platform
// offers no way to find it.
func (d *AppDetector) Frontmost(ctx context.Context) (string, error) {
	switch d.goos {
	case "darwin":
		return d.runner.Run(ctx, "osascript", "-e", frontmostScript)
	case "linux":
		return d.runner.Run(ctx, "xdotool", "getactivewindow", "getwindowclassname")
	default:
		return "", nil
	}
}
