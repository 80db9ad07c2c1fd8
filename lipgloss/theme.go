// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"fmt"
	"strings"

	lg "github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/clipview"
)

// Compile-time interface verification.
var _ clipview.Theme = (*Theme)(nil)

// Theme implements clipview.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  clipview.Styles
	palette clipview.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() clipview.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() clipview.Palette {
	return t.palette
}

// Theme names accepted by ThemeByName.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ThemeByName returns the named theme. "auto" picks dark or light from the
// terminal background; an empty name is treated as auto.
func ThemeByName(name string) (*Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ThemeAuto:
		return DefaultTheme(), nil
	case ThemeDark:
		return DarkTheme(), nil
	case ThemeLight:
		return LightTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q (want auto, dark or light)", name)
	}
}

// DefaultTheme returns the theme matching the terminal background,
// falling back to dark when it cannot be queried.
func DefaultTheme() *Theme {
	if !lg.HasDarkBackground() {
		return LightTheme()
	}
	return DarkTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: clipview.Styles{
			Item: clipview.ColorPair{
				Foreground: "#cdd6f4", // Text
			},
			Selected: clipview.ColorPair{
				Foreground: "#cdd6f4",
				Background: "#313244", // Surface
			},
			Meta: clipview.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			Match: clipview.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#f9e2af", // Yellow
			},
			Shortcut: clipview.ColorPair{
				Foreground: "#89b4fa", // Blue
			},
			Prompt: clipview.ColorPair{
				Foreground: "#cba6f7", // Mauve
			},
			Error: clipview.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#f38ba8", // Red
			},
			Border: clipview.ColorPair{
				Foreground: "#45475a", // Subtle
			},
		},
		palette: clipview.Palette{
			// Base colors (Catppuccin Mocha)
			Background: "#1e1e2e",
			Foreground: "#cdd6f4",

			// Syntax highlighting colors
			Keyword:     "#cba6f7",
			String:      "#a6e3a1",
			Number:      "#fab387",
			Comment:     "#6c7086",
			Operator:    "#89dceb",
			Function:    "#89b4fa",
			Type:        "#f9e2af",
			Constant:    "#f5c2e7",
			Punctuation: "#9399b2",

			// UI colors
			UIBackground: "#313244",
			UIForeground: "#a6adc8",
			UIAccent:     "#94e2d5",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: clipview.Styles{
			Item: clipview.ColorPair{
				Foreground: "#4c4f69", // Text
			},
			Selected: clipview.ColorPair{
				Foreground: "#4c4f69",
				Background: "#ccd0da", // Surface
			},
			Meta: clipview.ColorPair{
				Foreground: "#9ca0b0", // Muted gray
			},
			Match: clipview.ColorPair{
				Foreground: "#ffffff", // White text on dark background
				Background: "#df8e1d", // Yellow
			},
			Shortcut: clipview.ColorPair{
				Foreground: "#1e66f5", // Blue
			},
			Prompt: clipview.ColorPair{
				Foreground: "#8839ef", // Mauve
			},
			Error: clipview.ColorPair{
				Foreground: "#ffffff",
				Background: "#d20f39", // Red
			},
			Border: clipview.ColorPair{
				Foreground: "#bcc0cc", // Subtle
			},
		},
		palette: clipview.Palette{
			// Base colors (Catppuccin Latte)
			Background: "#eff1f5",
			Foreground: "#4c4f69",

			// Syntax highlighting colors
			Keyword:     "#8839ef",
			String:      "#40a02b",
			Number:      "#fe640b",
			Comment:     "#9ca0b0",
			Operator:    "#04a5e5",
			Function:    "#1e66f5",
			Type:        "#df8e1d",
			Constant:    "#ea76cb",
			Punctuation: "#6c6f85",

			// UI colors
			UIBackground: "#e6e9ef",
			UIForeground: "#6c6f85",
			UIAccent:     "#179299",
		},
	}
}
