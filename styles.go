package clipview

// Color is a hex color string in "#RRGGBB" format, or empty for the
// terminal default.
type Color string

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for all visual elements of the picker.
type Styles struct {
	Item     ColorPair // Unselected list rows
	Selected ColorPair // The selected list row
	Meta     ColorPair // Relative time, source app and size info
	Match    ColorPair // Text matching the search query
	Shortcut ColorPair // Quick-paste badges (1-9)
	Prompt   ColorPair // Search prompt
	Error    ColorPair // Error banner
	Border   ColorPair // Separators between list and preview
}

// Palette is the semantic color set used for content type badges and
// syntax highlighting.
type Palette struct {
	Background Color
	Foreground Color

	// Syntax highlighting colors
	Keyword     Color
	String      Color
	Number      Color
	Comment     Color
	Operator    Color
	Function    Color
	Type        Color
	Constant    Color
	Punctuation Color

	// UI colors
	UIBackground Color
	UIForeground Color
	UIAccent     Color
}

// ForType returns the badge color for a content type.
func (p Palette) ForType(t ContentType) Color {
	switch t {
	case TypeURL:
		return p.Function
	case TypeEmail:
		return p.String
	case TypePhone:
		return p.Number
	case TypeCode:
		return p.Keyword
	case TypeJSON:
		return p.Type
	case TypeFilepath:
		return p.Constant
	case TypeCommand:
		return p.Operator
	case TypeMarkdown:
		return p.UIAccent
	case TypeData:
		return p.Comment
	default:
		return p.UIForeground
	}
}

// Theme provides styles for rendering the picker.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
