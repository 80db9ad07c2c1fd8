package clipview_test

import (
	"testing"

	"github.com/fwojciec/clipview"
	"github.com/stretchr/testify/assert"
)

func TestPalette_ForType(t *testing.T) {
	t.Parallel()

	p := clipview.Palette{
		Keyword:      "#ff00ff",
		String:       "#00ff00",
		Number:       "#ff8800",
		Comment:      "#888888",
		Operator:     "#00ffff",
		Function:     "#0000ff",
		Type:         "#ffff00",
		Constant:     "#ff0088",
		UIForeground: "#cccccc",
		UIAccent:     "#00aaaa",
	}

	tests := []struct {
		typ  clipview.ContentType
		want clipview.Color
	}{
		{clipview.TypeURL, p.Function},
		{clipview.TypeEmail, p.String},
		{clipview.TypePhone, p.Number},
		{clipview.TypeCode, p.Keyword},
		{clipview.TypeJSON, p.Type},
		{clipview.TypeFilepath, p.Constant},
		{clipview.TypeCommand, p.Operator},
		{clipview.TypeMarkdown, p.UIAccent},
		{clipview.TypeData, p.Comment},
		{clipview.TypeText, p.UIForeground},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.ForType(tt.typ), "badge color for %s", tt.typ)
	}
}

func TestTheme(t *testing.T) {
	t.Parallel()

	t.Run("interface can be implemented", func(t *testing.T) {
		t.Parallel()

		var theme clipview.Theme = &testTheme{
			styles: clipview.Styles{
				Selected: clipview.ColorPair{Foreground: "#ffffff", Background: "#333333"},
				Match:    clipview.ColorPair{Background: "#ffff00"},
			},
		}

		styles := theme.Styles()
		assert.Equal(t, "#333333", styles.Selected.Background)
		assert.Equal(t, "#ffff00", styles.Match.Background)
	})
}

// testTheme is a minimal Theme implementation for testing.
type testTheme struct {
	styles  clipview.Styles
	palette clipview.Palette
}

func (t *testTheme) Styles() clipview.Styles {
	return t.styles
}

func (t *testTheme) Palette() clipview.Palette {
	return t.palette
}
