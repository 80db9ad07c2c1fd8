package chroma

import (
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/clipview"
)

// Compile-time interface verification.
var _ clipview.LanguageDetector = (*Detector)(nil)

// Detector guesses the language of clipboard content using chroma's lexer
// analysers.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromContent returns the language name for content of type t, or an
// empty string if the language cannot be determined. Structured types map
// to a fixed lexer; code is analysed.
func (d *Detector) DetectFromContent(content string, t clipview.ContentType) string {
	switch t {
	case clipview.TypeJSON:
		return "JSON"
	case clipview.TypeCommand:
		return "Bash"
	case clipview.TypeMarkdown:
		return "Markdown"
	case clipview.TypeCode:
	default:
		return ""
	}

	lexer := lexers.Analyse(content)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
