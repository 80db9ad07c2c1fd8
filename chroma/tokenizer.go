// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"errors"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/clipview"
)

// Compile-time interface verification.
var _ clipview.Tokenizer = (*Tokenizer)(nil)

// DefaultMaxLines bounds how much of a clipboard item is highlighted.
const DefaultMaxLines = 500

// StyleFunc maps chroma token types to clipview styles.
type StyleFunc func(chromalib.TokenType) clipview.Style

// Tokenizer highlights clipboard content for the preview pane.
type Tokenizer struct {
	styleFunc StyleFunc
	maxLines  int
}

// TokenizerOption configures a Tokenizer.
type TokenizerOption func(*Tokenizer)

// WithMaxLines stops tokenizing after n lines. Non-positive values remove
// the limit.
func WithMaxLines(n int) TokenizerOption {
	return func(t *Tokenizer) {
		t.maxLines = n
	}
}

// NewTokenizer creates a tokenizer with the given style function.
// Use StyleFromPalette to create a style function from a clipview.Palette.
func NewTokenizer(styleFunc StyleFunc, opts ...TokenizerOption) (*Tokenizer, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	t := &Tokenizer{styleFunc: styleFunc, maxLines: DefaultMaxLines}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// TokenizeLines lexes the whole source so multi-line constructs keep their
// context, and returns the tokens grouped by line. Windows line endings are
// normalized first. Returns nil for unknown languages and an empty slice
// for empty source.
func (t *Tokenizer) TokenizeLines(language, source string) [][]clipview.Token {
	if source == "" {
		return [][]clipview.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	source = strings.ReplaceAll(source, "\r\n", "\n")
	iterator, err := chromalib.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return nil
	}

	lb := lineBuilder{maxLines: t.maxLines}
	for token := iterator(); token != chromalib.EOF && !lb.full(); token = iterator() {
		lb.add(token.Value, t.styleFunc(token.Type))
	}
	return lb.finish()
}

// lineBuilder accumulates styled text into lines.
type lineBuilder struct {
	maxLines int
	lines    [][]clipview.Token
	current  []clipview.Token
}

func (b *lineBuilder) full() bool {
	return b.maxLines > 0 && len(b.lines) >= b.maxLines
}

func (b *lineBuilder) add(text string, style clipview.Style) {
	for {
		before, after, found := strings.Cut(text, "\n")
		if !found {
			b.append(text, style)
			return
		}
		b.append(before, style)
		b.lines = append(b.lines, b.current)
		b.current = nil
		if b.full() {
			return
		}
		text = after
	}
}

func (b *lineBuilder) append(text string, style clipview.Style) {
	if text == "" {
		return
	}
	// Coalesced tokens can still repeat a style across a line break.
	if n := len(b.current); n > 0 && b.current[n-1].Style == style {
		b.current[n-1].Text += text
		return
	}
	b.current = append(b.current, clipview.Token{Text: text, Style: style})
}

func (b *lineBuilder) finish() [][]clipview.Token {
	if len(b.current) > 0 && !b.full() {
		b.lines = append(b.lines, b.current)
	}
	if b.lines == nil {
		return [][]clipview.Token{}
	}
	return b.lines
}
