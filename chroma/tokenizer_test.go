package chroma_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/clipview"
	"github.com/fwojciec/clipview/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenizer(t *testing.T) *chroma.Tokenizer {
	t.Helper()
	tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(testPalette()))
	require.NoError(t, err)
	return tokenizer
}

func joinLine(tokens []clipview.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func TestNewTokenizer_RequiresStyleFunc(t *testing.T) {
	t.Parallel()

	tokenizer, err := chroma.NewTokenizer(nil)

	require.Error(t, err)
	assert.Nil(t, tokenizer)
}

func TestTokenizer_TokenizeLines(t *testing.T) {
	t.Parallel()

	t.Run("splits JSON into lines", func(t *testing.T) {
		t.Parallel()

		tokenizer := newTokenizer(t)
		lines := tokenizer.TokenizeLines("json", "{\n  \"a\": 1\n}")

		require.Len(t, lines, 3)
		assert.Equal(t, "{", joinLine(lines[0]))
		assert.Equal(t, `  "a": 1`, joinLine(lines[1]))
		assert.Equal(t, "}", joinLine(lines[2]))
	})

	t.Run("styles Go keywords", func(t *testing.T) {
		t.Parallel()

		tokenizer := newTokenizer(t)
		lines := tokenizer.TokenizeLines("go", "package main")

		require.Len(t, lines, 1)
		var found bool
		for _, tok := range lines[0] {
			if tok.Text == "package" {
				found = true
				assert.Equal(t, "#ff00ff", tok.Style.Foreground)
			}
		}
		assert.True(t, found, "should find 'package' keyword token")
	})

	t.Run("keeps multi-line comments on their own lines", func(t *testing.T) {
		t.Parallel()

		tokenizer := newTokenizer(t)
		lines := tokenizer.TokenizeLines("go", "/* a\nb */\nx := 1")

		require.Len(t, lines, 3)
		assert.Equal(t, "/* a", joinLine(lines[0]))
		assert.Equal(t, "b */", joinLine(lines[1]))
	})

	t.Run("drops carriage returns from windows line endings", func(t *testing.T) {
		t.Parallel()

		tokenizer := newTokenizer(t)
		lines := tokenizer.TokenizeLines("python", "x = 1\r\ny = 2\r\n")

		require.Len(t, lines, 2)
		assert.Equal(t, "x = 1", joinLine(lines[0]))
		assert.Equal(t, "y = 2", joinLine(lines[1]))
	})

	t.Run("keeps blank lines", func(t *testing.T) {
		t.Parallel()

		tokenizer := newTokenizer(t)
		lines := tokenizer.TokenizeLines("go", "a := 1\n\nb := 2")

		require.Len(t, lines, 3)
		assert.Empty(t, lines[1])
	})

	t.Run("stops at the line limit", func(t *testing.T) {
		t.Parallel()

		tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(testPalette()), chroma.WithMaxLines(2))
		require.NoError(t, err)

		lines := tokenizer.TokenizeLines("go", "a := 1\nb := 2\nc := 3\nd := 4")

		require.Len(t, lines, 2)
		assert.Equal(t, "b := 2", joinLine(lines[1]))
	})

	t.Run("default limit bounds large content", func(t *testing.T) {
		t.Parallel()

		tokenizer := newTokenizer(t)
		source := strings.Repeat("x := 1\n", chroma.DefaultMaxLines+50)

		assert.Len(t, tokenizer.TokenizeLines("go", source), chroma.DefaultMaxLines)
	})

	t.Run("returns nil for unsupported language", func(t *testing.T) {
		t.Parallel()

		tokenizer := newTokenizer(t)

		assert.Nil(t, tokenizer.TokenizeLines("nonexistent-language-xyz", "some code"))
	})

	t.Run("handles empty source", func(t *testing.T) {
		t.Parallel()

		tokenizer := newTokenizer(t)

		assert.Empty(t, tokenizer.TokenizeLines("go", ""))
	})
}
