package chroma_test

import (
	"testing"

	"github.com/fwojciec/clipview"
	"github.com/fwojciec/clipview/chroma"
	"github.com/stretchr/testify/assert"
)

func TestDetector_DetectFromContent(t *testing.T) {
	t.Parallel()

	t.Run("structured types map to fixed lexers", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()

		assert.Equal(t, "JSON", detector.DetectFromContent(`{"a":1}`, clipview.TypeJSON))
		assert.Equal(t, "Bash", detector.DetectFromContent("git status", clipview.TypeCommand))
		assert.Equal(t, "Markdown", detector.DetectFromContent("# Title", clipview.TypeMarkdown))
	})

	t.Run("detects shebang scripts", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()
		lang := detector.DetectFromContent("#!/usr/bin/env python\nprint('hi')\n", clipview.TypeCode)

		assert.Equal(t, "Python", lang)
	})

	t.Run("returns empty for prose", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()

		assert.Empty(t, detector.DetectFromContent("hello world", clipview.TypeText))
		assert.Empty(t, detector.DetectFromContent("https://example.com", clipview.TypeURL))
	})
}
