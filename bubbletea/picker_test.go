package bubbletea_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/clipview/bubbletea"
	cvlipgloss "github.com/fwojciec/clipview/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPicker_Pick(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when closed without pasting", func(t *testing.T) {
		t.Parallel()

		svc := &fakeService{items: testItems()}
		p := bubbletea.NewPicker(svc.mock(), bubbletea.WithTheme(cvlipgloss.DarkTheme()), bubbletea.WithRenderer(trueColorRenderer())).
			WithProgramOptions(
				tea.WithInput(bytes.NewBufferString("\x03")), // ctrl+c
				tea.WithOutput(io.Discard),
			)

		item, err := p.Pick(context.Background())

		require.NoError(t, err)
		assert.Nil(t, item)
		assert.Empty(t, svc.pastedIDs())
	})

	t.Run("returns the context error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		svc := &fakeService{items: testItems()}
		p := bubbletea.NewPicker(svc.mock(), bubbletea.WithTheme(cvlipgloss.DarkTheme()), bubbletea.WithRenderer(trueColorRenderer())).
			WithProgramOptions(
				tea.WithInput(nil),
				tea.WithOutput(io.Discard),
			)

		item, err := p.Pick(ctx)

		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, item)
	})

	t.Run("subscribes for the lifetime of the picker", func(t *testing.T) {
		t.Parallel()

		svc := &fakeService{items: testItems()}
		m := svc.mock()
		var subscribed, unsubscribed int
		m.SubscribeFn = func(func()) func() {
			subscribed++
			return func() { unsubscribed++ }
		}
		p := bubbletea.NewPicker(m, bubbletea.WithTheme(cvlipgloss.DarkTheme()), bubbletea.WithRenderer(trueColorRenderer())).
			WithProgramOptions(
				tea.WithInput(bytes.NewBufferString("\x03")),
				tea.WithOutput(io.Discard),
			)

		_, err := p.Pick(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, subscribed)
		assert.Equal(t, 1, unsubscribed)
	})
}
