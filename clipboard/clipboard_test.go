package clipboard_test

import (
	"testing"

	atotto "github.com/atotto/clipboard"
	"github.com/fwojciec/clipview/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_WriteRead(t *testing.T) {
	// Not parallel: the system clipboard is shared state.

	if atotto.Unsupported {
		t.Skip("no clipboard utility available, skipping clipboard test")
	}

	cb := clipboard.NewSystem()
	testContent := "test clipboard content from clipview"

	if err := cb.Write(testContent); err != nil {
		t.Skipf("clipboard not writable in this environment: %v", err)
	}

	got, err := cb.Read()
	require.NoError(t, err)
	assert.Equal(t, testContent, got)
}
