package terminal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize_Fits(t *testing.T) {
	s := Size{Width: 80, Height: 24}
	assert.True(t, s.Fits(80, 24))
	assert.True(t, s.Fits(65, 10))
	assert.False(t, s.Fits(81, 24))
	assert.False(t, s.Fits(10, 25))
}

func TestSizeOf_FallsBackForNonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, Size{Width: DefaultWidth, Height: DefaultHeight}, SizeOf(int(f.Fd())))
	assert.False(t, IsTerminal(f))
}
