package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tskit-go/dashline/pkg/tui"
)

func TestDecodeKeyPlainChar(t *testing.T) {
	k, rest, err := tui.DecodeKey([]byte("q"))
	require.NoError(t, err)
	assert.Equal(t, tui.KeyChar, k.Kind)
	assert.Equal(t, 'q', k.Rune)
	assert.Empty(t, rest)
}

func TestDecodeKeyArrowEscape(t *testing.T) {
	k, rest, err := tui.DecodeKey([]byte("\x1b[A"))
	require.NoError(t, err)
	assert.Equal(t, tui.KeyUp, k.Kind)
	assert.Empty(t, rest)
}

func TestDecodeKeyCtrlLetter(t *testing.T) {
	k, rest, err := tui.DecodeKey([]byte{0x03})
	require.NoError(t, err)
	assert.Equal(t, tui.KeyCtrl, k.Kind)
	assert.Equal(t, 'c', k.Rune)
	assert.Empty(t, rest)
}

func TestDecodeKeyConsumesOneKeyLeavesRemainder(t *testing.T) {
	k, rest, err := tui.DecodeKey([]byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, 'a', k.Rune)
	assert.Equal(t, []byte("b"), rest)
}

func TestDecodeKeyEscAlone(t *testing.T) {
	k, _, err := tui.DecodeKey([]byte("\x1b"))
	require.NoError(t, err)
	assert.Equal(t, tui.KeyEsc, k.Kind)
}
