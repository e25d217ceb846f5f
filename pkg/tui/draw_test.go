package tui_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tskit-go/dashline/pkg/tree"
	"github.com/tskit-go/dashline/pkg/tui"
)

func TestDrawIncludesTitleBarAsFirstLine(t *testing.T) {
	state := &tui.State{Title: "dashboard"}
	lines := tui.Draw(state, tui.InterruptState{Mode: tui.InterruptInstantly}, nil, nil, tui.Rect{Width: 40, Height: 10})
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "dashboard")
}

func TestDrawRendersTaskRows(t *testing.T) {
	state := &tui.State{Title: "d"}
	entries := []tree.Entry{{Key: tree.NewKey("task"), Value: tree.Value{Name: "building"}}}
	lines := tui.Draw(state, tui.InterruptState{Mode: tui.InterruptInstantly}, entries, nil, tui.Rect{Width: 40, Height: 10})

	found := false
	for _, l := range lines {
		if strings.Contains(l, "building") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDrawSmoothsTaskColumnWidthUntilPromoted(t *testing.T) {
	state := &tui.State{Title: "d"}
	entries := []tree.Entry{{Key: tree.NewKey("task"), Value: tree.Value{Name: "building"}}}

	tui.Draw(state, tui.InterruptState{Mode: tui.InterruptInstantly}, entries, nil, tui.Rect{Width: 40, Height: 10})
	require.Equal(t, 40, state.LastTreeColumnWidth)

	// Simulate Engine promoting the measured width once, then a resize
	// arriving before the next promotion: the task panel must keep using the
	// stale, promoted width rather than the freshly measured one.
	state.NextTreeColumnWidth = state.LastTreeColumnWidth
	tui.Draw(state, tui.InterruptState{Mode: tui.InterruptInstantly}, entries, nil, tui.Rect{Width: 20, Height: 10})
	assert.Equal(t, 20, state.LastTreeColumnWidth, "raw measurement always updates")
	assert.Equal(t, 40, state.NextTreeColumnWidth, "effective width stays frozen until the next promotion")
}

func TestDrawHidesMessagesWhenToggled(t *testing.T) {
	state := &tui.State{Title: "d", HideMessages: true}
	messages := []tree.Message{{Origin: "x", Body: "hello there"}}
	lines := tui.Draw(state, tui.InterruptState{Mode: tui.InterruptInstantly}, nil, messages, tui.Rect{Width: 40, Height: 10})

	for _, l := range lines {
		assert.NotContains(t, l, "hello there")
	}
}
