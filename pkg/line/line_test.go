package line_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tskit-go/dashline/pkg/line"
	"github.com/tskit-go/dashline/pkg/tree"
)

func TestDrawAllReturnsErrEmptyProgressWhenTreeIsEmpty(t *testing.T) {
	root := tree.NewRoot(10)
	var state line.State
	var out bytes.Buffer

	err := line.DrawAll(&out, root, true, &state, line.Options{ColumnCount: 80})
	assert.ErrorIs(t, err, line.ErrEmptyProgress)
}

func TestDrawAllKeepsRunningWhenConfigured(t *testing.T) {
	root := tree.NewRoot(10)
	var state line.State
	var out bytes.Buffer

	err := line.DrawAll(&out, root, true, &state, line.Options{
		ColumnCount:                  80,
		KeepRunningIfProgressIsEmpty: true,
	})
	require.NoError(t, err)
}

func TestDrawAllWritesMessagesOnce(t *testing.T) {
	root := tree.NewRoot(10)
	root.Add(tree.NewKey("task"), tree.Value{Name: "task"})
	root.Log(tree.Message{Origin: "worker", Body: "started"})

	var state line.State
	var out bytes.Buffer
	opts := line.Options{ColumnCount: 80, KeepRunningIfProgressIsEmpty: true}

	require.NoError(t, line.DrawAll(&out, root, false, &state, opts))
	assert.Contains(t, out.String(), "started")

	out.Reset()
	require.NoError(t, line.DrawAll(&out, root, false, &state, opts))
	assert.NotContains(t, out.String(), "started")
}

func TestDrawAllProgressRewindsCursorWhenTerminal(t *testing.T) {
	root := tree.NewRoot(10)
	root.Add(tree.NewKey("task"), tree.Value{Name: "task"})

	var state line.State
	var out bytes.Buffer
	opts := line.Options{
		ColumnCount:                  80,
		KeepRunningIfProgressIsEmpty: true,
		OutputIsTerminal:             true,
	}

	require.NoError(t, line.DrawAll(&out, root, true, &state, opts))
	assert.Contains(t, out.String(), "\x1b[1A")
}

// TestDrawAllRoundTripsIdenticalFramesWhenNothingChanges exercises the
// round-trip property: with the tree unchanged and no new messages, two
// consecutive ticks must render byte-identical rows, since the row widths
// match and no overdraw padding is introduced.
func TestDrawAllRoundTripsIdenticalFramesWhenNothingChanges(t *testing.T) {
	root := tree.NewRoot(10)
	done := uint64(10)
	root.Add(tree.NewKey("task"), tree.Value{
		Name: "build",
		Progress: &tree.Progress{
			Step:   5,
			DoneAt: &done,
			State:  tree.RunningState(),
		},
	})

	var state line.State
	opts := line.Options{
		ColumnCount:                  40,
		KeepRunningIfProgressIsEmpty: true,
		OutputIsTerminal:             true,
	}

	var first bytes.Buffer
	require.NoError(t, line.DrawAll(&first, root, true, &state, opts))

	var second bytes.Buffer
	require.NoError(t, line.DrawAll(&second, root, true, &state, opts))

	assert.Equal(t, first.String(), second.String())
}
