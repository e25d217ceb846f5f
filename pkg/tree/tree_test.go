package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tskit-go/dashline/pkg/tree"
)

func TestSortedSnapshotOrdersParentsBeforeChildren(t *testing.T) {
	root := tree.NewRoot(10)
	root.Add(tree.NewKey("b"), tree.Value{Name: "b"})
	root.Add(tree.NewKey("a"), tree.Value{Name: "a"})
	root.Add(tree.NewKey("a", "child"), tree.Value{Name: "child"})

	var out []tree.Entry
	root.SortedSnapshot(&out)

	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].Value.Name)
	assert.Equal(t, "child", out[1].Value.Name)
	assert.Equal(t, "b", out[2].Value.Name)
}

func TestRemoveDeletesNode(t *testing.T) {
	root := tree.NewRoot(10)
	key := tree.NewKey("task")
	root.Add(key, tree.Value{Name: "task"})
	require.Equal(t, 1, root.NumTasks())

	root.Remove(key)
	assert.Equal(t, 0, root.NumTasks())
}

func TestLogEvictsOldestWhenFull(t *testing.T) {
	root := tree.NewRoot(2)
	root.Log(tree.Message{Origin: "a", Body: "1"})
	root.Log(tree.Message{Origin: "b", Body: "2"})
	root.Log(tree.Message{Origin: "c", Body: "3"})

	var out []tree.Message
	root.CopyMessages(&out)

	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].Origin)
	assert.Equal(t, "c", out[1].Origin)
}

func TestCopyNewMessagesFirstCallReturnsEverything(t *testing.T) {
	root := tree.NewRoot(10)
	root.Log(tree.Message{Origin: "a"})
	root.Log(tree.Message{Origin: "b"})

	var out []tree.Message
	cur := root.CopyNewMessages(&out, nil)
	assert.Len(t, out, 2)

	var out2 []tree.Message
	root.CopyNewMessages(&out2, &cur)
	assert.Empty(t, out2)
}

func TestCopyNewMessagesIncrementalAfterFirstCall(t *testing.T) {
	root := tree.NewRoot(10)
	root.Log(tree.Message{Origin: "a"})

	var out []tree.Message
	cur := root.CopyNewMessages(&out, nil)

	root.Log(tree.Message{Origin: "b"})
	root.Log(tree.Message{Origin: "c"})

	var out2 []tree.Message
	cur = root.CopyNewMessages(&out2, &cur)
	require.Len(t, out2, 2)
	assert.Equal(t, "b", out2[0].Origin)
	assert.Equal(t, "c", out2[1].Origin)

	var out3 []tree.Message
	root.CopyNewMessages(&out3, &cur)
	assert.Empty(t, out3)
}

func TestCopyNewMessagesResyncsWhenCursorIsStaleAfterEviction(t *testing.T) {
	root := tree.NewRoot(2)
	root.Log(tree.Message{Origin: "a"})
	cur := root.CopyNewMessages(&[]tree.Message{}, nil)

	root.Log(tree.Message{Origin: "b"})
	root.Log(tree.Message{Origin: "c"})
	root.Log(tree.Message{Origin: "d"}) // evicts "b", cursor now refers to a stale index

	var out []tree.Message
	root.CopyNewMessages(&out, &cur)
	require.Len(t, out, 2)
	assert.Equal(t, "c", out[0].Origin)
	assert.Equal(t, "d", out[1].Origin)
}

func TestDeepCloneIsIndependentAndEqual(t *testing.T) {
	root := tree.NewRoot(10)
	root.Add(tree.NewKey("a"), tree.Value{Name: "a"})
	root.Log(tree.Message{Origin: "x"})

	clone := root.DeepClone()
	assert.True(t, root.DeepEq(clone))

	root.Add(tree.NewKey("b"), tree.Value{Name: "b"})
	assert.False(t, root.DeepEq(clone))
}

func TestProgressFractionClampsAndMarksIndeterminate(t *testing.T) {
	done := uint64(10)
	p := tree.Progress{Step: 20, DoneAt: &done}
	f, ok := p.Fraction()
	require.True(t, ok)
	assert.Equal(t, 1.0, f)

	indeterminate := tree.Progress{Step: 5}
	_, ok = indeterminate.Fraction()
	assert.False(t, ok)
}
