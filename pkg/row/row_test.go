package row_test

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/tskit-go/dashline/pkg/row"
	"github.com/tskit-go/dashline/pkg/span"
	"github.com/tskit-go/dashline/pkg/tree"
	"github.com/tskit-go/dashline/pkg/unit"
)

func TestFormatHeadlineOnlyTruncatesToColumnCount(t *testing.T) {
	var buf span.Buffer
	key := tree.NewKey("root")
	value := tree.Value{Name: "a very long headline that will not fit in the terminal at all"}

	row.Format(&buf, key, value, 20)

	assert.LessOrEqual(t, buf.Width(), 20)
}

func TestFormatHeadlineShortFitsUntouched(t *testing.T) {
	var buf span.Buffer
	key := tree.NewKey("root")
	value := tree.Value{Name: "short"}

	row.Format(&buf, key, value, 80)

	assert.Equal(t, "short", ansi.Strip(buf.Render()))
}

func TestFormatWithProgressIncludesCounterAndBar(t *testing.T) {
	var buf span.Buffer
	key := tree.NewKey("root", "child")
	done := uint64(10)
	value := tree.Value{
		Name: "copying",
		Progress: &tree.Progress{
			Step:   5,
			DoneAt: &done,
			Unit:   unit.NewHuman("objects"),
			State:  tree.RunningState(),
		},
	}

	row.Format(&buf, key, value, 60)

	rendered := buf.Render()
	assert.Contains(t, rendered, "copying")
	assert.Contains(t, rendered, "5.00 / 10.00")
	assert.Contains(t, rendered, "[")
	assert.LessOrEqual(t, buf.Width(), 60)
}

func TestFormatWithoutUnitUsesPlainCounter(t *testing.T) {
	var buf span.Buffer
	key := tree.NewKey("root")
	done := uint64(100)
	value := tree.Value{
		Name: "task",
		Progress: &tree.Progress{
			Step:   50,
			DoneAt: &done,
			State:  tree.RunningState(),
		},
	}

	row.Format(&buf, key, value, 60)
	assert.Contains(t, buf.Render(), "50 / 100")
}

func TestFormatIndentsByLevel(t *testing.T) {
	var buf span.Buffer
	key := tree.NewKey("root", "child", "grandchild")
	value := tree.Value{Name: "leaf"}

	row.Format(&buf, key, value, 80)
	assert.Equal(t, "  leaf", ansi.Strip(buf.Render()))
}
