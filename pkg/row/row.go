// Package row formats a single tree node into a span.Buffer: name, counter,
// and progress bar for tasks with progress; a plain truncated headline
// otherwise.
package row

import (
	"fmt"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/tskit-go/dashline/pkg/bar"
	"github.com/tskit-go/dashline/pkg/span"
	"github.com/tskit-go/dashline/pkg/tree"
)

var (
	colorCyan  = lipgloss.Color("6")
	colorWhite = lipgloss.Color("7")
)

var (
	nameStyle     = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	headlineStyle = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	counterStyle  = lipgloss.NewStyle().Bold(true).Faint(true)
)

// Format renders one (key, value) pair into buf, clearing it first.
// columnCount is the terminal width: a headline-only row (no progress) is
// truncated to it with an ellipsis rather than left to overflow. A progress
// row's bar takes the columns left after the name and counter and is left
// out when none remain; the name and counter are not truncated, so a
// progress row is wider than columnCount when they leave fewer columns than
// the bar's brackets need.
func Format(buf *span.Buffer, key tree.Key, value tree.Value, columnCount int) {
	buf.Reset()
	buf.PushPlain(indent(int(key.Level())))

	if value.Progress == nil {
		headline := span.Truncate(value.Name, maxInt(columnCount-int(key.Level()), 0), "…")
		buf.Push(&headlineStyle, headline)
		return
	}

	p := value.Progress
	style := bar.Style(p)

	buf.Push(&nameStyle, value.Name)
	buf.PushPlain(" ")
	buf.Push(&counterStyle, counterText(p))

	if p.Unit != nil {
		var sb fmtBuf
		_ = p.Unit.DisplayUnit(&sb, p.Step)
		if sb.String() != "" {
			buf.PushPlain(" ")
			buf.PushPlain(sb.String())
		}
	}

	blocksLeft := columnCount - buf.Width()
	if blocksLeft > 0 {
		bar.Draw(buf, p, style, blocksLeft)
	}
}

// counterText renders "step / doneAt" or a bare "step" via the progress's
// unit adapter when present, falling back to plain decimal formatting.
func counterText(p *tree.Progress) string {
	if p.Unit == nil {
		if p.DoneAt != nil {
			return fmt.Sprintf("%d / %d", p.Step, *p.DoneAt)
		}
		return fmt.Sprintf("%d", p.Step)
	}

	var sb fmtBuf
	_ = p.Unit.DisplayCurrentValue(&sb, p.Step, p.DoneAt)
	if p.DoneAt != nil {
		_ = p.Unit.Separator(&sb, p.Step, p.DoneAt)
		_ = p.Unit.DisplayUpperBound(&sb, *p.DoneAt, p.Step)
	}
	return sb.String()
}

func indent(level int) string {
	if level <= 0 {
		return ""
	}
	b := make([]byte, level)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// fmtBuf is a minimal io.Writer accumulating into a string, used to drive
// unit.DisplayValue's writer-based methods without allocating a
// strings.Builder at every call site.
type fmtBuf struct{ s string }

func (b *fmtBuf) Write(p []byte) (int, error) {
	b.s += string(p)
	return len(p), nil
}

func (b *fmtBuf) String() string { return b.s }
