// Package line implements line-mode rendering: a plain, non-alternate-screen
// render loop that redraws the progress tree in place using cursor-up
// rewinds instead of ANSI clear-line codes.
package line

import (
	"errors"
	"fmt"
	"io"
	"time"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/tskit-go/dashline/pkg/row"
	"github.com/tskit-go/dashline/pkg/span"
	"github.com/tskit-go/dashline/pkg/tree"
)

// ErrEmptyProgress is returned by DrawAll when the tree has gone empty and
// Options.KeepRunningIfProgressIsEmpty is false — the signal a line-mode
// caller uses to stop its render loop.
var ErrEmptyProgress = errors.New("line: stop as progress is empty")

var (
	messageColorInfo    = lipgloss.Color("7")
	messageColorSuccess = lipgloss.Color("2")
	messageColorFailure = lipgloss.Color("1")
)

// Options configures one DrawAll call.
type Options struct {
	LevelMin                     uint
	LevelMax                     uint
	HasLevelFilter               bool
	ColumnCount                  int
	KeepRunningIfProgressIsEmpty bool
	OutputIsTerminal             bool
	Colored                      bool
	Timestamp                    bool
}

// State carries everything DrawAll needs across calls: the last tree
// snapshot, the message cursor, and the overdraw bookkeeping
// (blocksPerLine/maxOriginWidth/originWidthHistory) that lets each redraw
// erase exactly as much of the previous frame as it wrote.
type State struct {
	tree   []tree.Entry
	msgs   []tree.Message
	cursor *tree.Cursor

	maxOriginWidth     int
	originWidthHistory []int // bounded ring of recent origin widths

	blocksPerLine []int // widths drawn last tick, one per visible progress line
}

const originWidthHistoryCap = 64

func (s *State) pushOriginWidth(w int) {
	if w > s.maxOriginWidth {
		s.maxOriginWidth = w
	}
	s.originWidthHistory = append(s.originWidthHistory, w)
	if len(s.originWidthHistory) > originWidthHistoryCap {
		s.originWidthHistory = s.originWidthHistory[len(s.originWidthHistory)-originWidthHistoryCap:]
	}
}

// DrawAll snapshots the tree, flushes new messages, and — when
// opts.OutputIsTerminal is true — redraws every visible progress line in
// place. It returns ErrEmptyProgress to signal the caller should stop.
func DrawAll(out io.Writer, collab tree.Collaborator, showProgress bool, state *State, opts Options) error {
	collab.SortedSnapshot(&state.tree)
	if !opts.KeepRunningIfProgressIsEmpty && len(state.tree) == 0 {
		return ErrEmptyProgress
	}

	cursor := collab.CopyNewMessages(&state.msgs, state.cursor)
	state.cursor = &cursor

	if err := drawMessages(out, state, opts.Colored, opts.Timestamp); err != nil {
		return err
	}

	if !showProgress || !opts.OutputIsTerminal {
		return nil
	}
	return drawProgress(out, state, opts)
}

func drawMessages(out io.Writer, state *State, colored, timestamp bool) error {
	for _, msg := range state.msgs {
		drawnLastTick := popFront(&state.blocksPerLine)

		var buf span.Buffer
		buf.PushPlain(" ")
		if timestamp {
			ts := lipgloss.NewStyle().Faint(true).Background(lipgloss.Color("3"))
			pushStyled(&buf, colored, ts, msg.Time.Format(time.TimeOnly))
			buf.PushPlain(" ")
		}

		originWidth := span.VisibleWidth(msg.Origin)
		state.pushOriginWidth(originWidth)
		dim := lipgloss.NewStyle().Faint(true)
		pushStyled(&buf, colored, dim, fmt.Sprintf("%*s%s", state.maxOriginWidth-originWidth, "", msg.Origin))
		buf.PushPlain(" ")

		bodyStyle := lipgloss.NewStyle().Bold(true).Foreground(messageColor(msg.Level))
		pushStyled(&buf, colored, bodyStyle, msg.Body)

		blockCount := buf.Width()
		if _, err := io.WriteString(out, buf.Render()); err != nil {
			return err
		}
		if err := newlineWithOverdraw(out, blockCount, drawnLastTick); err != nil {
			return err
		}
	}
	return nil
}

// pushStyled pushes an unstyled span when colored is false, matching the
// original's Brush::new(colored) toggle that strips all ANSI when output
// isn't going to a color-capable terminal.
func pushStyled(buf *span.Buffer, colored bool, style lipgloss.Style, text string) {
	if !colored {
		buf.PushPlain(text)
		return
	}
	buf.Push(&style, text)
}

func messageColor(level tree.MessageLevel) lipgloss.Color {
	switch level {
	case tree.Success:
		return messageColorSuccess
	case tree.Failure:
		return messageColorFailure
	default:
		return messageColorInfo
	}
}

func drawProgress(out io.Writer, state *State, opts Options) error {
	visible := filterByLevel(state.tree, opts)
	if len(state.blocksPerLine) < len(visible) {
		grown := make([]int, len(visible))
		copy(grown, state.blocksPerLine)
		state.blocksPerLine = grown
	}

	var buf span.Buffer
	for i, e := range visible {
		row.Format(&buf, e.Key, e.Value, opts.ColumnCount)
		rendered := buf.Render()
		if !opts.Colored {
			rendered = ansi.Strip(rendered)
		}
		if _, err := io.WriteString(out, rendered); err != nil {
			return err
		}
		if err := newlineWithOverdraw(out, buf.Width(), state.blocksPerLine[i]); err != nil {
			return err
		}
		state.blocksPerLine[i] = buf.Width()
	}

	linesDrawn := len(visible)
	if len(state.blocksPerLine) > linesDrawn {
		for _, w := range state.blocksPerLine[linesDrawn:] {
			if _, err := fmt.Fprintf(out, "%*s\n", w, ""); err != nil {
				return err
			}
		}
		if err := moveCursorUp(out, len(state.blocksPerLine)); err != nil {
			return err
		}
		state.blocksPerLine = state.blocksPerLine[:linesDrawn]
	} else {
		if err := moveCursorUp(out, linesDrawn); err != nil {
			return err
		}
	}
	return nil
}

func filterByLevel(entries []tree.Entry, opts Options) []tree.Entry {
	if !opts.HasLevelFilter {
		out := make([]tree.Entry, len(entries))
		copy(out, entries)
		return out
	}
	out := make([]tree.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Key.Level() >= opts.LevelMin && e.Key.Level() <= opts.LevelMax {
			out = append(out, e)
		}
	}
	return out
}

// newlineWithOverdraw must be called directly after the current row's
// content has been written, without a trailing newline. When the row drawn
// this tick is narrower than last tick's, it pads with spaces before the
// newline so no stale characters remain visible.
func newlineWithOverdraw(out io.Writer, currentBlockCount, blocksInLastIteration int) error {
	if blocksInLastIteration > currentBlockCount {
		_, err := fmt.Fprintf(out, "%*s\n", blocksInLastIteration-currentBlockCount, "")
		return err
	}
	_, err := io.WriteString(out, "\n")
	return err
}

// moveCursorUp rewinds the cursor n rows, the raw escape the rest of the
// render loop relies on instead of an alternate screen buffer.
func moveCursorUp(out io.Writer, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := fmt.Fprintf(out, "\x1b[%dA", n)
	return err
}

func popFront(s *[]int) int {
	if len(*s) == 0 {
		return 0
	}
	v := (*s)[0]
	*s = (*s)[1:]
	return v
}
