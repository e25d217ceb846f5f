package tui

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/tskit-go/dashline/pkg/row"
	"github.com/tskit-go/dashline/pkg/span"
	"github.com/tskit-go/dashline/pkg/tree"
)

var (
	titleBarStyle  = lipgloss.NewStyle().Bold(true).Reverse(true)
	sectionStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	deferredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Draw renders one full frame into a back-buffer of lines (title bar, task
// panel, messages panel, information sidebar). It never writes to a
// terminal directly — Engine commits the returned lines.
func Draw(state *State, interrupt InterruptState, entries []tree.Entry, messages []tree.Message, size Rect) []string {
	var out []string

	out = append(out, titleBar(state, interrupt, size.Width))

	infoWidth := 0
	if !state.HideInfo && len(state.Information) > 0 {
		infoWidth = infoColumnWidth(state.Information)
		if state.MaximizeInfo {
			infoWidth = size.Width
		}
	}
	rawTaskWidth := size.Width - infoWidth
	if rawTaskWidth < 0 {
		rawTaskWidth = 0
	}
	state.LastTreeColumnWidth = rawTaskWidth

	// The task panel's column width is smoothed across ticks: Engine only
	// promotes LastTreeColumnWidth into NextTreeColumnWidth every Nth frame,
	// so a resize mid-stream doesn't reflow every row until the next
	// promotion. Until the first promotion happens, fall back to the
	// freshly measured width.
	taskWidth := state.NextTreeColumnWidth
	if taskWidth <= 0 {
		taskWidth = rawTaskWidth
	}

	var body []string
	if state.MessagesFullscreen {
		body = messagePanel(messages, state.MessageOffset, size.Width, size.Height-1)
	} else {
		taskLines := taskPanel(entries, state.TaskOffset, taskWidth, size.Height-1)
		if !state.HideMessages {
			msgLines := messagePanel(messages, state.MessageOffset, taskWidth, 0)
			taskLines = append(taskLines, msgLines...)
		}
		body = taskLines
	}

	if infoWidth > 0 && !state.MaximizeInfo {
		body = joinSidebar(body, state.Information, taskWidth, infoWidth, size.Height-1)
	}

	out = append(out, body...)
	return out
}

func titleBar(state *State, interrupt InterruptState, width int) string {
	var buf span.Buffer
	title := state.Title
	if interrupt.Mode == InterruptDeferred && interrupt.DeferredArmed {
		buf.Push(&deferredStyle, "[exiting…] ")
	}
	buf.Push(&titleBarStyle, span.Truncate(title, width, "…"))
	return buf.Render()
}

// taskPanel renders visible progress rows from entries, skipping offset
// rows, using pkg/row's per-node formatter.
func taskPanel(entries []tree.Entry, offset uint, columnCount, maxRows int) []string {
	if columnCount <= 0 {
		return nil
	}
	var out []string
	var buf span.Buffer
	skip := int(offset)
	for _, e := range entries {
		if skip > 0 {
			skip--
			continue
		}
		if maxRows > 0 && len(out) >= maxRows {
			break
		}
		row.Format(&buf, e.Key, e.Value, columnCount)
		out = append(out, buf.Render())
	}
	return out
}

func messagePanel(messages []tree.Message, offset uint, columnCount, maxRows int) []string {
	if columnCount <= 0 {
		return nil
	}
	var out []string
	skip := int(offset)
	dim := lipgloss.NewStyle().Faint(true)
	for _, m := range messages {
		if skip > 0 {
			skip--
			continue
		}
		if maxRows > 0 && len(out) >= maxRows {
			break
		}
		var buf span.Buffer
		buf.Push(&dim, m.Origin)
		buf.PushPlain(" ")
		buf.PushPlain(span.Truncate(m.Body, columnCount, "…"))
		out = append(out, buf.Render())
	}
	return out
}

func infoColumnWidth(lines []Line) int {
	width := 0
	for _, l := range lines {
		if w := span.VisibleWidth(l.Text); w > width {
			width = w
		}
	}
	return width + 2
}

// joinSidebar composites the information sidebar to the right of body,
// padding body rows (and blank left halves past the end of body) to
// taskWidth so the sidebar column lines up. Sidebar text itself is not
// padded, so rows end where their sidebar text ends.
func joinSidebar(body []string, info []Line, taskWidth, infoWidth, maxRows int) []string {
	rows := len(body)
	if len(info) > rows {
		rows = len(info)
	}
	if maxRows > 0 && rows > maxRows {
		rows = maxRows
	}

	out := make([]string, rows)
	for i := 0; i < rows; i++ {
		left := ""
		if i < len(body) {
			left = body[i]
		}
		left = padTo(left, taskWidth)

		right := ""
		if i < len(info) {
			l := info[i]
			if l.IsTitle {
				right = sectionStyle.Render(l.Text)
			} else {
				right = l.Text
			}
		}
		out[i] = left + " " + right
	}
	return out
}

func padTo(s string, width int) string {
	w := span.VisibleWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
