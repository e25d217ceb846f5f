// Package bar draws the bracketed progress bar and selects its color based
// on a task's running/halted/blocked state and completion fraction.
package bar

import (
	lipgloss "charm.land/lipgloss/v2"

	"github.com/tskit-go/dashline/pkg/span"
	"github.com/tskit-go/dashline/pkg/tree"
)

var (
	colorGreen  = lipgloss.Color("2")
	colorYellow = lipgloss.Color("3")
	colorWhite  = lipgloss.Color("7")
	colorRed    = lipgloss.Color("1")
)

// indeterminateGlyphs is the 6-cell scrolling marquee used when a progress
// has no upper bound, in original order before the per-frame reversal.
var indeterminateGlyphs = [6]byte{'=', '=', '=', ' ', ' ', ' '}

// Style returns the lipgloss style a progress's current state and fraction
// select: green above 80% complete, yellow otherwise while running, white
// while indeterminate, dim red when halted, red when blocked.
func Style(p *tree.Progress) lipgloss.Style {
	switch {
	case p.State.IsRunning():
		if fraction, ok := p.Fraction(); ok {
			if fraction > 0.8 {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorYellow)
		}
		return lipgloss.NewStyle().Foreground(colorWhite)
	case p.State.IsHalted():
		return lipgloss.NewStyle().Foreground(colorRed).Faint(true)
	default: // Blocked
		return lipgloss.NewStyle().Foreground(colorRed)
	}
}

// Draw appends the bracketed bar ("[===>   ]" or an indeterminate marquee)
// to buf, using blocksAvailable columns. Three columns are reserved for the
// surrounding " [" and "]" decoration.
func Draw(buf *span.Buffer, p *tree.Progress, style lipgloss.Style, blocksAvailable int) {
	blocksAvailable -= 3
	if blocksAvailable < 0 {
		blocksAvailable = 0
	}

	buf.PushPlain(" [")
	if fraction, ok := p.Fraction(); ok {
		blocksAvailable-- // account for '>'
		if blocksAvailable < 0 {
			blocksAvailable = 0
		}
		filled := int(float64(blocksAvailable) * fraction)
		buf.Push(&style, repeat('=', filled))
		buf.PushPlain(">")
		buf.Push(&style, repeat(' ', blocksAvailable-filled))
	} else {
		buf.Push(&style, marquee(p.Step, blocksAvailable))
	}
	buf.PushPlain("]")
}

func repeat(r byte, n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = r
	}
	return string(b)
}

// marquee returns blocksAvailable glyphs, cycling indeterminateGlyphs
// starting at step and walking forward, then reversed, producing a
// right-to-left scroll as step advances.
func marquee(step uint64, blocksAvailable int) string {
	if blocksAvailable <= 0 {
		return ""
	}
	out := make([]byte, blocksAvailable)
	for i := 0; i < blocksAvailable; i++ {
		idx := (step + uint64(i)) % uint64(len(indeterminateGlyphs))
		out[blocksAvailable-1-i] = indeterminateGlyphs[idx]
	}
	return string(out)
}
