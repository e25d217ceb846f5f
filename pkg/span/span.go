// Package span implements a styled-span buffer: an ordered sequence of
// (style, text) pairs with a single derived attribute, visible column
// width, that layout components (pkg/bar, pkg/row) build on instead of
// measuring bytes or runes directly.
package span

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"
)

// Span is one (style, text) pair. Style may be nil for unstyled text.
type Span struct {
	Style *lipgloss.Style
	Text  string
}

// Width returns the span's visible column count, ignoring any escape
// sequences the style would introduce when rendered (style is applied only
// at Render time, so width is always measured against raw text).
func (s Span) Width() int { return VisibleWidth(s.Text) }

// Render returns the span's styled text.
func (s Span) Render() string {
	if s.Style == nil {
		return s.Text
	}
	return s.Style.Render(s.Text)
}

// Buffer is an ordered, reusable sequence of spans.
type Buffer struct {
	spans []Span
}

// Reset empties the buffer for reuse without releasing its backing array.
func (b *Buffer) Reset() { b.spans = b.spans[:0] }

// Push appends a styled span.
func (b *Buffer) Push(style *lipgloss.Style, text string) {
	b.spans = append(b.spans, Span{Style: style, Text: text})
}

// PushPlain appends an unstyled span.
func (b *Buffer) PushPlain(text string) { b.Push(nil, text) }

// Width sums the visible column width of every span in the buffer — the
// single quantity all overdraw and layout math in pkg/line and pkg/bar is
// driven by.
func (b *Buffer) Width() int {
	total := 0
	for _, s := range b.spans {
		total += s.Width()
	}
	return total
}

// Len returns the number of spans currently in the buffer.
func (b *Buffer) Len() int { return len(b.spans) }

// Render concatenates every span's styled text.
func (b *Buffer) Render() string {
	var sb strings.Builder
	for _, s := range b.spans {
		sb.WriteString(s.Render())
	}
	return sb.String()
}
