package tui

import "time"

// Line is one entry in the information sidebar: either a section title or a
// plain text row.
type Line struct {
	IsTitle bool
	Text    string
}

// TitleLine and TextLine build the two Line variants.
func TitleLine(text string) Line { return Line{IsTitle: true, Text: text} }
func TextLine(text string) Line  { return Line{Text: text} }

// Rect is a window size in terminal cells.
type Rect struct {
	Width, Height int
}

// InterruptMode controls whether an interrupt request (Esc/q/Ctrl-C) exits
// the event loop immediately or waits for a later Instantly transition.
type InterruptMode int

const (
	InterruptInstantly InterruptMode = iota
	InterruptDeferred
)

// InterruptState is the draw-info companion to InterruptMode, carrying the
// "armed" flag that records a pending interrupt request under Deferred mode.
type InterruptState struct {
	Mode          InterruptMode
	DeferredArmed bool
}

// State is the view-state Draw renders from and Engine mutates in response
// to key events: scroll offsets, visibility toggles, and the smoothed
// task-panel column width.
type State struct {
	Title              string
	DurationPerFrame   time.Duration
	Information        []Line
	UserWindowSize     *Rect

	HideMessages       bool
	MessagesFullscreen bool
	MessageOffset      uint
	TaskOffset         uint
	HideInfo           bool
	MaximizeInfo       bool

	LastTreeColumnWidth int
	NextTreeColumnWidth int
}

// Equal reports whether two States are interchangeable for
// redraw_only_on_state_change purposes: same visible content, ignoring
// LastTreeColumnWidth, the raw width measurement Draw refreshes every frame.
func (s State) Equal(o State) bool {
	if s.Title != o.Title || s.DurationPerFrame != o.DurationPerFrame {
		return false
	}
	if s.NextTreeColumnWidth != o.NextTreeColumnWidth {
		return false
	}
	if s.HideMessages != o.HideMessages || s.MessagesFullscreen != o.MessagesFullscreen {
		return false
	}
	if s.MessageOffset != o.MessageOffset || s.TaskOffset != o.TaskOffset {
		return false
	}
	if s.HideInfo != o.HideInfo || s.MaximizeInfo != o.MaximizeInfo {
		return false
	}
	if (s.UserWindowSize == nil) != (o.UserWindowSize == nil) {
		return false
	}
	if s.UserWindowSize != nil && *s.UserWindowSize != *o.UserWindowSize {
		return false
	}
	if len(s.Information) != len(o.Information) {
		return false
	}
	for i := range s.Information {
		if s.Information[i] != o.Information[i] {
			return false
		}
	}
	return true
}

// Clone returns a value copy deep enough for Equal to compare safely,
// including the Information slice header's backing array.
func (s State) Clone() State {
	clone := s
	clone.Information = append([]Line(nil), s.Information...)
	if s.UserWindowSize != nil {
		ws := *s.UserWindowSize
		clone.UserWindowSize = &ws
	}
	return clone
}

// Options configures one Engine run.
type Options struct {
	Title                               string
	FramesPerSecond                     float64
	RecomputeColumnWidthEveryNthFrame   int
	WindowSize                          *Rect
	RedrawOnlyOnStateChange             bool
	StopIfEmptyProgress                 bool
}
