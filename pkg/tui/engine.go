package tui

import (
	"context"
	"time"

	"github.com/tskit-go/dashline/pkg/tree"
)

// EventKind tags the variant of an Event.
type EventKind int

const (
	EventTick EventKind = iota
	EventInput
	EventSetWindowSize
	EventSetTitle
	EventSetInformation
	EventSetInterruptMode
)

// Event is one entry in the external event stream Engine multiplexes
// alongside its internal ticker and key reader.
type Event struct {
	Kind EventKind

	Key           Key
	WindowSize    Rect
	Title         string
	Information   []Line
	InterruptMode InterruptMode
}

// Engine drives the full-screen render loop: a single select-loop goroutine
// multiplexing a ticker, a key channel fed by a blocking stdin reader, and
// an external event channel, producing one full-frame draw pass per tick.
type Engine struct {
	terminal Terminal
	collab   tree.Collaborator
	opts     Options
}

// NewEngine validates and constructs an Engine. It performs no terminal I/O
// itself; Run starts the terminal and the loop.
func NewEngine(terminal Terminal, collab tree.Collaborator, opts Options) (*Engine, error) {
	if opts.FramesPerSecond <= 0 {
		opts.FramesPerSecond = 10
	}
	if opts.Title == "" {
		opts.Title = "Progress Dashboard"
	}
	return &Engine{terminal: terminal, collab: collab, opts: opts}, nil
}

// Run starts the terminal and returns a function that runs the event loop
// to completion. The returned function never itself returns an error; any
// terminal start failure is returned synchronously instead.
func (e *Engine) Run(ctx context.Context, events <-chan Event) (func(), error) {
	keyCh := make(chan []byte, 1)
	resizeCh := make(chan struct{}, 1)

	if err := e.terminal.Start(
		func(data []byte) {
			select {
			case keyCh <- data:
			default:
			}
		},
		func() {
			select {
			case resizeCh <- struct{}{}:
			default:
			}
		},
	); err != nil {
		return nil, err
	}
	e.terminal.HideCursor()

	return func() { e.loop(ctx, events, keyCh, resizeCh) }, nil
}

func (e *Engine) loop(ctx context.Context, events <-chan Event, keyCh <-chan []byte, resizeCh <-chan struct{}) {
	defer e.terminal.Stop()

	interval := time.Duration(float64(time.Second) / e.opts.FramesPerSecond)
	tickCh, stopTicker := newTicker(interval)
	defer stopTicker()

	state := &State{
		Title:            e.opts.Title,
		DurationPerFrame: interval,
	}
	interrupt := InterruptState{Mode: InterruptInstantly}

	var entries []tree.Entry
	var messages []tree.Message
	var pendingKeyBytes []byte

	storeEvery := e.opts.RecomputeColumnWidthEveryNthFrame
	if storeEvery <= 0 {
		storeEvery = 1
	}

	var prevRoot tree.Collaborator
	var prevState *State
	tick := 0

	for {
		skipRedraw := false
		var ev Event
		var gotKeyBytes []byte

		select {
		case <-ctx.Done():
			return
		case <-tickCh:
			ev = Event{Kind: EventTick}
		case b := <-keyCh:
			gotKeyBytes = b
		case <-resizeCh:
			ev = Event{Kind: EventSetWindowSize, WindowSize: Rect{Width: e.terminal.Columns(), Height: e.terminal.Rows()}}
		case ev = <-events:
		}

		if gotKeyBytes != nil {
			pendingKeyBytes = append(pendingKeyBytes, gotKeyBytes...)
			for len(pendingKeyBytes) > 0 {
				k, rest, err := DecodeKey(pendingKeyBytes)
				pendingKeyBytes = rest
				if err != nil {
					continue
				}
				if exit := e.applyEvent(state, &interrupt, Event{Kind: EventInput, Key: k}, &skipRedraw); exit {
					return
				}
			}
		} else if exit := e.applyEvent(state, &interrupt, ev, &skipRedraw); exit {
			return
		}

		if !skipRedraw && e.opts.RedrawOnlyOnStateChange {
			stateChanged := prevState == nil || !prevState.Equal(*state)
			if stateChanged {
				clone := state.Clone()
				prevState = &clone
			} else {
				if prevRoot != nil && prevRoot.DeepEq(e.collab) {
					skipRedraw = true
				} else {
					prevRoot = e.collab.DeepClone()
				}
			}
		}

		if skipRedraw {
			continue
		}
		tick++

		e.collab.SortedSnapshot(&entries)
		if e.opts.StopIfEmptyProgress && len(entries) == 0 {
			return
		}

		size := Rect{Width: e.terminal.Columns(), Height: e.terminal.Rows()}
		if state.UserWindowSize != nil {
			size = *state.UserWindowSize
		} else if e.opts.WindowSize != nil {
			size = *e.opts.WindowSize
		}

		if !state.HideMessages {
			e.collab.CopyMessages(&messages)
		}

		lines := Draw(state, interrupt, entries, messages, size)
		e.commit(lines)

		if tick == 1 || tick%storeEvery == 0 || state.LastTreeColumnWidth == 0 {
			state.NextTreeColumnWidth = state.LastTreeColumnWidth
		}
	}
}

// applyEvent mutates state/interrupt according to the event's kind and
// reports whether the loop should exit.
func (e *Engine) applyEvent(state *State, interrupt *InterruptState, ev Event, skipRedraw *bool) bool {
	switch ev.Kind {
	case EventTick:
	case EventInput:
		switch ev.Key.Kind {
		case KeyEsc:
			return e.handleInterruptRequest(interrupt)
		case KeyCtrl:
			if ev.Key.Rune == 'c' {
				return e.handleInterruptRequest(interrupt)
			}
			*skipRedraw = true
		case KeyChar:
			switch ev.Key.Rune {
			case 'q':
				return e.handleInterruptRequest(interrupt)
			case '`':
				state.HideMessages = !state.HideMessages
			case '~':
				state.MessagesFullscreen = !state.MessagesFullscreen
			case 'J':
				state.MessageOffset++
			case 'D':
				state.MessageOffset += 10
			case 'j':
				state.TaskOffset++
			case 'd':
				state.TaskOffset += 10
			case 'K':
				state.MessageOffset = saturatingSub(state.MessageOffset, 1)
			case 'U':
				state.MessageOffset = saturatingSub(state.MessageOffset, 10)
			case 'k':
				state.TaskOffset = saturatingSub(state.TaskOffset, 1)
			case 'u':
				state.TaskOffset = saturatingSub(state.TaskOffset, 10)
			case '[':
				state.HideInfo = !state.HideInfo
			case '{':
				state.MaximizeInfo = !state.MaximizeInfo
			default:
				*skipRedraw = true
			}
		default:
			*skipRedraw = true
		}
	case EventSetWindowSize:
		ws := ev.WindowSize
		state.UserWindowSize = &ws
	case EventSetTitle:
		state.Title = ev.Title
	case EventSetInformation:
		state.Information = ev.Information
	case EventSetInterruptMode:
		switch ev.InterruptMode {
		case InterruptInstantly:
			if interrupt.Mode == InterruptDeferred && interrupt.DeferredArmed {
				return true
			}
			interrupt.Mode = InterruptInstantly
			interrupt.DeferredArmed = false
		case InterruptDeferred:
			armed := false
			if interrupt.Mode == InterruptDeferred {
				armed = interrupt.DeferredArmed
			}
			interrupt.Mode = InterruptDeferred
			interrupt.DeferredArmed = armed
		}
	}
	return false
}

// handleInterruptRequest handles an Esc/q/Ctrl-C keypress: exit instantly
// under InterruptInstantly, or arm the deferred-exit flag under
// InterruptDeferred so the loop exits only once instant mode is restored.
func (e *Engine) handleInterruptRequest(interrupt *InterruptState) bool {
	switch interrupt.Mode {
	case InterruptInstantly:
		return true
	default:
		interrupt.DeferredArmed = true
		return false
	}
}

func saturatingSub(v, n uint) uint {
	if v < n {
		return 0
	}
	return v - n
}

// commit writes the full back-buffer to the terminal, one alternate-screen
// redraw per tick.
func (e *Engine) commit(lines []string) {
	e.terminal.WriteString("\x1b[H")
	for i, l := range lines {
		if i > 0 {
			e.terminal.WriteString("\r\n")
		}
		e.terminal.WriteString("\x1b[K")
		e.terminal.WriteString(l)
	}
	e.terminal.WriteString("\x1b[J")
}
