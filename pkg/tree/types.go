// Package tree implements the progress-tree collaborator consumed by the
// line and tui renderers (pkg/line, pkg/tui). The renderers only ever touch
// it through the Collaborator interface in collaborator.go; Root is one
// concrete, concurrency-safe implementation of that contract.
package tree

import (
	"strings"
	"time"

	"github.com/tskit-go/dashline/pkg/unit"
)

// Key addresses a node in the hierarchy. Level is 0 for a single-segment
// key, 1 for its direct child, 2 for that child's children, and so on; it
// drives indentation in pkg/row.
type Key struct {
	path  []string
	level uint
}

// NewKey builds a Key from a slice of path segments, root first. A
// single-segment key is a root-level task (Level 0); each additional
// segment is one more level of nesting.
func NewKey(path ...string) Key {
	k := Key{path: append([]string(nil), path...)}
	if len(path) > 0 {
		k.level = uint(len(path) - 1)
	}
	return k
}

// Level returns the key's depth, 0-based: 0 for a single-segment key.
func (k Key) Level() uint { return k.level }

// String returns a stable, sortable identity for the key.
func (k Key) String() string { return strings.Join(k.path, "\x00") }

// Less orders keys for sorted_snapshot: parents sort before children,
// siblings sort by insertion path lexically.
func (k Key) Less(other Key) bool { return k.String() < other.String() }

// MessageLevel classifies a logged message.
type MessageLevel int

const (
	Info MessageLevel = iota
	Success
	Failure
)

// Message is one entry in the tree's append-only log.
type Message struct {
	Time   time.Time
	Level  MessageLevel
	Origin string
	Body   string
}

// State is the run state of a Progress.
type State struct {
	kind    stateKind
	reason  string
	since   *time.Time
}

type stateKind int

const (
	running stateKind = iota
	halted
	blocked
)

// RunningState returns a Running state.
func RunningState() State { return State{kind: running} }

// HaltedState returns a Halted state with the given reason and optional
// timestamp of when the halt began.
func HaltedState(reason string, since *time.Time) State {
	return State{kind: halted, reason: reason, since: since}
}

// BlockedState returns a Blocked state with the given reason and optional
// timestamp of when the block began.
func BlockedState(reason string, since *time.Time) State {
	return State{kind: blocked, reason: reason, since: since}
}

func (s State) IsRunning() bool { return s.kind == running }
func (s State) IsHalted() bool  { return s.kind == halted }
func (s State) IsBlocked() bool { return s.kind == blocked }

// Reason returns the halted/blocked reason, or "" when Running.
func (s State) Reason() string { return s.reason }

// Since returns the halted/blocked start time, if known.
func (s State) Since() *time.Time { return s.since }

func (s State) equal(o State) bool {
	if s.kind != o.kind || s.reason != o.reason {
		return false
	}
	if (s.since == nil) != (o.since == nil) {
		return false
	}
	if s.since != nil && !s.since.Equal(*o.since) {
		return false
	}
	return true
}

// Progress is the numeric state of one task.
type Progress struct {
	Step   uint64
	DoneAt *uint64
	Unit   unit.DisplayValue
	State  State
}

// Fraction returns (step/doneAt, true) when DoneAt is known and nonzero,
// clamped to [0,1]; otherwise (0, false) marking indeterminate progress.
func (p Progress) Fraction() (float64, bool) {
	if p.DoneAt == nil || *p.DoneAt == 0 {
		return 0, false
	}
	f := float64(p.Step) / float64(*p.DoneAt)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f, true
}

func (p Progress) equal(o Progress) bool {
	if p.Step != o.Step {
		return false
	}
	if (p.DoneAt == nil) != (o.DoneAt == nil) {
		return false
	}
	if p.DoneAt != nil && *p.DoneAt != *o.DoneAt {
		return false
	}
	if !p.State.equal(o.State) {
		return false
	}
	return p.Unit == o.Unit
}

// Value carries a node's display name and optional progress.
type Value struct {
	Name     string
	Progress *Progress
}

func (v Value) equal(o Value) bool {
	if v.Name != o.Name {
		return false
	}
	if (v.Progress == nil) != (o.Progress == nil) {
		return false
	}
	if v.Progress != nil && !v.Progress.equal(*o.Progress) {
		return false
	}
	return true
}

// Entry pairs a Key with its Value, as produced by SortedSnapshot.
type Entry struct {
	Key   Key
	Value Value
}
