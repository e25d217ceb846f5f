package tree

// Collaborator is the narrow contract the renderers (pkg/line, pkg/tui)
// consume. Root is the only implementation in this module, but renderers
// never depend on it directly so a different concurrent tree structure can
// be swapped in without touching render code.
type Collaborator interface {
	// SortedSnapshot overwrites out with all entries in stable display
	// order. The slice's capacity is reused across calls.
	SortedSnapshot(out *[]Entry)

	// CopyNewMessages overwrites out with only the messages appended since
	// prev was produced (all retained messages when prev == nil on the first
	// call) and returns the cursor to pass on the next call.
	CopyNewMessages(out *[]Message, prev *Cursor) Cursor

	// CopyMessages overwrites out with the full retained message log.
	CopyMessages(out *[]Message)

	// NumTasks and MessagesCapacity are sizing hints for callers that want
	// to preallocate reusable buffers.
	NumTasks() int
	MessagesCapacity() int

	// DeepEq and DeepClone support the TUI's redraw-elision path.
	DeepEq(other Collaborator) bool
	DeepClone() Collaborator
}
