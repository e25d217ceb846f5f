package tree

// Cursor is the opaque cursor handed back by CopyNewMessages. Callers must
// treat it as opaque — only its origin (epoch) and position (index) let the
// tree recognize a wrapped ring buffer and fall back to a full copy.
type Cursor struct {
	epoch uint64
	index uint64
}
