package tree

import "sync"

// Root is a concurrency-safe progress tree: producers add/update/remove
// nodes and append messages from any goroutine, while a renderer reads
// through SortedSnapshot/CopyNewMessages without ever blocking producers
// for the duration of render work — locks are held only for the duration of
// the map/slice mutation itself.
type Root struct {
	mu    sync.RWMutex
	nodes map[string]Entry

	msgCap int
	msgs   []Message // ring buffer, len <= msgCap
	total  uint64     // total messages ever appended
}

// NewRoot creates an empty tree. messageCapacity bounds the message ring;
// once full, the oldest message is evicted on each append.
func NewRoot(messageCapacity int) *Root {
	if messageCapacity <= 0 {
		messageCapacity = 1000
	}
	return &Root{
		nodes:  make(map[string]Entry),
		msgCap: messageCapacity,
	}
}

// Add inserts or replaces the node at key.
func (r *Root) Add(key Key, value Value) {
	r.mu.Lock()
	r.nodes[key.String()] = Entry{Key: key, Value: value}
	r.mu.Unlock()
}

// Remove deletes the node at key, if present.
func (r *Root) Remove(key Key) {
	r.mu.Lock()
	delete(r.nodes, key.String())
	r.mu.Unlock()
}

// Log appends a message to the ring, evicting the oldest entry if full.
func (r *Root) Log(msg Message) {
	r.mu.Lock()
	if len(r.msgs) >= r.msgCap {
		r.msgs = append(r.msgs[1:], msg)
	} else {
		r.msgs = append(r.msgs, msg)
	}
	r.total++
	r.mu.Unlock()
}

// SortedSnapshot implements Collaborator.
func (r *Root) SortedSnapshot(out *[]Entry) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dst := (*out)[:0]
	for _, e := range r.nodes {
		dst = append(dst, e)
	}
	sortEntries(dst)
	*out = dst
}

func sortEntries(entries []Entry) {
	// Small-n insertion sort keeps this allocation-free; progress trees
	// rarely hold more than a few hundred live tasks at once.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Key.Less(entries[j-1].Key); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

// CopyNewMessages implements Collaborator.
func (r *Root) CopyNewMessages(out *[]Message, prev *Cursor) Cursor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	epoch := r.epoch()
	oldestIndex := r.total - uint64(len(r.msgs))

	if prev == nil {
		*out = append((*out)[:0], r.msgs...)
		return Cursor{epoch: epoch, index: r.total}
	}

	if prev.epoch != epoch || prev.index < oldestIndex {
		// The ring wrapped past the reader, or the reader is from a prior
		// epoch entirely: the protocol permits a full resync with no error.
		*out = append((*out)[:0], r.msgs...)
		return Cursor{epoch: epoch, index: r.total}
	}

	start := prev.index - oldestIndex
	*out = append((*out)[:0], r.msgs[start:]...)
	return Cursor{epoch: epoch, index: r.total}
}

// epoch is always 0: Root never resets its counters, so there is exactly
// one epoch for the tree's lifetime. The field exists so Cursor can
// recognize a tree that reset its counters (e.g. across a process-wide
// "restart" boundary) and force a full resync instead of misreading a
// stale index.
func (r *Root) epoch() uint64 { return 0 }

// CopyMessages implements Collaborator.
func (r *Root) CopyMessages(out *[]Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	*out = append((*out)[:0], r.msgs...)
}

// NumTasks implements Collaborator.
func (r *Root) NumTasks() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// MessagesCapacity implements Collaborator.
func (r *Root) MessagesCapacity() int { return r.msgCap }

// DeepEq implements Collaborator.
func (r *Root) DeepEq(other Collaborator) bool {
	o, ok := other.(*Root)
	if !ok {
		return false
	}
	r.mu.RLock()
	o.mu.RLock()
	defer r.mu.RUnlock()
	defer o.mu.RUnlock()

	if len(r.nodes) != len(o.nodes) {
		return false
	}
	for k, v := range r.nodes {
		ov, ok := o.nodes[k]
		if !ok || !v.Value.equal(ov.Value) {
			return false
		}
	}
	if len(r.msgs) != len(o.msgs) {
		return false
	}
	for i := range r.msgs {
		if r.msgs[i] != o.msgs[i] {
			return false
		}
	}
	return true
}

// DeepClone implements Collaborator.
func (r *Root) DeepClone() Collaborator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clone := &Root{
		nodes:  make(map[string]Entry, len(r.nodes)),
		msgCap: r.msgCap,
		msgs:   append([]Message(nil), r.msgs...),
		total:  r.total,
	}
	for k, v := range r.nodes {
		clone.nodes[k] = v
	}
	return clone
}
