package feed

// Window is a fixed-capacity, insertion-ordered container retaining the
// most recently inserted entries, newest first. Insertion beyond capacity
// evicts the oldest entry. It imposes no ordering on payload timestamps:
// the server may emit backdated records and the window does not reorder.
//
// Window is not safe for concurrent use; Subscription serializes access.
type Window struct {
	cap     int
	entries []Entry
}

// NewWindow creates a window holding at most capacity entries.
// Capacity below 1 is pinned to 1.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{cap: capacity, entries: make([]Entry, 0, capacity)}
}

// Push prepends e as the newest entry, evicting the oldest when full.
func (w *Window) Push(e Entry) {
	if len(w.entries) == w.cap {
		copy(w.entries[1:], w.entries[:w.cap-1])
		w.entries[0] = e
		return
	}
	w.entries = append(w.entries, Entry{})
	copy(w.entries[1:], w.entries[:len(w.entries)-1])
	w.entries[0] = e
}

// Len returns the number of buffered entries.
func (w *Window) Len() int { return len(w.entries) }

// Cap returns the window capacity.
func (w *Window) Cap() int { return w.cap }

// Entries returns a copy of the buffered entries, newest first.
func (w *Window) Entries() []Entry {
	out := make([]Entry, len(w.entries))
	copy(out, w.entries)
	return out
}

// ContainsIdentity reports whether any buffered entry has the given
// identity. Empty identities never match.
func (w *Window) ContainsIdentity(identity string, fn IdentityFunc) bool {
	if identity == "" || fn == nil {
		return false
	}
	for i := range w.entries {
		if fn(w.entries[i]) == identity {
			return true
		}
	}
	return false
}
