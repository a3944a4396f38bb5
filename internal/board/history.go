package board

// DefaultHistoryCap bounds the undo history when no capacity is given.
const DefaultHistoryCap = 50

// History is a bounded linear undo/redo list of snapshots.
//
// Callers push a snapshot after every committed mutation (and once after
// the initial load, so there is always a state to undo back to). The
// history never auto-snapshots. Every entry is a deep copy: mutating live
// state after a push cannot corrupt it.
type History struct {
	entries  []Snapshot
	cursor   int
	capacity int
}

// NewHistory creates an empty history. capacity <= 0 uses DefaultHistoryCap.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &History{cursor: -1, capacity: capacity}
}

// Push records a snapshot: the redo tail past the cursor is truncated,
// the entry is appended, and the oldest entry is evicted once the
// capacity is exceeded.
func (h *History) Push(s Snapshot) {
	h.entries = append(h.entries[:h.cursor+1], s.Clone())
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
	h.cursor = len(h.entries) - 1
}

// Undo steps the cursor back and returns a copy of that snapshot.
// At the oldest entry (or when empty) it is a no-op and ok is false.
func (h *History) Undo() (Snapshot, bool) {
	if h.cursor <= 0 {
		return Snapshot{}, false
	}
	h.cursor--
	return h.entries[h.cursor].Clone(), true
}

// Redo steps the cursor forward and returns a copy of that snapshot.
// At the newest entry (or when empty) it is a no-op and ok is false.
func (h *History) Redo() (Snapshot, bool) {
	if h.cursor < 0 || h.cursor >= len(h.entries)-1 {
		return Snapshot{}, false
	}
	h.cursor++
	return h.entries[h.cursor].Clone(), true
}

// CanUndo reports whether Undo would step back.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would step forward.
func (h *History) CanRedo() bool { return h.cursor >= 0 && h.cursor < len(h.entries)-1 }

// Len returns the number of recorded snapshots.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the current position, -1 when empty.
func (h *History) Cursor() int { return h.cursor }

// Reset drops all entries, as on map switch.
func (h *History) Reset() {
	h.entries = nil
	h.cursor = -1
}
