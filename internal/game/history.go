package game

// History is the undo stack. Every entry is a deep snapshot taken before a
// mutating action.
type History struct {
	entries []Stats
}

// NewHistory builds a stack from previously persisted snapshots, oldest first.
func NewHistory(entries []Stats) *History {
	h := &History{}
	for _, e := range entries {
		h.Push(e)
	}
	return h
}

// Push stores a copy of s on top of the stack.
func (h *History) Push(s Stats) {
	h.entries = append(h.entries, s.Clone())
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (Stats, bool) {
	if len(h.entries) == 0 {
		return Stats{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Clear() {
	h.entries = nil
}

// Snapshots returns copies of all entries, oldest first.
func (h *History) Snapshots() []Stats {
	out := make([]Stats, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e.Clone())
	}
	return out
}

// Undo pops the last snapshot and returns it. With an empty stack it
// returns current unchanged.
func Undo(current Stats, h *History) Stats {
	prev, ok := h.Pop()
	if !ok {
		return current
	}
	return prev
}
