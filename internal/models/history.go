package models

// HistoryCapacity is the number of commands kept in the history buffer.
const HistoryCapacity = 50

// History keeps submitted commands, most recent first.
type History struct {
	entries []string
	index   int // -1 while not browsing
}

func NewHistory() *History {
	return &History{index: -1}
}

// Append inserts cmd at the front, drops the oldest entries beyond
// HistoryCapacity and stops browsing.
func (h *History) Append(cmd string) {
	h.entries = append([]string{cmd}, h.entries...)
	if len(h.entries) > HistoryCapacity {
		h.entries = h.entries[:HistoryCapacity]
	}
	h.index = -1
}

// Navigate moves the cursor: +1 towards older entries, -1 towards newer ones.
// The first call after Append starts at the most recent entry. The index is
// clamped, never wrapped. ok is false when the history is empty.
func (h *History) Navigate(direction int) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.index == -1 {
		h.index = 0
	} else {
		h.index = clamp(h.index+direction, 0, len(h.entries)-1)
	}
	return h.entries[h.index], true
}

// Reset stops browsing without touching the entries.
func (h *History) Reset() {
	h.index = -1
}

func (h *History) Index() int {
	return h.index
}

func (h *History) Browsing() bool {
	return h.index != -1
}

func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the history, most recent first.
func (h *History) Entries() []string {
	result := make([]string, len(h.entries))
	copy(result, h.entries)
	return result
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
