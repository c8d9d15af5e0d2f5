package session

// DefaultHistoryLimit is the number of inputs kept.
const DefaultHistoryLimit = 50

// History holds submitted inputs, most recent first, with a browsing cursor.
// The cursor is -1 when not browsing.
type History struct {
	entries []string
	index   int
	limit   int
}

// NewHistory creates a history keeping at most limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{index: -1, limit: limit}
}

// Push records input as the most recent entry and drops the oldest past
// the limit.
func (h *History) Push(input string) {
	h.entries = append([]string{input}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

// Up moves to an older entry and returns it. On an empty history it
// returns false.
func (h *History) Up() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.index < len(h.entries)-1 {
		h.index++
	}
	return h.entries[h.index], true
}

// Down moves to a newer entry. Past the newest it returns the empty input.
func (h *History) Down() string {
	if h.index > -1 {
		h.index--
	}
	if h.index == -1 {
		return ""
	}
	return h.entries[h.index]
}

// Reset stops browsing.
func (h *History) Reset() { h.index = -1 }

// Index returns the cursor.
func (h *History) Index() int { return h.index }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns the inputs, most recent first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
