// ABOUTME: Command-line history for the input field
// ABOUTME: Recalls earlier entries with a maximum size limit

package tui

// History keeps submitted command lines, oldest first.
// The cursor points one past the newest entry when not browsing.
type History struct {
	entries []string
	cursor  int
	draft   string // Unsubmitted input saved when browsing starts
	maxSize int
}

// NewHistory creates an empty history holding at most maxSize entries
func NewHistory(maxSize int) *History {
	if maxSize < 1 {
		maxSize = 1
	}

	return &History{maxSize: maxSize}
}

// Push records a submitted line and stops browsing.
// Blank lines and repeats of the newest entry are not recorded.
func (h *History) Push(line string) {
	if line != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != line) {
		h.entries = append(h.entries, line)

		// Enforce max size
		if len(h.entries) > h.maxSize {
			h.entries = h.entries[1:]
		}
	}

	h.cursor = len(h.entries)
	h.draft = ""
}

// Prev moves to the previous (older) entry.
// current is the text being edited; it is restored by moving past the newest entry.
// Returns false if there is nothing older.
func (h *History) Prev(current string) (string, bool) {
	if h.cursor == 0 {
		return "", false
	}

	if h.cursor == len(h.entries) {
		h.draft = current
	}

	h.cursor--

	return h.entries[h.cursor], true
}

// Next moves to the next (newer) entry, ending at the saved draft.
// Returns false if not browsing.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}

	h.cursor++
	if h.cursor == len(h.entries) {
		return h.draft, true
	}

	return h.entries[h.cursor], true
}

// Len returns the number of recorded entries
func (h *History) Len() int {
	return len(h.entries)
}

// Clear forgets every entry
func (h *History) Clear() {
	h.entries = nil
	h.cursor = 0
	h.draft = ""
}
