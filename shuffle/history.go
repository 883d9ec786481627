package shuffle

// DefaultHistorySize is the default recency history capacity.
const DefaultHistorySize = 50

// History is a bounded ordered set of recently selected track ids, used to
// down-weight recently played tracks during weighted shuffling. When the
// capacity is exceeded the oldest inserted id is evicted first.
type History struct {
	ids     []string
	members map[string]struct{}
	cap     int
}

// NewHistory creates a history with the given capacity.
// A non-positive capacity is a programming error and panics.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		panic("shuffle: history capacity must be positive")
	}
	return &History{
		ids:     make([]string, 0, capacity),
		members: make(map[string]struct{}, capacity),
		cap:     capacity,
	}
}

// Add records id as recently selected. Ids already present are left in
// their original insertion slot.
func (h *History) Add(id string) {
	if _, ok := h.members[id]; ok {
		return
	}
	h.ids = append(h.ids, id)
	h.members[id] = struct{}{}
	if len(h.ids) > h.cap {
		evicted := h.ids[0]
		h.ids = h.ids[1:]
		delete(h.members, evicted)
	}
}

// Contains reports whether id is in the history.
func (h *History) Contains(id string) bool {
	_, ok := h.members[id]
	return ok
}

// Clear empties the history.
func (h *History) Clear() {
	h.ids = h.ids[:0]
	clear(h.members)
}

// Len returns the number of ids currently held.
func (h *History) Len() int {
	return len(h.ids)
}

// Capacity returns the configured capacity.
func (h *History) Capacity() int {
	return h.cap
}
