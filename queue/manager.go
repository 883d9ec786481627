// Package queue owns the canonical playback order: the active track list,
// the stable alphabetical reference list, and the current position.
package queue

import (
	"log/slog"
	"slices"
)

// NoSelection is the current-index sentinel meaning no track is selected.
const NoSelection = -1

// Manager is the single source of truth for "what is the playback order and
// where are we in it". It performs no I/O and no randomness, and does no
// locking of its own: callers serialize access (see the playback package).
type Manager struct {
	tracks   []Track
	original []Track
	current  int
	shuffled bool
	log      *slog.Logger
}

// NewManager creates an empty queue manager.
// A nil logger falls back to slog.Default.
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		tracks:  make([]Track, 0),
		current: NoSelection,
		log:     log.With("component", "queue"),
	}
}

// SetQueue replaces the active queue with a copy of tracks and sets the
// current index, clamped into range. An empty tracks slice clears the
// active queue and resets the index to NoSelection; the anomaly is logged
// at warning level, never surfaced as an error.
//
// The first non-empty queue also seeds the original (alphabetically sorted)
// reference list. Later calls leave it untouched: the unshuffled reference
// stays stable for the whole session until Reset.
func (m *Manager) SetQueue(tracks []Track, index int) {
	if len(tracks) == 0 {
		m.log.Warn("set queue called with no tracks, clearing selection")
		m.tracks = m.tracks[:0]
		m.current = NoSelection
		return
	}

	m.tracks = make([]Track, len(tracks))
	copy(m.tracks, tracks)

	if index < 0 {
		index = 0
	}
	if index > len(m.tracks)-1 {
		index = len(m.tracks) - 1
	}
	m.current = index

	if len(m.original) == 0 {
		m.original = SortByTitle(tracks)
		m.log.Debug("seeded original queue", "tracks", len(m.original))
	}
}

// Current returns the now-playing track, or nil if the queue is empty.
// An out-of-range index on a non-empty queue is corrected to 0 rather than
// treated as an error.
func (m *Manager) Current() *Track {
	if len(m.tracks) == 0 {
		return nil
	}
	if m.current < 0 || m.current >= len(m.tracks) {
		m.log.Warn("current index out of range, resetting",
			"index", m.current, "tracks", len(m.tracks))
		m.current = 0
	}
	t := m.tracks[m.current]
	return &t
}

// UpNext returns a copy of the tracks strictly after the current position.
// Empty when nothing is selected or nothing follows.
func (m *Manager) UpNext() []Track {
	if m.current < 0 || m.current >= len(m.tracks) {
		return []Track{}
	}
	out := make([]Track, len(m.tracks)-m.current-1)
	copy(out, m.tracks[m.current+1:])
	return out
}

// Previous returns a copy of the tracks strictly before the current
// position. Empty when nothing is selected or nothing precedes it.
func (m *Manager) Previous() []Track {
	if m.current <= 0 || m.current >= len(m.tracks) {
		return []Track{}
	}
	out := make([]Track, m.current)
	copy(out, m.tracks[:m.current])
	return out
}

// JumpToTrack moves the current position to the queue entry with the same
// id and returns the new index. When the id is not in the queue the state
// is left unchanged and the previous index is returned.
func (m *Manager) JumpToTrack(t Track) int {
	for i := range m.tracks {
		if m.tracks[i].ID == t.ID {
			m.current = i
			return i
		}
	}
	m.log.Debug("jump target not in queue", "id", t.ID)
	return m.current
}

// MoveTo sets the current position to index and returns the track there.
// Returns nil and leaves state unchanged when index is out of range.
func (m *Manager) MoveTo(index int) *Track {
	if index < 0 || index >= len(m.tracks) {
		return nil
	}
	m.current = index
	t := m.tracks[index]
	return &t
}

// AddToUpNext inserts t immediately after the current position. Inserting
// the currently selected track again is a no-op. While shuffle is off the
// original list receives the same insertion, right after the current
// track's position there, so the two orders stay consistent.
func (m *Manager) AddToUpNext(t Track) {
	cur := m.Current()
	if cur != nil && cur.ID == t.ID {
		m.log.Debug("not queueing current track next to itself", "id", t.ID)
		return
	}

	insertAt := m.current + 1
	if insertAt < 0 || insertAt > len(m.tracks) {
		insertAt = len(m.tracks)
	}
	m.tracks = slices.Insert(m.tracks, insertAt, t)

	if m.shuffled || len(m.original) == 0 {
		return
	}
	if slices.ContainsFunc(m.original, func(o Track) bool { return o.ID == t.ID }) {
		return
	}
	pos := len(m.original)
	if cur != nil {
		if i := slices.IndexFunc(m.original, func(o Track) bool { return o.ID == cur.ID }); i >= 0 {
			pos = i + 1
		}
	}
	m.original = slices.Insert(m.original, pos, t)
}

// Cleanup discards the played history (tracks strictly before the current
// position) and rebases the index to 0. The currently selected track is
// never dropped; an empty or unselected queue is left untouched.
func (m *Manager) Cleanup() {
	if m.current <= 0 || m.current >= len(m.tracks) {
		return
	}
	m.tracks = slices.Delete(m.tracks, 0, m.current)
	m.current = 0
}

// SetShuffled records whether the active queue is currently a shuffled
// permutation of the original. The manager never decides this itself; the
// caller sets it after applying a shuffle result.
func (m *Manager) SetShuffled(shuffled bool) {
	m.shuffled = shuffled
}

// Shuffled reports whether shuffle is currently in effect.
func (m *Manager) Shuffled() bool {
	return m.shuffled
}

// Tracks returns a copy of the active queue.
func (m *Manager) Tracks() []Track {
	out := make([]Track, len(m.tracks))
	copy(out, m.tracks)
	return out
}

// OriginalTracks returns a copy of the alphabetical reference list.
func (m *Manager) OriginalTracks() []Track {
	out := make([]Track, len(m.original))
	copy(out, m.original)
	return out
}

// CurrentIndex returns the current position (NoSelection if none).
func (m *Manager) CurrentIndex() int {
	return m.current
}

// Len returns the number of tracks in the active queue.
func (m *Manager) Len() int {
	return len(m.tracks)
}

// IsEmpty returns true if the active queue has no tracks.
func (m *Manager) IsEmpty() bool {
	return len(m.tracks) == 0
}

// Reset clears everything, including the original reference list and the
// shuffle flag. The next non-empty SetQueue seeds a fresh original queue.
func (m *Manager) Reset() {
	m.tracks = m.tracks[:0]
	m.original = nil
	m.current = NoSelection
	m.shuffled = false
}
