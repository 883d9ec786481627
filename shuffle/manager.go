// Package shuffle computes shuffled and restored orderings over a queue.
// It never mutates the queue manager it reads from: every operation returns
// a Result for the caller to apply.
package shuffle

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/mberthault/upnext/queue"
)

const (
	// DefaultRecentWeight is the selection weight for tracks in the
	// recency history. Recently played tracks drift toward the end of a
	// shuffle without being excluded.
	DefaultRecentWeight = 0.3

	// DefaultExtendThreshold is the up-next count at or below which the
	// queue is considered close to exhaustion.
	DefaultExtendThreshold = 5
)

// Result is an ordering computed by the manager, for the caller to apply
// back onto its queue manager (or equivalent playback state holder).
type Result struct {
	Tracks       []queue.Track
	CurrentIndex int
}

// Options tune shuffling behavior. Zero values fall back to defaults.
type Options struct {
	HistorySize     int        // recency history capacity (default 50)
	RecentWeight    float64    // weight for recently played tracks (default 0.3)
	ExtendThreshold int        // up-next count triggering extension (default 5)
	Rand            *rand.Rand // injectable source for deterministic tests
	Logger          *slog.Logger
}

// Manager computes shuffled and restored orderings on demand.
type Manager struct {
	queue        *queue.Manager
	history      *History
	recentWeight float64
	threshold    int
	rand         *rand.Rand
	log          *slog.Logger
}

// NewManager creates a shuffle manager over q.
// A negative HistorySize panics (contract violation); everything else
// degrades to defaults.
func NewManager(q *queue.Manager, opts Options) *Manager {
	if opts.HistorySize == 0 {
		opts.HistorySize = DefaultHistorySize
	}
	if opts.RecentWeight <= 0 {
		opts.RecentWeight = DefaultRecentWeight
	}
	if opts.ExtendThreshold <= 0 {
		opts.ExtendThreshold = DefaultExtendThreshold
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>16))
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Manager{
		queue:        q,
		history:      NewHistory(opts.HistorySize),
		recentWeight: opts.RecentWeight,
		threshold:    opts.ExtendThreshold,
		rand:         opts.Rand,
		log:          opts.Logger.With("component", "shuffle"),
	}
}

// History exposes the recency history (shared state, not a copy).
func (m *Manager) History() *History {
	return m.history
}

// Toggle flips between the shuffled and the restored ordering.
//
// Turning shuffle on keeps everything up to and including the current track
// in place and weighted-shuffles the rest; the current track id enters the
// recency history. Turning shuffle off restores the original alphabetical
// queue, re-locates the current track in it, and clears the history.
func (m *Manager) Toggle() Result {
	if m.queue.Shuffled() {
		return m.restore()
	}
	return m.Remaining()
}

// Remaining shuffles only the up-next portion of the active queue,
// regardless of the current shuffle flag. Everything at or before the
// current position stays fixed and the current track id is recorded in the
// recency history. With nothing selected the whole queue is shuffled.
func (m *Manager) Remaining() Result {
	tracks := m.queue.Tracks()
	if len(tracks) == 0 {
		m.log.Warn("shuffle requested on empty queue")
		return Result{Tracks: []queue.Track{}, CurrentIndex: 0}
	}

	index := m.queue.CurrentIndex()
	if index < 0 || index >= len(tracks) {
		return Result{Tracks: m.weightedShuffle(tracks), CurrentIndex: 0}
	}

	m.history.Add(tracks[index].ID)
	shuffled := m.weightedShuffle(tracks[index+1:])

	out := make([]queue.Track, 0, len(tracks))
	out = append(out, tracks[:index+1]...)
	out = append(out, shuffled...)
	return Result{Tracks: out, CurrentIndex: index}
}

// All weighted-shuffles the entire active queue and rebases the index to 0,
// starting a fresh shuffle session: the recency history is cleared first.
// An empty queue yields an empty result, never an error.
func (m *Manager) All() Result {
	m.history.Clear()
	tracks := m.queue.Tracks()
	if len(tracks) == 0 {
		m.log.Warn("shuffle all requested on empty queue")
		return Result{Tracks: []queue.Track{}, CurrentIndex: 0}
	}
	return Result{Tracks: m.weightedShuffle(tracks), CurrentIndex: 0}
}

// restore returns the original alphabetical queue with the index pointing
// at the current track's position there. When the current track is absent
// the previous index is kept, clamped into range. Clears the history.
func (m *Manager) restore() Result {
	defer m.history.Clear()

	original := m.queue.OriginalTracks()
	if len(original) == 0 {
		// Shuffle flag on with no reference order: keep the active
		// queue rather than wiping the session.
		m.log.Warn("no original queue to restore, keeping active order")
		return Result{Tracks: m.queue.Tracks(), CurrentIndex: m.queue.CurrentIndex()}
	}

	index := m.queue.CurrentIndex()
	if cur := m.queue.Current(); cur != nil {
		if i := slices.IndexFunc(original, func(t queue.Track) bool { return t.ID == cur.ID }); i >= 0 {
			index = i
		} else {
			m.log.Debug("current track missing from original queue", "id", cur.ID)
		}
	}
	if index < 0 {
		index = 0
	}
	if index > len(original)-1 {
		index = len(original) - 1
	}
	return Result{Tracks: original, CurrentIndex: index}
}

// ExtendIfNeeded appends fresh material when the queue is close to running
// out. Returns nil when no extension is warranted or when there is no
// original queue to draw from. Candidates are the original-queue tracks not
// already present in the active queue; when everything has been consumed
// the history is cleared and the full original queue is recycled.
func (m *Manager) ExtendIfNeeded() *Result {
	original := m.queue.OriginalTracks()
	if len(original) == 0 {
		return nil
	}

	tracks := m.queue.Tracks()
	index := m.queue.CurrentIndex()

	remaining := 0
	if index >= 0 && index < len(tracks) {
		remaining = len(tracks) - index - 1
	}
	if remaining > m.threshold && !atOriginalEdge(tracks, original, index) {
		return nil
	}

	present := lo.SliceToMap(tracks, func(t queue.Track) (string, struct{}) {
		return t.ID, struct{}{}
	})
	candidates := lo.Filter(original, func(t queue.Track, _ int) bool {
		_, ok := present[t.ID]
		return !ok
	})
	if len(candidates) == 0 {
		m.log.Debug("all tracks consumed, recycling original queue")
		m.history.Clear()
		candidates = original
	}

	extended := make([]queue.Track, 0, len(tracks)+len(candidates))
	extended = append(extended, tracks...)
	extended = append(extended, m.weightedShuffle(candidates)...)

	m.log.Debug("extending queue", "added", len(candidates), "remaining", remaining)
	return &Result{Tracks: extended, CurrentIndex: index}
}

// atOriginalEdge reports whether the selected track sits at the first or
// last position of the original queue.
func atOriginalEdge(tracks, original []queue.Track, index int) bool {
	if index < 0 || index >= len(tracks) || len(original) == 0 {
		return false
	}
	id := tracks[index].ID
	return original[0].ID == id || original[len(original)-1].ID == id
}

// weightedShuffle runs a Fisher-Yates style pass where each step draws from
// a cumulative-weight distribution over the not-yet-placed tracks instead
// of a uniform index. Tracks in the recency history carry a reduced weight,
// biasing them toward the end without excluding them. The output is always
// a permutation of the input.
func (m *Manager) weightedShuffle(tracks []queue.Track) []queue.Track {
	remaining := make([]queue.Track, len(tracks))
	copy(remaining, tracks)

	weights := make([]float64, len(remaining))
	total := 0.0
	for i, t := range remaining {
		w := 1.0
		if m.history.Contains(t.ID) {
			w = m.recentWeight
		}
		weights[i] = w
		total += w
	}

	out := make([]queue.Track, 0, len(remaining))
	for len(remaining) > 0 {
		r := m.rand.Float64() * total
		cumulative := 0.0
		picked := len(remaining) - 1 // float drift fallback
		for i := range remaining {
			cumulative += weights[i]
			if r <= cumulative {
				picked = i
				break
			}
		}
		out = append(out, remaining[picked])
		total -= weights[picked]
		remaining = slices.Delete(remaining, picked, picked+1)
		weights = slices.Delete(weights, picked, picked+1)
	}
	return out
}
