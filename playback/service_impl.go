package playback

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/mberthault/upnext/errmsg"
	"github.com/mberthault/upnext/logger"
	"github.com/mberthault/upnext/queue"
	"github.com/mberthault/upnext/report"
	"github.com/mberthault/upnext/shuffle"
)

// ErrEmptyTrackList marks operations degraded by an empty track list.
var ErrEmptyTrackList = errors.New("empty track list")

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.Mutex

	queue   *queue.Manager
	shuffle *shuffle.Manager

	log *slog.Logger
	rep *report.Reporter

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// New creates a playback session with its own queue/shuffle pair.
func New(opts Options) Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	q := queue.NewManager(log)
	sh := opts.Shuffle
	if sh.Logger == nil {
		sh.Logger = log
	}
	return &serviceImpl{
		queue:   q,
		shuffle: shuffle.NewManager(q, sh),
		log:     logger.WithComponent(log, "playback"),
		rep:     opts.Reporter,
	}
}

// ReplaceQueue swaps the whole queue and returns the selected track. An
// empty track list clears the session's selection and surfaces an
// ErrorEvent instead of failing.
func (s *serviceImpl) ReplaceQueue(tracks []queue.Track, index int) *queue.Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.SetQueue(tracks, index)
	if len(tracks) == 0 {
		s.rep.CaptureMessage(errmsg.Format(errmsg.OpQueueReplace, ErrEmptyTrackList))
		s.emitError(ErrorEvent{Op: errmsg.OpQueueReplace, Err: ErrEmptyTrackList})
	}
	s.emitQueue()
	return s.queue.Current()
}

func (s *serviceImpl) Current() *queue.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Current()
}

func (s *serviceImpl) UpNext() []queue.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.UpNext()
}

func (s *serviceImpl) Previous() []queue.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Previous()
}

func (s *serviceImpl) Tracks() []queue.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Tracks()
}

func (s *serviceImpl) OriginalTracks() []queue.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.OriginalTracks()
}

func (s *serviceImpl) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.CurrentIndex()
}

func (s *serviceImpl) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

func (s *serviceImpl) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.IsEmpty()
}

// JumpToTrack moves to the queue entry with the same id, if present.
func (s *serviceImpl) JumpToTrack(t queue.Track) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.queue.Current()
	prevIdx := s.queue.CurrentIndex()
	idx := s.queue.JumpToTrack(t)
	if idx != prevIdx {
		s.emitTrack(prev, prevIdx)
	}
	return idx
}

// MoveTo selects the track at index, if in range.
func (s *serviceImpl) MoveTo(index int) *queue.Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.queue.Current()
	prevIdx := s.queue.CurrentIndex()
	track := s.queue.MoveTo(index)
	if track != nil && index != prevIdx {
		s.emitTrack(prev, prevIdx)
	}
	return track
}

// Advance moves to the next track. When the queue is running low the
// shuffle manager's extension is applied first, so a session at the tail
// keeps playing instead of stopping.
func (s *serviceImpl) Advance() *queue.Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res := s.shuffle.ExtendIfNeeded(); res != nil {
		s.apply(*res)
		s.emitQueue()
	}

	prev := s.queue.Current()
	prevIdx := s.queue.CurrentIndex()
	next := s.queue.MoveTo(prevIdx + 1)
	if next != nil {
		s.emitTrack(prev, prevIdx)
	}
	return next
}

// Back moves to the previous track, if any.
func (s *serviceImpl) Back() *queue.Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.queue.Current()
	prevIdx := s.queue.CurrentIndex()
	track := s.queue.MoveTo(prevIdx - 1)
	if track != nil {
		s.emitTrack(prev, prevIdx)
	}
	return track
}

// PlayNext queues t right after the current track.
func (s *serviceImpl) PlayNext(t queue.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.queue.Len()
	s.queue.AddToUpNext(t)
	if s.queue.Len() != before {
		s.emitQueue()
	}
}

// Cleanup drops the played history before the current track.
func (s *serviceImpl) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.queue.Len()
	s.queue.Cleanup()
	if s.queue.Len() != before {
		s.emitQueue()
	}
}

// Reset clears the session back to its initial state.
func (s *serviceImpl) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.Reset()
	s.shuffle.History().Clear()
	s.emitQueue()
	s.emitMode()
}

func (s *serviceImpl) Shuffled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Shuffled()
}

// ToggleShuffle flips shuffle mode, applying the computed ordering
// atomically, and returns the new mode.
func (s *serviceImpl) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	enabled := !s.queue.Shuffled()
	res := s.shuffle.Toggle()
	s.apply(res)
	s.queue.SetShuffled(enabled)
	s.emitQueue()
	s.emitMode()
	return enabled
}

// ShuffleAll reshuffles the entire queue from scratch.
func (s *serviceImpl) ShuffleAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.shuffle.All()
	if len(res.Tracks) == 0 {
		s.rep.CaptureMessage(errmsg.Format(errmsg.OpShuffleAll, ErrEmptyTrackList))
		s.emitError(ErrorEvent{Op: errmsg.OpShuffleAll, Err: ErrEmptyTrackList})
		return
	}
	s.apply(res)
	s.queue.SetShuffled(true)
	s.emitQueue()
	s.emitMode()
}

// ShuffleRemaining reshuffles only the up-next portion of the queue.
func (s *serviceImpl) ShuffleRemaining() {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.shuffle.Remaining()
	if len(res.Tracks) == 0 {
		return
	}
	s.apply(res)
	s.queue.SetShuffled(true)
	s.emitQueue()
	s.emitMode()
}

// apply puts a shuffle result onto the queue. Empty results are skipped:
// they only occur for empty queues and must not clear a seeded original.
func (s *serviceImpl) apply(res shuffle.Result) {
	if len(res.Tracks) == 0 {
		return
	}
	s.queue.SetQueue(res.Tracks, res.CurrentIndex)
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close shuts down the session and its subscriptions.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

// Emit helpers. Callers hold s.mu; sends never block.

func (s *serviceImpl) emitQueue() {
	e := QueueChange{Tracks: s.queue.Tracks(), Index: s.queue.CurrentIndex()}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendQueue(e)
	}
}

func (s *serviceImpl) emitTrack(prev *queue.Track, prevIdx int) {
	e := TrackChange{
		Previous:      prev,
		Current:       s.queue.Current(),
		PreviousIndex: prevIdx,
		Index:         s.queue.CurrentIndex(),
	}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendTrack(e)
	}
}

func (s *serviceImpl) emitMode() {
	e := ModeChange{Shuffle: s.queue.Shuffled()}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendMode(e)
	}
}

func (s *serviceImpl) emitError(e ErrorEvent) {
	s.log.Warn("operation degraded", "op", string(e.Op), "error", e.Err)
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}
