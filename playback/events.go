package playback

import (
	"github.com/mberthault/upnext/errmsg"
	"github.com/mberthault/upnext/queue"
)

// TrackChange is emitted when the selected track changes.
//
// Emitted by:
//   - Advance/Back: when navigation lands on a track
//   - JumpToTrack/MoveTo: when the target exists in the queue
//
// NOT emitted by:
//   - ReplaceQueue/shuffle operations: those emit QueueChange, and the
//     selected track id does not change across a shuffle or restore.
type TrackChange struct {
	Previous      *queue.Track
	Current       *queue.Track
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the queue contents or ordering change.
type QueueChange struct {
	Tracks []queue.Track
	Index  int
}

// ModeChange is emitted when the shuffle mode changes.
type ModeChange struct {
	Shuffle bool
}

// ErrorEvent is emitted when an operation degrades instead of failing.
// The core never returns errors for data-shape problems; subscribers that
// care about anomalies observe them here.
type ErrorEvent struct {
	Op  errmsg.Op
	Err error
}

// Message returns the caller-facing description of the event.
func (e ErrorEvent) Message() string {
	return errmsg.Format(e.Op, e.Err)
}
