// Package playback is the state holder tying a queue manager and a shuffle
// manager together. It serializes access to the pair and applies shuffle
// results atomically, which is the one discipline the underlying components
// require of their caller.
package playback

import (
	"log/slog"

	"github.com/mberthault/upnext/config"
	"github.com/mberthault/upnext/logger"
	"github.com/mberthault/upnext/queue"
	"github.com/mberthault/upnext/report"
	"github.com/mberthault/upnext/shuffle"
)

// Service defines the playback session contract.
type Service interface {
	// Queue state
	ReplaceQueue(tracks []queue.Track, index int) *queue.Track
	Current() *queue.Track
	UpNext() []queue.Track
	Previous() []queue.Track
	Tracks() []queue.Track
	OriginalTracks() []queue.Track
	CurrentIndex() int
	Len() int
	IsEmpty() bool

	// Navigation
	JumpToTrack(t queue.Track) int
	MoveTo(index int) *queue.Track
	Advance() *queue.Track // next track, extending the queue when it runs low
	Back() *queue.Track

	// Queue manipulation
	PlayNext(t queue.Track)
	Cleanup()
	Reset()

	// Shuffle control
	Shuffled() bool
	ToggleShuffle() bool
	ShuffleAll()
	ShuffleRemaining()

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

// Options configure a playback session.
type Options struct {
	Logger   *slog.Logger
	Reporter *report.Reporter
	Shuffle  shuffle.Options
}

// OptionsFromConfig builds session options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	log := logger.New(&logger.Config{
		Level:           logger.LogLevel(cfg.Logging.Level),
		DisableSampling: cfg.Logging.DisableSampling,
		SamplingRate:    cfg.Logging.SamplingRate,
	})
	return Options{
		Logger:   log,
		Reporter: report.New(cfg.Report.Enabled, log),
		Shuffle: shuffle.Options{
			HistorySize:     cfg.Shuffle.HistorySize,
			RecentWeight:    cfg.Shuffle.RecentWeight,
			ExtendThreshold: cfg.Shuffle.ExtendThreshold,
		},
	}
}
