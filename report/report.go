// Package report provides safe, optional anomaly reporting. A disabled
// reporter is a no-op, so the core stays usable without any network access
// or sentry initialization.
package report

import (
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// Reporter wraps sentry with an enabled flag and hub isolation.
type Reporter struct {
	enabled bool
	log     *slog.Logger
}

// New creates a reporter. When enabled is false every capture is a no-op;
// enabling it assumes the caller has run sentry.Init.
func New(enabled bool, log *slog.Logger) *Reporter {
	if log == nil {
		log = slog.Default()
	}
	return &Reporter{
		enabled: enabled,
		log:     log,
	}
}

// IsEnabled returns whether reporting is enabled.
func (r *Reporter) IsEnabled() bool {
	return r != nil && r.enabled
}

// CaptureException captures an exception with proper hub isolation.
func (r *Reporter) CaptureException(err error) {
	if !r.IsEnabled() || err == nil {
		return
	}
	// Clone hub to avoid data races across goroutines.
	hub := sentry.CurrentHub().Clone()
	hub.CaptureException(err)
}

// CaptureMessage captures a message with proper hub isolation.
func (r *Reporter) CaptureMessage(msg string) {
	if !r.IsEnabled() || msg == "" {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.CaptureMessage(msg)
}

// CaptureMessageWithTags captures a message with categorization tags.
func (r *Reporter) CaptureMessageWithTags(msg string, tags map[string]string) {
	if !r.IsEnabled() || msg == "" {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		for key, value := range tags {
			scope.SetTag(key, value)
		}
		hub.CaptureMessage(msg)
	})
}
