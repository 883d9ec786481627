package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledReporterIsNoop(t *testing.T) {
	r := New(false, nil)

	assert.False(t, r.IsEnabled())
	// None of these should panic or require sentry.Init.
	r.CaptureException(errors.New("boom"))
	r.CaptureMessage("anomaly")
	r.CaptureMessageWithTags("anomaly", map[string]string{"component": "queue"})
}

func TestNilReporterIsSafe(t *testing.T) {
	var r *Reporter

	assert.False(t, r.IsEnabled())
	r.CaptureException(errors.New("boom"))
	r.CaptureMessage("anomaly")
}

func TestEnabledReporterSkipsEmptyInput(t *testing.T) {
	r := New(true, nil)

	assert.True(t, r.IsEnabled())
	// nil error and empty message short-circuit before touching sentry.
	r.CaptureException(nil)
	r.CaptureMessage("")
	r.CaptureMessageWithTags("", nil)
}
