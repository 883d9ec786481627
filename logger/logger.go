// Package logger builds the structured loggers used across the module.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogsampling "github.com/samber/slog-sampling"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	LevelDebug   LogLevel = "DEBUG"
	LevelInfo    LogLevel = "INFO"
	LevelWarning LogLevel = "WARNING"
	LevelError   LogLevel = "ERROR"
)

// Config holds the logger configuration.
type Config struct {
	Level           LogLevel
	DisableSampling bool
	SamplingTick    time.Duration // window for the repeated-message threshold
	SamplingMax     uint64        // identical messages allowed per window
	SamplingRate    float64       // rate applied past the threshold
	Output          io.Writer     // defaults to os.Stdout
}

// DefaultConfig returns a default logger configuration. The defaults keep
// repeated degraded-input warnings from flooding the caller's logs.
func DefaultConfig() *Config {
	return &Config{
		Level:           LevelWarning,
		DisableSampling: false,
		SamplingTick:    5 * time.Second,
		SamplingMax:     10,
		SamplingRate:    0.1,
	}
}

// New creates a configured logger. Repeated identical messages are passed
// through up to SamplingMax per tick, then sampled at SamplingRate.
func New(config *Config) *slog.Logger {
	if config == nil {
		config = DefaultConfig()
	}
	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	baseHandler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLogLevel(config.Level),
	})

	if config.DisableSampling {
		return slog.New(baseHandler)
	}

	tick := config.SamplingTick
	if tick <= 0 {
		tick = 5 * time.Second
	}
	rate := config.SamplingRate
	if rate <= 0 {
		rate = 0.1
	}
	maxRepeats := config.SamplingMax
	if maxRepeats == 0 {
		maxRepeats = 10
	}
	thresholdOption := slogsampling.ThresholdSamplingOption{
		Tick:      tick,
		Threshold: maxRepeats,
		Rate:      rate,
		Matcher:   slogsampling.MatchByLevelAndMessage(),
	}

	return slog.New(
		slogmulti.
			Pipe(thresholdOption.NewMiddleware()).
			Handler(baseHandler),
	)
}

// NewFromEnv creates a logger using the LOG_LEVEL environment variable,
// without sampling.
func NewFromEnv() *slog.Logger {
	level := LogLevel(strings.ToUpper(strings.TrimSpace(os.Getenv("LOG_LEVEL"))))
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

// parseLogLevel converts LogLevel to slog.Level.
func parseLogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarning, "WARN":
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn // Safe default.
	}
}

// WithComponent adds a component field to the logger for categorization.
func WithComponent(log *slog.Logger, component string) *slog.Logger {
	return log.With("component", component)
}

// WithSession adds a session field for session-specific logging.
func WithSession(log *slog.Logger, sessionID string) *slog.Logger {
	return log.With("session", sessionID)
}
