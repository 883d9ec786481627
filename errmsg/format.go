// Package errmsg provides consistent error formatting for caller-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Queue operations
	OpQueueReplace Op = "replace queue"
	OpQueueAdd     Op = "add to up next"
	OpQueueJump    Op = "jump to track"
	OpQueueMove    Op = "move to position"
	OpQueueCleanup Op = "clean up played tracks"

	// Shuffle operations
	OpShuffleToggle Op = "toggle shuffle"
	OpShuffleAll    Op = "shuffle queue"
	OpShuffleExtend Op = "extend queue"

	// Session operations
	OpSessionCreate Op = "create playback session"
	OpSessionClose  Op = "close playback session"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
