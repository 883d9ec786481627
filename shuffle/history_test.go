package shuffle

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistory_PanicsOnNonPositiveCapacity(t *testing.T) {
	assert.Panics(t, func() { NewHistory(0) })
	assert.Panics(t, func() { NewHistory(-1) })
}

func TestHistory_AddAndContains(t *testing.T) {
	h := NewHistory(3)

	h.Add("a")
	h.Add("b")

	assert.True(t, h.Contains("a"))
	assert.True(t, h.Contains("b"))
	assert.False(t, h.Contains("c"))
	assert.Equal(t, 2, h.Len())
}

func TestHistory_DuplicateAddIsNoop(t *testing.T) {
	h := NewHistory(3)

	h.Add("a")
	h.Add("a")

	assert.Equal(t, 1, h.Len())
}

func TestHistory_EvictsOldestFirst(t *testing.T) {
	h := NewHistory(3)

	h.Add("a")
	h.Add("b")
	h.Add("c")
	h.Add("d")

	assert.False(t, h.Contains("a"), "oldest id should be evicted")
	assert.True(t, h.Contains("b"))
	assert.True(t, h.Contains("c"))
	assert.True(t, h.Contains("d"))
	assert.Equal(t, 3, h.Len())
}

func TestHistory_BoundedAtCapacity(t *testing.T) {
	h := NewHistory(DefaultHistorySize)

	for i := 0; i < DefaultHistorySize+1; i++ {
		h.Add("track-" + strconv.Itoa(i))
	}

	require.Equal(t, DefaultHistorySize, h.Len())
	assert.False(t, h.Contains("track-0"))
	assert.True(t, h.Contains("track-"+strconv.Itoa(DefaultHistorySize)))
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(3)
	h.Add("a")
	h.Add("b")

	h.Clear()

	assert.Equal(t, 0, h.Len())
	assert.False(t, h.Contains("a"))
	assert.Equal(t, 3, h.Capacity())
}
