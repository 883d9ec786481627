package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mberthault/upnext/queue"
)

func TestSubscription_ReceivesQueueChanges(t *testing.T) {
	s := testService()
	defer s.Close()
	sub := s.Subscribe()

	s.ReplaceQueue(makeTracks(3), 0)

	select {
	case e := <-sub.QueueChanged:
		assert.Len(t, e.Tracks, 3)
		assert.Equal(t, 0, e.Index)
	default:
		t.Fatal("expected a QueueChange event")
	}
}

func TestSubscription_ReceivesTrackAndModeChanges(t *testing.T) {
	s := testService()
	defer s.Close()
	s.ReplaceQueue(makeTracks(3), 0)
	sub := s.Subscribe()

	s.Advance()
	select {
	case e := <-sub.TrackChanged:
		require.NotNil(t, e.Current)
		assert.Equal(t, "1", e.Current.ID)
		assert.Equal(t, "0", e.Previous.ID)
		assert.Equal(t, 0, e.PreviousIndex)
		assert.Equal(t, 1, e.Index)
	default:
		t.Fatal("expected a TrackChange event")
	}

	s.ToggleShuffle()
	select {
	case e := <-sub.ModeChanged:
		assert.True(t, e.Shuffle)
	default:
		t.Fatal("expected a ModeChange event")
	}
}

func TestSubscription_SendsNeverBlock(t *testing.T) {
	s := testService()
	defer s.Close()
	tracks := makeTracks(2)
	_ = s.Subscribe() // never drained

	// Overflow the event buffer; the service must not deadlock.
	for i := 0; i < eventBufferSize*2; i++ {
		s.ReplaceQueue(tracks, 0)
	}

	assert.Equal(t, 2, s.Len())
}

func TestSubscription_DoneClosedOnServiceClose(t *testing.T) {
	s := testService()
	sub := s.Subscribe()

	require.NoError(t, s.Close())

	select {
	case <-sub.Done:
	default:
		t.Fatal("Done should be closed after Close")
	}
}

func TestSubscription_MultipleSubscribersAllReceive(t *testing.T) {
	s := testService()
	defer s.Close()
	first := s.Subscribe()
	second := s.Subscribe()

	s.ReplaceQueue([]queue.Track{{ID: "a", Title: "Alpha"}}, 0)

	for _, sub := range []*Subscription{first, second} {
		select {
		case e := <-sub.QueueChanged:
			assert.Len(t, e.Tracks, 1)
		default:
			t.Fatal("every subscriber should receive the event")
		}
	}
}
