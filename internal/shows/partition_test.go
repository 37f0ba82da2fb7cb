package shows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagelist/backend/internal/models"
)

func venueShow(id int64, start time.Time) models.VenueShow {
	return models.VenueShow{ArtistID: id, StartTime: start}
}

func TestSplitByTimePartitions(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []models.VenueShow{
		venueShow(1, now.Add(-48*time.Hour)),
		venueShow(2, now.Add(24*time.Hour)),
		venueShow(3, now.Add(-time.Minute)),
		venueShow(4, now.Add(time.Minute)),
		venueShow(5, now.Add(-720*time.Hour)),
	}

	past, upcoming := SplitByTime(entries, func(e models.VenueShow) time.Time { return e.StartTime }, now)

	require.Len(t, past, 3)
	require.Len(t, upcoming, 2)
	// no overlap, no omission
	assert.Equal(t, len(entries), len(past)+len(upcoming))
	for _, e := range past {
		assert.True(t, e.StartTime.Before(now))
	}
	for _, e := range upcoming {
		assert.False(t, e.StartTime.Before(now))
	}
}

func TestSplitByTimeBoundaryIsUpcoming(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []models.VenueShow{venueShow(1, now)}

	past, upcoming := SplitByTime(entries, func(e models.VenueShow) time.Time { return e.StartTime }, now)

	assert.Empty(t, past)
	require.Len(t, upcoming, 1)
	assert.Equal(t, int64(1), upcoming[0].ArtistID)
}

func TestSplitByTimeOrdering(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []models.VenueShow{
		venueShow(1, now.Add(-time.Hour)),
		venueShow(2, now.Add(-3*time.Hour)),
		venueShow(3, now.Add(-2*time.Hour)),
		venueShow(4, now.Add(3*time.Hour)),
		venueShow(5, now.Add(time.Hour)),
		venueShow(6, now.Add(2*time.Hour)),
	}

	past, upcoming := SplitByTime(entries, func(e models.VenueShow) time.Time { return e.StartTime }, now)

	// past: most recent first
	require.Len(t, past, 3)
	assert.Equal(t, []int64{1, 3, 2}, []int64{past[0].ArtistID, past[1].ArtistID, past[2].ArtistID})
	// upcoming: soonest first
	require.Len(t, upcoming, 3)
	assert.Equal(t, []int64{5, 6, 4}, []int64{upcoming[0].ArtistID, upcoming[1].ArtistID, upcoming[2].ArtistID})
}

func TestSplitByTimeEmpty(t *testing.T) {
	past, upcoming := SplitByTime(nil, func(e models.VenueShow) time.Time { return e.StartTime }, time.Now())
	assert.Empty(t, past)
	assert.Empty(t, upcoming)
	assert.NotNil(t, past)
	assert.NotNil(t, upcoming)
}
