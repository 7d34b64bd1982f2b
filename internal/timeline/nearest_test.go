package timeline

import (
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onItem(b *models.Booking, itemID int64) *models.Booking {
	b.Item = models.Item{ID: itemID}
	return b
}

func TestNearest(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		n := Nearest(nil, now)
		assert.Nil(t, n.Last)
		assert.Nil(t, n.Next)
	})

	t.Run("PastAndFuture", func(t *testing.T) {
		past := booking(1, -2*time.Hour, -time.Hour, models.StatusApproved)
		future := booking(2, 3*time.Hour, 4*time.Hour, models.StatusWaiting)

		n := Nearest([]*models.Booking{future, past}, now)
		require.NotNil(t, n.Last)
		require.NotNil(t, n.Next)
		assert.Equal(t, int64(1), n.Last.ID)
		assert.Equal(t, int64(2), n.Next.ID)
	})

	t.Run("CurrentCountsAsLast", func(t *testing.T) {
		past := booking(1, -5*time.Hour, -4*time.Hour, models.StatusApproved)
		current := booking(2, -time.Hour, time.Hour, models.StatusApproved)

		n := Nearest([]*models.Booking{past, current}, now)
		require.NotNil(t, n.Last)
		assert.Equal(t, int64(2), n.Last.ID)
		assert.Nil(t, n.Next)
	})

	t.Run("LastIsGreatestEnd", func(t *testing.T) {
		// started later but ends earlier than the long booking
		short := booking(1, -2*time.Hour, -90*time.Minute, models.StatusApproved)
		long := booking(2, -10*time.Hour, -time.Hour, models.StatusApproved)

		n := Nearest([]*models.Booking{short, long}, now)
		assert.Equal(t, int64(2), n.Last.ID)
	})

	t.Run("NextIsSmallestStart", func(t *testing.T) {
		later := booking(1, 5*time.Hour, 6*time.Hour, models.StatusWaiting)
		sooner := booking(2, time.Hour, 9*time.Hour, models.StatusWaiting)

		n := Nearest([]*models.Booking{later, sooner}, now)
		assert.Equal(t, int64(2), n.Next.ID)
	})

	t.Run("TieBreaks", func(t *testing.T) {
		lastA := booking(3, -3*time.Hour, -time.Hour, models.StatusApproved)
		lastB := booking(7, -2*time.Hour, -time.Hour, models.StatusApproved)
		nextA := booking(9, time.Hour, 2*time.Hour, models.StatusWaiting)
		nextB := booking(4, time.Hour, 3*time.Hour, models.StatusWaiting)

		n := Nearest([]*models.Booking{lastA, lastB, nextA, nextB}, now)
		assert.Equal(t, int64(7), n.Last.ID)
		assert.Equal(t, int64(4), n.Next.ID)
	})

	t.Run("RejectedIncluded", func(t *testing.T) {
		rejected := booking(1, time.Hour, 2*time.Hour, models.StatusRejected)
		n := Nearest([]*models.Booking{rejected}, now)
		require.NotNil(t, n.Next)
		assert.Equal(t, models.StatusRejected, n.Next.Status)
	})

	t.Run("StartingNowIsNeither", func(t *testing.T) {
		n := Nearest([]*models.Booking{booking(1, 0, time.Hour, models.StatusWaiting)}, now)
		assert.Nil(t, n.Last)
		assert.Nil(t, n.Next)
	})
}

func TestGroupNearest(t *testing.T) {
	bookings := []*models.Booking{
		onItem(booking(1, -3*time.Hour, -2*time.Hour, models.StatusApproved), 10),
		onItem(booking(2, 2*time.Hour, 3*time.Hour, models.StatusWaiting), 20),
		onItem(booking(3, -time.Hour, -30*time.Minute, models.StatusApproved), 10),
		onItem(booking(4, time.Hour, 2*time.Hour, models.StatusWaiting), 10),
		onItem(booking(5, -5*time.Hour, -4*time.Hour, models.StatusApproved), 20),
	}

	got := GroupNearest(bookings, now)
	require.Len(t, got, 2)

	assert.Equal(t, int64(3), got[10].Last.ID)
	assert.Equal(t, int64(4), got[10].Next.ID)
	assert.Equal(t, int64(5), got[20].Last.ID)
	assert.Equal(t, int64(2), got[20].Next.ID)

	_, ok := got[30]
	assert.False(t, ok)

	// the grouped form agrees with the single-item form
	var item10 []*models.Booking
	for _, b := range bookings {
		if b.Item.ID == 10 {
			item10 = append(item10, b)
		}
	}
	assert.Equal(t, Nearest(item10, now), got[10])
}
