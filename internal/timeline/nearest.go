package timeline

import (
	"time"

	"shareit/internal/models"
)

// Nearest selects, among bookings of a single item, the last booking (start
// before now, greatest end, ties to the greater id) and the next booking
// (start after now, smallest start, ties to the smaller id). A booking that
// starts exactly at now is neither. Status is not considered.
func Nearest(bookings []*models.Booking, now time.Time) models.Nearest {
	var n models.Nearest
	for _, b := range bookings {
		consider(&n, b, now)
	}
	return n
}

// GroupNearest resolves Nearest for every item appearing in bookings with a
// single pass over the slice. Items without bookings are absent from the map.
func GroupNearest(bookings []*models.Booking, now time.Time) map[int64]models.Nearest {
	groups := make(map[int64]*models.Nearest)
	for _, b := range bookings {
		n, ok := groups[b.Item.ID]
		if !ok {
			n = &models.Nearest{}
			groups[b.Item.ID] = n
		}
		consider(n, b, now)
	}

	out := make(map[int64]models.Nearest, len(groups))
	for id, n := range groups {
		out[id] = *n
	}
	return out
}

func consider(n *models.Nearest, b *models.Booking, now time.Time) {
	switch {
	case b.Start.Before(now):
		if n.Last == nil || endsLater(b, n.Last) {
			n.Last = b
		}
	case b.Start.After(now):
		if n.Next == nil || startsEarlier(b, n.Next) {
			n.Next = b
		}
	}
}

func endsLater(a, b *models.Booking) bool {
	if !a.End.Equal(b.End) {
		return a.End.After(b.End)
	}
	return a.ID > b.ID
}

func startsEarlier(a, b *models.Booking) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.Before(b.Start)
	}
	return a.ID < b.ID
}
