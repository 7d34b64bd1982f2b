// Package timeline classifies bookings relative to a sampled instant and
// resolves the nearest bookings of items.
package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// Filter is one state selector, rendered either as an SQL predicate over the
// bookings table aliased "b" or as an in-memory match. Both forms agree.
type Filter struct {
	State string
	where func(now time.Time) (string, []any)
	match func(b *models.Booking, now time.Time) bool
}

// Where returns the SQL predicate and its arguments. Times are bound in UTC,
// the zone bookings are stored in.
func (f Filter) Where(now time.Time) (string, []any) {
	return f.where(now.UTC())
}

func (f Filter) Match(b *models.Booking, now time.Time) bool {
	return f.match(b, now)
}

// A booking with end == now is PAST and not CURRENT, so that CURRENT, PAST
// and FUTURE partition every booking for a fixed now.
var filters = map[string]Filter{
	models.StateAll: {
		State: models.StateAll,
		where: func(time.Time) (string, []any) { return "1 = 1", nil },
		match: func(*models.Booking, time.Time) bool { return true },
	},
	models.StateCurrent: {
		State: models.StateCurrent,
		where: func(now time.Time) (string, []any) {
			return "b.start_time <= ? AND b.end_time > ?", []any{now, now}
		},
		match: func(b *models.Booking, now time.Time) bool {
			return !b.Start.After(now) && b.End.After(now)
		},
	},
	models.StatePast: {
		State: models.StatePast,
		// inclusive: end == now is past, not a strict end < now
		where: func(now time.Time) (string, []any) {
			return "b.end_time <= ?", []any{now}
		},
		match: func(b *models.Booking, now time.Time) bool {
			return !b.End.After(now)
		},
	},
	models.StateFuture: {
		State: models.StateFuture,
		where: func(now time.Time) (string, []any) {
			return "b.start_time > ?", []any{now}
		},
		match: func(b *models.Booking, now time.Time) bool {
			return b.Start.After(now)
		},
	},
	models.StateWaiting: statusFilter(models.StateWaiting, models.StatusWaiting),
	models.StateRejected: statusFilter(models.StateRejected, models.StatusRejected),
}

func statusFilter(state, status string) Filter {
	return Filter{
		State: state,
		where: func(time.Time) (string, []any) { return "b.status = ?", []any{status} },
		match: func(b *models.Booking, _ time.Time) bool { return b.Status == status },
	}
}

// Lookup resolves a state selector case-insensitively. An empty selector means ALL.
func Lookup(state string) (Filter, error) {
	key := strings.ToUpper(strings.TrimSpace(state))
	if key == "" {
		key = models.StateAll
	}
	f, ok := filters[key]
	if !ok {
		return Filter{}, fmt.Errorf("%w: unknown state: %s", domain.ErrInvalidRequest, state)
	}
	return f, nil
}

// States lists the known selectors in a stable order.
func States() []string {
	out := make([]string, 0, len(filters))
	for k := range filters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Bucket names the time bucket of b at now: CURRENT, PAST or FUTURE.
func Bucket(b *models.Booking, now time.Time) string {
	switch {
	case b.Start.After(now):
		return models.StateFuture
	case b.End.After(now):
		return models.StateCurrent
	default:
		return models.StatePast
	}
}

// SortNewestFirst orders by start descending, then id descending.
func SortNewestFirst(bookings []*models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.After(b.Start)
		}
		return a.ID > b.ID
	})
}

// Classify filters bookings with f at now and returns the requested page,
// newest first. It is the in-memory counterpart of a storage query.
func Classify(bookings []*models.Booking, f Filter, now time.Time, p Page) []*models.Booking {
	matched := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.Match(b, now) {
			matched = append(matched, b)
		}
	}
	SortNewestFirst(matched)
	return p.Slice(matched)
}
