package timeline

import (
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// Page is a resolved offset window.
type Page struct {
	Offset int
	Limit  int
}

// NewPage converts a from/size pair into a page. The page index is from/size
// with integer division, so a from that is not a multiple of size is rounded
// down to the start of its page (from=5, size=10 reads the first page).
// size is capped at maxSize when maxSize is positive.
func NewPage(from, size, maxSize int) (Page, error) {
	if from < 0 {
		return Page{}, fmt.Errorf("%w: from must not be negative", domain.ErrInvalidRequest)
	}
	if size <= 0 {
		return Page{}, fmt.Errorf("%w: size must be positive", domain.ErrInvalidRequest)
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return Page{Offset: (from / size) * size, Limit: size}, nil
}

// Unbounded covers every row.
func Unbounded() Page {
	return Page{Offset: 0, Limit: -1}
}

// Slice applies the page to an already ordered slice.
func (p Page) Slice(bookings []*models.Booking) []*models.Booking {
	if p.Offset >= len(bookings) {
		return []*models.Booking{}
	}
	end := len(bookings)
	if p.Limit >= 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return bookings[p.Offset:end]
}
