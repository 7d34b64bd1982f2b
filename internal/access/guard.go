// Package access holds the authorization predicates for bookings and items.
// Each predicate returns nil when the actor may proceed, or an error wrapping
// the domain error kind to report.
package access

import (
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// CanViewBooking allows the booker and the item owner. Anyone else gets
// NotFound so the booking's existence is not disclosed.
func CanViewBooking(actorID int64, b *models.Booking) error {
	if actorID == b.Booker.ID || actorID == b.Item.Owner.ID {
		return nil
	}
	return fmt.Errorf("%w: booking %d", domain.ErrNotFound, b.ID)
}

// CanDecideBooking allows only the item owner to approve or reject.
func CanDecideBooking(actorID int64, b *models.Booking) error {
	if actorID != b.Item.Owner.ID {
		return fmt.Errorf("%w: user %d does not own item %d of booking %d",
			domain.ErrForbidden, actorID, b.Item.ID, b.ID)
	}
	return nil
}

// CanBook rejects self-booking with NotFound, then unavailable items with NotAvailable.
func CanBook(actorID int64, item *models.Item) error {
	if !item.Available {
		return fmt.Errorf("%w: item %d", domain.ErrNotAvailable, item.ID)
	}
	if actorID == item.Owner.ID {
		return fmt.Errorf("%w: item %d", domain.ErrNotFound, item.ID)
	}
	return nil
}

// CanComment requires at least one booking of the actor on the item that
// ended strictly before now. The bookings are the actor's bookings of the item.
func CanComment(actorID, itemID int64, bookings []*models.Booking, now time.Time) error {
	for _, b := range bookings {
		if b.Booker.ID == actorID && b.Item.ID == itemID && b.End.Before(now) {
			return nil
		}
	}
	return fmt.Errorf("%w: user %d has no finished booking of item %d",
		domain.ErrNotAllowed, actorID, itemID)
}

// CanModifyItem allows only the owner to update or delete an item.
func CanModifyItem(actorID int64, item *models.Item) error {
	if actorID != item.Owner.ID {
		return fmt.Errorf("%w: user %d does not own item %d", domain.ErrForbidden, actorID, item.ID)
	}
	return nil
}
