package models

import "time"

// Item is a shareable object. Owner is a snapshot of the owning user taken when the item was read.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	Owner       User      `json:"owner"`
	RequestID   *int64    `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPatch carries the fields of a partial item update. Nil fields keep the stored value.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func (p ItemPatch) Apply(it Item) Item {
	out := it
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Available != nil {
		out.Available = *p.Available
	}
	if it.RequestID != nil {
		id := *it.RequestID
		out.RequestID = &id
	}
	return out
}

// BookingBrief is the compact booking reference rendered inside item views.
type BookingBrief struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
}

// ItemView is an item with its comments and, for the owner only, the nearest bookings.
type ItemView struct {
	Item
	LastBooking *BookingBrief `json:"last_booking"`
	NextBooking *BookingBrief `json:"next_booking"`
	Comments    []Comment     `json:"comments"`
}
