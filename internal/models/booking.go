package models

import "time"

// Booking is an immutable snapshot of a reservation. Item and Booker are the
// related records as of the read that produced the snapshot.
type Booking struct {
	ID        int64     `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Item      Item      `json:"item"`
	Booker    User      `json:"booker"`
	Status    string    `json:"status"` // WAITING, APPROVED, REJECTED
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Brief returns the compact form used by item views.
func (b Booking) Brief() *BookingBrief {
	return &BookingBrief{
		ID:       b.ID,
		BookerID: b.Booker.ID,
		Start:    b.Start,
		End:      b.End,
		Status:   b.Status,
	}
}

// WithStatus returns a copy of b carrying the given status.
func (b Booking) WithStatus(status string) Booking {
	out := b
	out.Status = status
	return out
}

// Subject selects whose bookings a listing is about.
type Subject int

const (
	SubjectBooker Subject = iota
	SubjectOwner
)

func (s Subject) String() string {
	if s == SubjectOwner {
		return "owner"
	}
	return "booker"
}

// BookingQuery is a classified listing request resolved against a single sampled now.
type BookingQuery struct {
	Subject Subject
	UserID  int64
	State   string
	Now     time.Time
	Offset  int
	Limit   int
}
