package models

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Booking list state selectors.
const (
	StateAll      = "ALL"
	StateCurrent  = "CURRENT"
	StatePast     = "PAST"
	StateFuture   = "FUTURE"
	StateWaiting  = "WAITING"
	StateRejected = "REJECTED"
)

const (
	// DefaultPageSize is used when a listing omits size.
	DefaultPageSize = 10

	// MaxPageSize caps a single listing page.
	MaxPageSize = 100

	// MaxDescriptionLength bounds item and request descriptions.
	MaxDescriptionLength = 200

	// ActorRateLimitRequests per ActorRateLimitWindow seconds for one caller id.
	ActorRateLimitRequests = 120
	ActorRateLimitWindow   = 60

	// UserIDHeader carries the caller identity.
	UserIDHeader = "X-Sharer-User-Id"
)
