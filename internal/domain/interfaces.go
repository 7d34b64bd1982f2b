package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Repository is the storage collaborator. Lookups return an error wrapping
// ErrNotFound when the record does not exist.
type Repository interface {
	Ping(ctx context.Context) error

	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error

	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	GetItemsByRequests(ctx context.Context, requestIDs []int64) ([]*models.Item, error)
	SearchAvailableItems(ctx context.Context, text string, offset, limit int) ([]*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error

	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	CreateBookingWithLock(ctx context.Context, booking *models.Booking) error
	UpdateBookingStatusWithVersion(ctx context.Context, id, version int64, status string, at time.Time) error
	QueryBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error)
	GetNearestBookings(ctx context.Context, itemID int64, now time.Time) (models.Nearest, error)
	GetBookingsByItems(ctx context.Context, itemIDs []int64) ([]*models.Booking, error)
	GetFinishedBookings(ctx context.Context, itemID, bookerID int64, now time.Time) ([]*models.Booking, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItems(ctx context.Context, itemIDs []int64) (map[int64][]models.Comment, error)

	CreateRequest(ctx context.Context, req *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequester(ctx context.Context, userID int64) ([]*models.ItemRequest, error)
	GetRequestsExcept(ctx context.Context, userID int64, offset, limit int) ([]*models.ItemRequest, error)
}

// RateLimitStore counts requests per actor in fixed windows.
type RateLimitStore interface {
	CheckRateLimit(ctx context.Context, actorID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error)
	ChangeStatus(ctx context.Context, actorID, bookingID int64, approve bool) (*models.Booking, error)
	GetBooking(ctx context.Context, actorID, bookingID int64) (*models.Booking, error)
	ListBookings(ctx context.Context, subject models.Subject, userID int64, state string, from, size int) ([]*models.Booking, error)
	ExportBookings(ctx context.Context, subject models.Subject, userID int64, state string) ([]*models.Booking, time.Time, error)
}

type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, item models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, actorID, itemID int64, patch models.ItemPatch) (*models.Item, error)
	DeleteItem(ctx context.Context, actorID, itemID int64) error
	GetItemView(ctx context.Context, actorID, itemID int64) (*models.ItemView, error)
	ListOwnerItems(ctx context.Context, ownerID int64) ([]*models.ItemView, error)
	SearchItems(ctx context.Context, text string, from, size int) ([]*models.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error)
}

type UserService interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type RequestService interface {
	CreateRequest(ctx context.Context, userID int64, description string) (*models.ItemRequest, error)
	ListOwnRequests(ctx context.Context, userID int64) ([]*models.ItemRequest, error)
	ListOtherRequests(ctx context.Context, userID int64, from, size int) ([]*models.ItemRequest, error)
	GetRequest(ctx context.Context, userID, requestID int64) (*models.ItemRequest, error)
}
