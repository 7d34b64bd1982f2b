package service

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/access"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"
	"shareit/internal/timeline"

	"github.com/rs/zerolog"
)

// BookingService drives the booking lifecycle: creation, owner decisions,
// visibility checks and classified listings.
type BookingService struct {
	repo        domain.Repository
	eventBus    domain.EventPublisher
	maxPageSize int
	logger      *zerolog.Logger
	now         func() time.Time
}

var _ domain.BookingService = (*BookingService)(nil)

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, maxPageSize int, logger *zerolog.Logger) *BookingService {
	if maxPageSize <= 0 {
		maxPageSize = models.MaxPageSize
	}
	return &BookingService{
		repo:        repo,
		eventBus:    eventBus,
		maxPageSize: maxPageSize,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", domain.ErrInvalidRequest)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start %s must be before end %s",
			domain.ErrInvalidRequest, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	booker, err := s.repo.GetUserByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := access.CanBook(bookerID, item); err != nil {
		s.logger.Debug().Err(err).Int64("booker_id", bookerID).Int64("item_id", itemID).Msg("booking refused")
		return nil, err
	}

	booking := &models.Booking{
		Start:  start,
		End:    end,
		Item:   *item,
		Booker: *booker,
		Status: models.StatusWaiting,
	}
	if err := s.repo.CreateBookingWithLock(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", itemID).
		Int64("booker_id", bookerID).
		Msg("booking created")
	s.publishEvent(events.EventBookingCreated, *booking, bookerID)

	return booking, nil
}

// ChangeStatus approves or rejects a booking on behalf of the item owner.
// Setting the status the booking already has is rejected. A concurrent
// decision on the same booking makes the loser fail with a conflict.
func (s *BookingService) ChangeStatus(ctx context.Context, actorID, bookingID int64, approve bool) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := access.CanDecideBooking(actorID, booking); err != nil {
		return nil, err
	}

	target := models.StatusRejected
	eventType := events.EventBookingRejected
	if approve {
		target = models.StatusApproved
		eventType = events.EventBookingApproved
	}
	if booking.Status == target {
		return nil, fmt.Errorf("%w: booking %d already has status %s", domain.ErrInvalidRequest, bookingID, target)
	}

	updatedAt := s.now().UTC()
	if err := s.repo.UpdateBookingStatusWithVersion(ctx, bookingID, booking.Version, target, updatedAt); err != nil {
		s.logger.Warn().Err(err).Int64("booking_id", bookingID).Msg("booking status update failed")
		return nil, err
	}

	updated := booking.WithStatus(target)
	updated.Version = booking.Version + 1
	updated.UpdatedAt = updatedAt

	s.logger.Info().
		Int64("booking_id", bookingID).
		Str("from", booking.Status).
		Str("to", target).
		Int64("actor_id", actorID).
		Msg("booking status changed")
	s.publishEvent(eventType, updated, actorID)

	return &updated, nil
}

// GetBooking returns the booking to its booker or item owner. Other actors
// get NotFound.
func (s *BookingService) GetBooking(ctx context.Context, actorID, bookingID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := access.CanViewBooking(actorID, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// ListBookings pages through the bookings where userID is the booker or the
// item owner, filtered by state against one instant sampled per call.
func (s *BookingService) ListBookings(ctx context.Context, subject models.Subject, userID int64, state string, from, size int) ([]*models.Booking, error) {
	started := time.Now()

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	filter, err := timeline.Lookup(state)
	if err != nil {
		return nil, err
	}
	page, err := timeline.NewPage(from, size, s.maxPageSize)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.QueryBookings(ctx, models.BookingQuery{
		Subject: subject,
		UserID:  userID,
		State:   filter.State,
		Now:     s.now(),
		Offset:  page.Offset,
		Limit:   page.Limit,
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveListing(subject.String(), filter.State, time.Since(started))
	return bookings, nil
}

// ExportBookings returns every booking of the subject matching state, newest
// first, along with the instant the classification used.
func (s *BookingService) ExportBookings(ctx context.Context, subject models.Subject, userID int64, state string) ([]*models.Booking, time.Time, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, time.Time{}, err
	}
	filter, err := timeline.Lookup(state)
	if err != nil {
		return nil, time.Time{}, err
	}

	now := s.now()
	all, err := s.repo.QueryBookings(ctx, models.BookingQuery{
		Subject: subject,
		UserID:  userID,
		State:   models.StateAll,
		Now:     now,
	})
	if err != nil {
		return nil, time.Time{}, err
	}

	return timeline.Classify(all, filter, now, timeline.Unbounded()), now, nil
}

func (s *BookingService) publishEvent(eventType string, booking models.Booking, actorID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.Item.ID,
		ItemName:  booking.Item.Name,
		OwnerID:   booking.Item.Owner.ID,
		BookerID:  booking.Booker.ID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
		ActorID:   actorID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
