package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/timeline"
)

const bookingSelect = `SELECT b.id, b.start_time, b.end_time, b.status, b.version, b.created_at, b.updated_at,
                              i.id, i.name, i.description, i.available, i.request_id, i.created_at, i.updated_at,
                              o.id, o.name, o.email, o.created_at, o.updated_at,
                              u.id, u.name, u.email, u.created_at, u.updated_at
                       FROM bookings b
                       JOIN items i ON i.id = b.item_id
                       JOIN users o ON o.id = i.owner_id
                       JOIN users u ON u.id = b.booker_id`

func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	var requestID sql.NullInt64
	err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.Status, &b.Version, &b.CreatedAt, &b.UpdatedAt,
		&b.Item.ID, &b.Item.Name, &b.Item.Description, &b.Item.Available, &requestID, &b.Item.CreatedAt, &b.Item.UpdatedAt,
		&b.Item.Owner.ID, &b.Item.Owner.Name, &b.Item.Owner.Email, &b.Item.Owner.CreatedAt, &b.Item.Owner.UpdatedAt,
		&b.Booker.ID, &b.Booker.Name, &b.Booker.Email, &b.Booker.CreatedAt, &b.Booker.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if requestID.Valid {
		id := requestID.Int64
		b.Item.RequestID = &id
	}
	return &b, nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// CreateBookingWithLock inserts a WAITING booking after re-reading the item's
// availability inside the same transaction.
func (db *DB) CreateBookingWithLock(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var available bool
	err = tx.QueryRowContext(ctx, `SELECT available FROM items WHERE id = ?`, booking.Item.ID).Scan(&available)
	if err != nil {
		return notFound(err, "item", booking.Item.ID)
	}
	if !available {
		return fmt.Errorf("%w: item %d", domain.ErrNotAvailable, booking.Item.ID)
	}

	query := `INSERT INTO bookings (start_time, end_time, item_id, booker_id, status, version, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	start, end := booking.Start.UTC(), booking.End.UTC()
	result, err := tx.ExecContext(ctx, query,
		start,
		end,
		booking.Item.ID,
		booking.Booker.ID,
		booking.Status,
		1,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	booking.ID = id
	booking.Start = start
	booking.End = end
	booking.Version = 1
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := scanBooking(db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id))
	if err != nil {
		return nil, notFound(err, "booking", id)
	}
	return b, nil
}

// UpdateBookingStatusWithVersion sets the status only if the stored version
// still equals fromVersion, bumps the version and stamps updated_at with at.
func (db *DB) UpdateBookingStatusWithVersion(ctx context.Context, id, fromVersion int64, status string, at time.Time) error {
	query := `UPDATE bookings SET status = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`
	result, err := db.ExecContext(ctx, query, status, at.UTC(), id, fromVersion)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrConcurrentModification
	}
	return nil
}

// QueryBookings answers a classified listing with one query: the subject
// picks the ownership column and the state filter supplies the predicate.
func (db *DB) QueryBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error) {
	f, err := timeline.Lookup(q.State)
	if err != nil {
		return nil, err
	}

	subject := "b.booker_id = ?"
	if q.Subject == models.SubjectOwner {
		subject = "i.owner_id = ?"
	}
	where, stateArgs := f.Where(q.Now)

	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}

	query := bookingSelect + ` WHERE ` + subject + ` AND (` + where + `)
              ORDER BY b.start_time DESC, b.id DESC LIMIT ? OFFSET ?`
	args := make([]any, 0, len(stateArgs)+3)
	args = append(args, q.UserID)
	args = append(args, stateArgs...)
	args = append(args, limit, q.Offset)

	return db.queryBookings(ctx, query, args...)
}

// GetNearestBookings resolves the last and next booking of one item at now.
// Ordering and tie-breaks match timeline.Nearest.
func (db *DB) GetNearestBookings(ctx context.Context, itemID int64, now time.Time) (models.Nearest, error) {
	var n models.Nearest
	at := now.UTC()

	last, err := scanBooking(db.QueryRowContext(ctx,
		bookingSelect+` WHERE b.item_id = ? AND b.start_time < ? ORDER BY b.end_time DESC, b.id DESC LIMIT 1`,
		itemID, at))
	switch {
	case err == nil:
		n.Last = last
	case !errors.Is(err, sql.ErrNoRows):
		return n, fmt.Errorf("failed to get last booking: %w", err)
	}

	next, err := scanBooking(db.QueryRowContext(ctx,
		bookingSelect+` WHERE b.item_id = ? AND b.start_time > ? ORDER BY b.start_time ASC, b.id ASC LIMIT 1`,
		itemID, at))
	switch {
	case err == nil:
		n.Next = next
	case !errors.Is(err, sql.ErrNoRows):
		return n, fmt.Errorf("failed to get next booking: %w", err)
	}

	return n, nil
}

// GetBookingsByItems returns every booking of the given items ordered by end ascending.
func (db *DB) GetBookingsByItems(ctx context.Context, itemIDs []int64) ([]*models.Booking, error) {
	if len(itemIDs) == 0 {
		return []*models.Booking{}, nil
	}
	marks, args := placeholders(itemIDs)
	return db.queryBookings(ctx,
		bookingSelect+` WHERE b.item_id IN (`+marks+`) ORDER BY b.end_time ASC, b.id ASC`, args...)
}

// GetFinishedBookings returns the booker's bookings of the item that ended before now.
func (db *DB) GetFinishedBookings(ctx context.Context, itemID, bookerID int64, now time.Time) ([]*models.Booking, error) {
	return db.queryBookings(ctx,
		bookingSelect+` WHERE b.item_id = ? AND b.booker_id = ? AND b.end_time < ? ORDER BY b.end_time DESC`,
		itemID, bookerID, now.UTC())
}
