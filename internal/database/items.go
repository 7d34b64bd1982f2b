package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const itemSelect = `SELECT i.id, i.name, i.description, i.available, i.request_id, i.created_at, i.updated_at,
                           o.id, o.name, o.email, o.created_at, o.updated_at
                    FROM items i JOIN users o ON o.id = i.owner_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var it models.Item
	var requestID sql.NullInt64
	err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Available, &requestID, &it.CreatedAt, &it.UpdatedAt,
		&it.Owner.ID, &it.Owner.Name, &it.Owner.Email, &it.Owner.CreatedAt, &it.Owner.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if requestID.Valid {
		id := requestID.Int64
		it.RequestID = &id
	}
	return &it, nil
}

func (db *DB) queryItems(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (name, description, available, owner_id, request_id, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	var requestID sql.NullInt64
	if item.RequestID != nil {
		requestID = sql.NullInt64{Int64: *item.RequestID, Valid: true}
	}

	result, err := db.ExecContext(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.Owner.ID,
		requestID,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	it, err := scanItem(db.QueryRowContext(ctx, itemSelect+` WHERE i.id = ?`, id))
	if err != nil {
		return nil, notFound(err, "item", id)
	}
	return it, nil
}

func (db *DB) GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	return db.queryItems(ctx, itemSelect+` WHERE i.owner_id = ? ORDER BY i.id`, ownerID)
}

func (db *DB) GetItemsByRequests(ctx context.Context, requestIDs []int64) ([]*models.Item, error) {
	if len(requestIDs) == 0 {
		return []*models.Item{}, nil
	}
	marks, args := placeholders(requestIDs)
	return db.queryItems(ctx, itemSelect+` WHERE i.request_id IN (`+marks+`) ORDER BY i.id`, args...)
}

// SearchAvailableItems matches text against name and description, ignoring
// ASCII case. LIKE wildcards in text are matched literally.
func (db *DB) SearchAvailableItems(ctx context.Context, text string, offset, limit int) ([]*models.Item, error) {
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	query := itemSelect + ` WHERE i.available = 1
                 AND (lower(i.name) LIKE ? ESCAPE '\' OR lower(i.description) LIKE ? ESCAPE '\')
               ORDER BY i.id LIMIT ? OFFSET ?`
	return db.queryItems(ctx, query, pattern, pattern, limit, offset)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = ?, description = ?, available = ?, updated_at = ? WHERE id = ?`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query, item.Name, item.Description, item.Available, now, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: item %d", domain.ErrNotFound, item.ID)
	}
	item.UpdatedAt = now
	return nil
}

// DeleteItem removes the item together with its comments and bookings.
func (db *DB) DeleteItem(ctx context.Context, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete item comments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete item bookings: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: item %d", domain.ErrNotFound, id)
	}

	return tx.Commit()
}
