package database

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/models"
)

const requestColumns = `id, description, requester_id, created_at`

func (db *DB) CreateRequest(ctx context.Context, req *models.ItemRequest) error {
	query := `INSERT INTO item_requests (description, requester_id, created_at) VALUES (?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query, req.Description, req.RequesterID, now)
	if err != nil {
		return fmt.Errorf("failed to create item request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	req.ID = id
	req.Created = now
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	var r models.ItemRequest
	query := `SELECT ` + requestColumns + ` FROM item_requests WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Description, &r.RequesterID, &r.Created)
	if err != nil {
		return nil, notFound(err, "item request", id)
	}
	return &r, nil
}

func (db *DB) GetRequestsByRequester(ctx context.Context, userID int64) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM item_requests
              WHERE requester_id = ? ORDER BY created_at DESC, id DESC`
	return db.queryRequests(ctx, query, userID)
}

// GetRequestsExcept pages through requests made by anyone but userID, newest first.
func (db *DB) GetRequestsExcept(ctx context.Context, userID int64, offset, limit int) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM item_requests
              WHERE requester_id <> ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	return db.queryRequests(ctx, query, userID, limit, offset)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]*models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query item requests: %w", err)
	}
	defer rows.Close()

	reqs := []*models.ItemRequest{}
	for rows.Next() {
		var r models.ItemRequest
		if err := rows.Scan(&r.ID, &r.Description, &r.RequesterID, &r.Created); err != nil {
			return nil, fmt.Errorf("failed to scan item request: %w", err)
		}
		reqs = append(reqs, &r)
	}
	return reqs, rows.Err()
}
