package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AjayLohith/admin-access/internal/models"
	"go.uber.org/zap"
)

// ErrItemNotFound is returned when no item matches the lookup
var ErrItemNotFound = errors.New("item not found")

// ItemFilter narrows item queries. A nil OwnerID means no ownership
// restriction (admin scope); a non-nil OwnerID restricts results to that
// owner's records.
type ItemFilter struct {
	OwnerID *int
	Search  string
	Page    int
	Count   int
}

// itemRepository implements item data access over MySQL
type itemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sql.DB, logger *zap.Logger) *itemRepository {
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new item owned by item.UserID
func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (title, description, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, item.Title, item.Description, item.UserID, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create item", zap.Error(err))
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	item.ID = int(id)
	return nil
}

// GetByID retrieves an item together with its owner's name and email
func (r *itemRepository) GetByID(ctx context.Context, itemID int) (*models.Item, error) {
	query := `
		SELECT i.id, i.title, i.description, i.user_id, u.name, u.email, i.created_at, i.updated_at
		FROM items i
		JOIN users u ON u.id = i.user_id
		WHERE i.id = ?
		LIMIT 1
	`

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.UserID,
		&item.UserName,
		&item.UserEmail,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		r.logger.Error("failed to get item by id", zap.Error(err), zap.Int("itemID", itemID))
		return nil, fmt.Errorf("failed to get item by id: %w", err)
	}

	return item, nil
}

// GetAll retrieves a page of items matching the filter, newest first
func (r *itemRepository) GetAll(ctx context.Context, filter ItemFilter) ([]models.Item, error) {
	query := `
		SELECT i.id, i.title, i.description, i.user_id, u.name, u.email, i.created_at, i.updated_at
		FROM items i
		JOIN users u ON u.id = i.user_id
	`
	where, args := buildItemWhere(filter)
	query += where
	query += ` ORDER BY i.created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Count, (filter.Page-1)*filter.Count)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to get items", zap.Error(err))
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.UserID,
			&item.UserName,
			&item.UserEmail,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			r.logger.Error("failed to scan item row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}

	return items, nil
}

// Count returns the number of items matching the filter, ignoring paging
func (r *itemRepository) Count(ctx context.Context, filter ItemFilter) (int, error) {
	query := `SELECT COUNT(*) FROM items i`
	where, args := buildItemWhere(filter)
	query += where

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		r.logger.Error("failed to count items", zap.Error(err))
		return 0, fmt.Errorf("failed to count items: %w", err)
	}

	return total, nil
}

// Update updates an item's title and description
func (r *itemRepository) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items
		SET title = ?, description = ?, updated_at = ?
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, item.Title, item.Description, item.UpdatedAt, item.ID); err != nil {
		r.logger.Error("failed to update item", zap.Error(err), zap.Int("itemID", item.ID))
		return fmt.Errorf("failed to update item: %w", err)
	}

	return nil
}

// Delete deletes an item by ID
func (r *itemRepository) Delete(ctx context.Context, itemID int) error {
	query := `DELETE FROM items WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, itemID)
	if err != nil {
		r.logger.Error("failed to delete item", zap.Error(err), zap.Int("itemID", itemID))
		return fmt.Errorf("failed to delete item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// buildItemWhere builds the WHERE clause shared by GetAll and Count
func buildItemWhere(filter ItemFilter) (string, []any) {
	where := ""
	args := []any{}

	if filter.OwnerID != nil {
		where += ` WHERE i.user_id = ?`
		args = append(args, *filter.OwnerID)
	}

	if filter.Search != "" {
		if where == "" {
			where += ` WHERE`
		} else {
			where += ` AND`
		}
		where += ` (i.title LIKE ? OR i.description LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	return where, args
}
