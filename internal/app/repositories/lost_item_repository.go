package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
)

const lostItemColumns = `id, owner_id, title, description, category, location, status, image_url, created_at, updated_at`

// LostItemRepository handles database operations for lost and found items
type LostItemRepository struct {
	db *pgxpool.Pool
}

// NewLostItemRepository creates a new lost item repository
func NewLostItemRepository(db *pgxpool.Pool) *LostItemRepository {
	return &LostItemRepository{db: db}
}

func scanLostItem(row pgx.Row) (*models.LostItem, error) {
	var item models.LostItem
	err := row.Scan(
		&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.Category,
		&item.Location, &item.Status, &item.ImageURL,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new lost item report
func (r *LostItemRepository) Create(ctx context.Context, item *models.LostItem) error {
	query := `
		INSERT INTO lost_items (owner_id, title, description, category, location, status, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		item.OwnerID, item.Title, item.Description, item.Category,
		item.Location, item.Status, item.ImageURL,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating lost item: %w", err)
	}

	return nil
}

// GetByID retrieves a lost item by ID. Returns ErrLostItemNotFound when missing.
func (r *LostItemRepository) GetByID(ctx context.Context, id int64) (*models.LostItem, error) {
	item, err := scanLostItem(r.db.QueryRow(ctx,
		`SELECT `+lostItemColumns+` FROM lost_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLostItemNotFound
		}
		return nil, fmt.Errorf("error retrieving lost item: %w", err)
	}
	return item, nil
}

// GetAll retrieves lost items, optionally filtered by status and category,
// newest first, with the total count for pagination.
func (r *LostItemRepository) GetAll(ctx context.Context, status *models.LostItemStatus, category *string, offset, limit int) ([]*models.LostItem, int64, error) {
	query := `
		SELECT ` + lostItemColumns + `
		FROM lost_items
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR category = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, status, category, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*models.LostItem
	for rows.Next() {
		item, err := scanLostItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM lost_items
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR category = $2)`,
		status, category).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Update applies the given item state to the stored row
func (r *LostItemRepository) Update(ctx context.Context, item *models.LostItem) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE lost_items
		SET title = $1, description = $2, category = $3, location = $4,
		    status = $5, image_url = $6, updated_at = NOW()
		WHERE id = $7`,
		item.Title, item.Description, item.Category, item.Location,
		item.Status, item.ImageURL, item.ID)
	if err != nil {
		return fmt.Errorf("error updating lost item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLostItemNotFound
	}

	return nil
}

// Delete removes a lost item report
func (r *LostItemRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM lost_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting lost item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLostItemNotFound
	}

	return nil
}
