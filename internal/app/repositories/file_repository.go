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

// FileRepository handles database operations for uploaded file records
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// Create records an uploaded file
func (r *FileRepository) Create(ctx context.Context, f *models.UploadedFile) error {
	query := `
		INSERT INTO uploaded_files (file_name, file_url, file_size, file_type, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		f.FileName, f.FileURL, f.FileSize, f.FileType, f.UploadedBy,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording uploaded file: %w", err)
	}

	return nil
}

// GetByID retrieves an uploaded file record by ID
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.UploadedFile, error) {
	var f models.UploadedFile
	err := r.db.QueryRow(ctx, `
		SELECT id, file_name, file_url, file_size, file_type, uploaded_by, created_at
		FROM uploaded_files
		WHERE id = $1`, id).Scan(
		&f.ID, &f.FileName, &f.FileURL, &f.FileSize, &f.FileType, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving uploaded file: %w", err)
	}

	return &f, nil
}

// Delete removes an uploaded file record
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM uploaded_files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting uploaded file: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
