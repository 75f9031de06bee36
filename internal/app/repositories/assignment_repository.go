package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/dberrors"
)

// AssignmentRepository handles database operations for assignments
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, a *models.Assignment) error {
	query := `
		INSERT INTO assignments (course_id, title, description, due_date, points, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.CourseID, a.Title, a.Description, a.DueDate, a.Points, a.CreatedBy,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating assignment: %w", err)
	}

	return nil
}

// GetByID retrieves an assignment by ID. Returns ErrAssignmentNotFound when missing.
func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := `
		SELECT id, course_id, title, description, due_date, points, created_by, created_at, updated_at
		FROM assignments
		WHERE id = $1
	`

	var a models.Assignment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.CourseID, &a.Title, &a.Description, &a.DueDate, &a.Points, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}

	return &a, nil
}

// GetAll retrieves assignments, optionally filtered by course, with pagination.
func (r *AssignmentRepository) GetAll(ctx context.Context, courseID *int64, offset uint64, limit int) ([]*models.Assignment, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM assignments WHERE ($1::bigint IS NULL OR course_id = $1)`
	if err := r.db.QueryRow(ctx, countQuery, courseID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting assignments: %w", err)
	}

	query := `
		SELECT id, course_id, title, description, due_date, points, created_by, created_at, updated_at
		FROM assignments
		WHERE ($1::bigint IS NULL OR course_id = $1)
		ORDER BY due_date
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, courseID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ID, &a.CourseID, &a.Title, &a.Description, &a.DueDate, &a.Points, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		assignments = append(assignments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

// ListByCourse returns all assignments of a course.
func (r *AssignmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Assignment, error) {
	assignments, _, err := r.GetAll(ctx, &courseID, 0, 1000)
	return assignments, err
}

// Update persists changes to an assignment.
func (r *AssignmentRepository) Update(ctx context.Context, a *models.Assignment) error {
	query := `
		UPDATE assignments
		SET title = $1, description = $2, due_date = $3, points = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query, a.Title, a.Description, a.DueDate, a.Points, a.ID)
	if err != nil {
		return fmt.Errorf("error updating assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// Delete removes an assignment by ID.
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}
