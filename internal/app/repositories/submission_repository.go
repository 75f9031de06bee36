package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/dberrors"
)

// SubmissionRepository handles database operations for assignment submissions
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a submission. Returns ErrAlreadySubmitted when the
// (assignment, student) unique constraint is hit.
func (r *SubmissionRepository) Create(ctx context.Context, s *models.Submission) error {
	query := `
		INSERT INTO submissions (assignment_id, student_id, text, attachment_url, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		s.AssignmentID, s.StudentID, s.Text, s.AttachmentURL, s.Status, s.SubmittedAt,
	).Scan(&s.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadySubmitted
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAssignmentNotFound
		}
		return fmt.Errorf("error creating submission: %w", err)
	}

	return nil
}

// GetByID retrieves a submission by ID. Returns ErrSubmissionNotFound when missing.
func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := `
		SELECT id, assignment_id, student_id, text, attachment_url, marks, status, submitted_at, graded_at, graded_by
		FROM submissions
		WHERE id = $1
	`

	var s models.Submission
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.AssignmentID, &s.StudentID, &s.Text, &s.AttachmentURL,
		&s.Marks, &s.Status, &s.SubmittedAt, &s.GradedAt, &s.GradedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving submission: %w", err)
	}

	return &s, nil
}

// ListByAssignment returns submissions for an assignment with the submitting
// students attached.
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]*models.Submission, error) {
	query := `
		SELECT s.id, s.assignment_id, s.student_id, s.text, s.attachment_url, s.marks, s.status,
		       s.submitted_at, s.graded_at, s.graded_by, u.name, u.email
		FROM submissions s
		JOIN users u ON u.id = s.student_id
		WHERE s.assignment_id = $1
		ORDER BY s.submitted_at
	`

	rows, err := r.db.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		var s models.Submission
		var student models.User
		if err := rows.Scan(
			&s.ID, &s.AssignmentID, &s.StudentID, &s.Text, &s.AttachmentURL, &s.Marks, &s.Status,
			&s.SubmittedAt, &s.GradedAt, &s.GradedBy, &student.Name, &student.Email); err != nil {
			return nil, err
		}
		student.ID = s.StudentID
		s.Student = &student
		submissions = append(submissions, &s)
	}

	return submissions, rows.Err()
}

// Grade assigns marks to a submission and flips its status to graded.
func (r *SubmissionRepository) Grade(ctx context.Context, id int64, marks int, gradedBy int64, at time.Time) error {
	query := `
		UPDATE submissions
		SET marks = $1, status = $2, graded_at = $3, graded_by = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query, marks, models.SubmissionGraded, at, gradedBy, id)
	if err != nil {
		return fmt.Errorf("error grading submission: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubmissionNotFound
	}

	return nil
}
