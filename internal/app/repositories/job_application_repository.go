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

// JobApplicationExportRow is one line of the applications CSV export.
type JobApplicationExportRow struct {
	StudentName string
	Email       string
	CGPA        *float64
	Degree      *string
	Batch       *string
	Status      models.ApplicationStatus
	AppliedAt   time.Time
}

// JobApplicationRepository handles database operations for job applications
type JobApplicationRepository struct {
	db *pgxpool.Pool
}

// NewJobApplicationRepository creates a new job application repository
func NewJobApplicationRepository(db *pgxpool.Pool) *JobApplicationRepository {
	return &JobApplicationRepository{db: db}
}

// Create inserts an application. Returns ErrAlreadyApplied when the
// (job, student) unique constraint is hit.
func (r *JobApplicationRepository) Create(ctx context.Context, a *models.JobApplication) error {
	query := `
		INSERT INTO job_applications (job_id, student_id, cgpa, degree, batch, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, applied_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.JobID, a.StudentID, a.CGPA, a.Degree, a.Batch, a.Status,
	).Scan(&a.ID, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyApplied
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrJobNotFound
		}
		return fmt.Errorf("error creating job application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID. Returns ErrApplicationNotFound when missing.
func (r *JobApplicationRepository) GetByID(ctx context.Context, id int64) (*models.JobApplication, error) {
	query := `
		SELECT id, job_id, student_id, cgpa, degree, batch, status, applied_at, updated_at
		FROM job_applications
		WHERE id = $1
	`

	var a models.JobApplication
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.JobID, &a.StudentID, &a.CGPA, &a.Degree, &a.Batch, &a.Status, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving job application: %w", err)
	}

	return &a, nil
}

// Exists reports whether the student already applied to the job.
func (r *JobApplicationRepository) Exists(ctx context.Context, jobID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM job_applications WHERE job_id = $1 AND student_id = $2)`,
		jobID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking job application existence: %w", err)
	}
	return exists, nil
}

// ListByJob returns a job's applications with the applying students attached.
func (r *JobApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]*models.JobApplication, error) {
	query := `
		SELECT a.id, a.job_id, a.student_id, a.cgpa, a.degree, a.batch, a.status, a.applied_at, a.updated_at,
		       u.name, u.email
		FROM job_applications a
		JOIN users u ON u.id = a.student_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at
	`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []*models.JobApplication
	for rows.Next() {
		var a models.JobApplication
		var student models.User
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.StudentID, &a.CGPA, &a.Degree, &a.Batch, &a.Status, &a.AppliedAt, &a.UpdatedAt,
			&student.Name, &student.Email); err != nil {
			return nil, err
		}
		student.ID = a.StudentID
		a.Student = &student
		applications = append(applications, &a)
	}

	return applications, rows.Err()
}

// UpdateStatus transitions an application's status.
func (r *JobApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE job_applications SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}

// ExportRows returns the joined rows for the applications CSV export.
func (r *JobApplicationRepository) ExportRows(ctx context.Context, jobID int64) ([]*JobApplicationExportRow, error) {
	query := `
		SELECT u.name, u.email, a.cgpa, a.degree, a.batch, a.status, a.applied_at
		FROM job_applications a
		JOIN users u ON u.id = a.student_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at
	`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*JobApplicationExportRow
	for rows.Next() {
		var row JobApplicationExportRow
		if err := rows.Scan(&row.StudentName, &row.Email, &row.CGPA, &row.Degree, &row.Batch, &row.Status, &row.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, &row)
	}

	return out, rows.Err()
}
