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

// JobRepository handles database operations for job postings
type JobRepository struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job posting.
func (r *JobRepository) Create(ctx context.Context, j *models.Job) error {
	query := `
		INSERT INTO jobs (title, company, description, requirements, min_cgpa, degrees, batches,
		                  application_deadline, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		j.Title, j.Company, j.Description, j.Requirements,
		j.Eligibility.MinCGPA, j.Eligibility.Degrees, j.Eligibility.Batches,
		j.ApplicationDeadline, j.Status, j.CreatedBy,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}

	return nil
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Description, &j.Requirements,
		&j.Eligibility.MinCGPA, &j.Eligibility.Degrees, &j.Eligibility.Batches,
		&j.ApplicationDeadline, &j.Status, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

const jobColumns = `id, title, company, description, requirements, min_cgpa, degrees, batches,
	application_deadline, status, created_by, created_at, updated_at`

// GetByID retrieves a job by ID. Returns ErrJobNotFound when missing.
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}

	return job, nil
}

// GetAll retrieves jobs, optionally filtered by status, with pagination.
func (r *JobRepository) GetAll(ctx context.Context, status *models.JobStatus, offset uint64, limit int) ([]*models.Job, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs WHERE ($1::text IS NULL OR status = $1)`
	if err := r.db.QueryRow(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting jobs: %w", err)
	}

	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, status, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// Update persists changes to a job posting.
func (r *JobRepository) Update(ctx context.Context, j *models.Job) error {
	query := `
		UPDATE jobs
		SET title = $1, company = $2, description = $3, requirements = $4,
		    application_deadline = $5, status = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		j.Title, j.Company, j.Description, j.Requirements, j.ApplicationDeadline, j.Status, j.ID)
	if err != nil {
		return fmt.Errorf("error updating job: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}

	return nil
}

// Delete removes a job posting by ID.
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}

	return nil
}

// Stats returns posting counts by status and the total application count.
func (r *JobRepository) Stats(ctx context.Context) (map[string]int, int, error) {
	byStatus := make(map[string]int)

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, 0, err
		}
		byStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var totalApplications int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications`).Scan(&totalApplications); err != nil {
		return nil, 0, err
	}

	return byStatus, totalApplications, nil
}
