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

const userColumns = `id, name, email, password, role_type, google_id, is_active, cgpa, degree, batch, skills, created_at, updated_at, last_login_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.RoleType,
		&u.GoogleID,
		&u.IsActive,
		&u.CGPA,
		&u.Degree,
		&u.Batch,
		&u.Skills,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. Returns ErrEmailAlreadyExists on a duplicate email.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password, role_type, google_id, is_active, cgpa, degree, batch, skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.Password, user.RoleType, user.GoogleID,
		user.IsActive, user.CGPA, user.Degree, user.Batch, user.Skills,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID. Returns ErrUserNotFound when missing.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email. Returns ErrUserNotFound when missing.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return user, nil
}

// GetAll retrieves users, optionally filtered by role, with pagination.
func (r *UserRepository) GetAll(ctx context.Context, role *models.RoleType, offset uint64, limit int) ([]*models.User, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM users WHERE ($1::text IS NULL OR role_type = $1)`
	if err := r.db.QueryRow(ctx, countQuery, role).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1::text IS NULL OR role_type = $1)
		ORDER BY id
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, role, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ListStudentsMatching returns active students matching a job eligibility
// filter, used for the posting broadcast fan-out.
func (r *UserRepository) ListStudentsMatching(ctx context.Context, e models.JobEligibility) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role_type = $1
		  AND is_active
		  AND ($2::numeric IS NULL OR cgpa >= $2)
		  AND (cardinality($3::text[]) = 0 OR degree = ANY($3))
		  AND (cardinality($4::text[]) = 0 OR batch = ANY($4))
	`

	degrees := e.Degrees
	if degrees == nil {
		degrees = []string{}
	}
	batches := e.Batches
	if batches == nil {
		batches = []string{}
	}

	rows, err := r.db.Query(ctx, query, models.RoleStudent, e.MinCGPA, degrees, batches)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Update persists profile changes for an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1, role_type = $2, is_active = $3, cgpa = $4, degree = $5, batch = $6, skills = $7, updated_at = NOW()
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		user.Name, user.RoleType, user.IsActive, user.CGPA, user.Degree, user.Batch, user.Skills, user.ID)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// RecordLogin stamps the last login time.
func (r *UserRepository) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
	return err
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
