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

// CourseRepository handles database operations for courses, their membership
// tables and attached resources.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a new course. Returns ErrCourseCodeExists when the unique
// code constraint is hit.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, course.Code, course.Name, course.Description).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseCodeExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID. Returns ErrCourseNotFound when missing.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, code, name, description, created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID, &course.Code, &course.Name, &course.Description, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves courses with pagination.
func (r *CourseRepository) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	query := `
		SELECT id, code, name, description, created_at, updated_at
		FROM courses
		ORDER BY code
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Code, &course.Name, &course.Description, &course.CreatedAt, &course.UpdatedAt); err != nil {
			return nil, 0, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// Update updates an existing course's mutable fields.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, course.Name, course.Description, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID. Membership rows, assignments and attendance
// cascade in the schema.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// AddFaculty attaches a faculty member to a course. A duplicate attach is a no-op.
func (r *CourseRepository) AddFaculty(ctx context.Context, courseID, userID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO course_faculty (course_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, courseID, userID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error adding faculty to course: %w", err)
	}
	return nil
}

// AddStudent enrolls a student in a course. A duplicate enroll is a no-op.
func (r *CourseRepository) AddStudent(ctx context.Context, courseID, userID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO course_students (course_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, courseID, userID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error enrolling student: %w", err)
	}
	return nil
}

// RemoveStudent removes a student from a course.
func (r *CourseRepository) RemoveStudent(ctx context.Context, courseID, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM course_students WHERE course_id = $1 AND user_id = $2`, courseID, userID)
	if err != nil {
		return fmt.Errorf("error removing student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotInCourse
	}
	return nil
}

// listMembers returns the users joined through a membership table.
func (r *CourseRepository) listMembers(ctx context.Context, table string, courseID int64) ([]*models.User, error) {
	query := `
		SELECT u.` + "id, u.name, u.email, u.password, u.role_type, u.google_id, u.is_active, u.cgpa, u.degree, u.batch, u.skills, u.created_at, u.updated_at, u.last_login_at" + `
		FROM users u
		JOIN ` + table + ` m ON m.user_id = u.id
		WHERE m.course_id = $1
		ORDER BY u.name
	`

	rows, err := r.db.Query(ctx, query, courseID)
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

// ListFaculty returns the faculty members of a course.
func (r *CourseRepository) ListFaculty(ctx context.Context, courseID int64) ([]*models.User, error) {
	return r.listMembers(ctx, "course_faculty", courseID)
}

// ListStudents returns the students enrolled in a course.
func (r *CourseRepository) ListStudents(ctx context.Context, courseID int64) ([]*models.User, error) {
	return r.listMembers(ctx, "course_students", courseID)
}

// IsFaculty reports whether the user teaches the course.
func (r *CourseRepository) IsFaculty(ctx context.Context, courseID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_faculty WHERE course_id = $1 AND user_id = $2)`,
		courseID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course faculty: %w", err)
	}
	return exists, nil
}

// IsStudent reports whether the user is enrolled in the course.
func (r *CourseRepository) IsStudent(ctx context.Context, courseID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_students WHERE course_id = $1 AND user_id = $2)`,
		courseID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course enrollment: %w", err)
	}
	return exists, nil
}

// ListByFaculty returns courses taught by the given user.
func (r *CourseRepository) ListByFaculty(ctx context.Context, userID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.code, c.name, c.description, c.created_at, c.updated_at
		FROM courses c
		JOIN course_faculty f ON f.course_id = c.id
		WHERE f.user_id = $1
		ORDER BY c.code
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Code, &course.Name, &course.Description, &course.CreatedAt, &course.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	return courses, rows.Err()
}

// AddResource attaches a resource to a course.
func (r *CourseRepository) AddResource(ctx context.Context, res *models.CourseResource) error {
	query := `
		INSERT INTO course_resources (course_id, title, url, added_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, res.CourseID, res.Title, res.URL, res.AddedBy).
		Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error adding resource: %w", err)
	}
	return nil
}

// ListResources returns the resources attached to a course.
func (r *CourseRepository) ListResources(ctx context.Context, courseID int64) ([]*models.CourseResource, error) {
	query := `
		SELECT id, course_id, title, url, added_by, created_at
		FROM course_resources
		WHERE course_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []*models.CourseResource
	for rows.Next() {
		var res models.CourseResource
		if err := rows.Scan(&res.ID, &res.CourseID, &res.Title, &res.URL, &res.AddedBy, &res.CreatedAt); err != nil {
			return nil, err
		}
		resources = append(resources, &res)
	}

	return resources, rows.Err()
}
