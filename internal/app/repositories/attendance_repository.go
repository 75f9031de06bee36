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

// AttendanceExportRow is one line of the attendance CSV export.
type AttendanceExportRow struct {
	Date        time.Time
	StudentName string
	Email       string
	MarkedBy    string
	Status      models.AttendanceStatus
}

// AttendanceSummary aggregates one course day's records by status.
type AttendanceSummary struct {
	Total   int
	Present int
	Absent  int
	Late    int
	Excused int
}

// AttendanceRepository handles database operations for attendance records.
// The table carries a unique index over (course_id, student_id, date); insert
// races surface as ErrDuplicateKey for the service's retry logic.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// GetByNaturalKey looks up the record for a (course, student, day) cell.
// Returns (nil, nil) when no record exists; absence is the implicit default.
func (r *AttendanceRepository) GetByNaturalKey(ctx context.Context, courseID, studentID int64, day time.Time) (*models.Attendance, error) {
	query := `
		SELECT id, course_id, student_id, date, status, faculty_id, created_at, updated_at
		FROM attendance
		WHERE course_id = $1 AND student_id = $2 AND date = $3
	`

	var a models.Attendance
	err := r.db.QueryRow(ctx, query, courseID, studentID, day).Scan(
		&a.ID, &a.CourseID, &a.StudentID, &a.Date, &a.Status, &a.FacultyID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}

	return &a, nil
}

// Insert creates a new attendance record. Returns ErrDuplicateKey when a
// concurrent insert already created the cell.
func (r *AttendanceRepository) Insert(ctx context.Context, a *models.Attendance) error {
	query := `
		INSERT INTO attendance (course_id, student_id, date, status, faculty_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, a.CourseID, a.StudentID, a.Date, a.Status, a.FacultyID).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateKey
		}
		return fmt.Errorf("error inserting attendance record: %w", err)
	}

	return nil
}

// UpdateStatus overwrites an existing record's status and marking faculty.
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id int64, status models.AttendanceStatus, facultyID int64) error {
	query := `
		UPDATE attendance
		SET status = $1, faculty_id = $2, updated_at = NOW()
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, status, facultyID, id)
	if err != nil {
		return fmt.Errorf("error updating attendance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// List retrieves attendance records filtered by course and optionally day and
// student, with the student and marker attached.
func (r *AttendanceRepository) List(ctx context.Context, courseID int64, day *time.Time, studentID *int64) ([]*models.Attendance, error) {
	query := `
		SELECT a.id, a.course_id, a.student_id, a.date, a.status, a.faculty_id, a.created_at, a.updated_at,
		       s.name, s.email, f.name
		FROM attendance a
		JOIN users s ON s.id = a.student_id
		JOIN users f ON f.id = a.faculty_id
		WHERE a.course_id = $1
		  AND ($2::date IS NULL OR a.date = $2)
		  AND ($3::bigint IS NULL OR a.student_id = $3)
		ORDER BY a.date DESC, s.name
	`

	rows, err := r.db.Query(ctx, query, courseID, day, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		var a models.Attendance
		var student, faculty models.User
		if err := rows.Scan(
			&a.ID, &a.CourseID, &a.StudentID, &a.Date, &a.Status, &a.FacultyID, &a.CreatedAt, &a.UpdatedAt,
			&student.Name, &student.Email, &faculty.Name); err != nil {
			return nil, err
		}
		student.ID = a.StudentID
		faculty.ID = a.FacultyID
		a.Student = &student
		a.Faculty = &faculty
		records = append(records, &a)
	}

	return records, rows.Err()
}

// ListByStudent returns a student's own attendance records across courses.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Attendance, error) {
	query := `
		SELECT a.id, a.course_id, a.student_id, a.date, a.status, a.faculty_id, a.created_at, a.updated_at
		FROM attendance a
		WHERE a.student_id = $1
		ORDER BY a.date DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.ID, &a.CourseID, &a.StudentID, &a.Date, &a.Status, &a.FacultyID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, &a)
	}

	return records, rows.Err()
}

// Summary aggregates one course day's records by status.
func (r *AttendanceRepository) Summary(ctx context.Context, courseID int64, day time.Time) (*AttendanceSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*) FILTER (WHERE status = 'excused')
		FROM attendance
		WHERE course_id = $1 AND date = $2
	`

	var s AttendanceSummary
	err := r.db.QueryRow(ctx, query, courseID, day).Scan(&s.Total, &s.Present, &s.Absent, &s.Late, &s.Excused)
	if err != nil {
		return nil, fmt.Errorf("error computing attendance summary: %w", err)
	}

	return &s, nil
}

// ExportRows returns the joined rows for the CSV export, oldest first.
func (r *AttendanceRepository) ExportRows(ctx context.Context, courseID int64, from, to *time.Time) ([]*AttendanceExportRow, error) {
	query := `
		SELECT a.date, s.name, s.email, f.name, a.status
		FROM attendance a
		JOIN users s ON s.id = a.student_id
		JOIN users f ON f.id = a.faculty_id
		WHERE a.course_id = $1
		  AND ($2::date IS NULL OR a.date >= $2)
		  AND ($3::date IS NULL OR a.date <= $3)
		ORDER BY a.date, s.name
	`

	rows, err := r.db.Query(ctx, query, courseID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*AttendanceExportRow
	for rows.Next() {
		var row AttendanceExportRow
		if err := rows.Scan(&row.Date, &row.StudentName, &row.Email, &row.MarkedBy, &row.Status); err != nil {
			return nil, err
		}
		out = append(out, &row)
	}

	return out, rows.Err()
}
