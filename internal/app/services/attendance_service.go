package services

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"time"

	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/helpers"
	"github.com/kaanaktas/campushub/internal/pkg/logger"
)

// Attendance mark outcomes
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeFailed  = "failed"
)

// AttendanceStore is the persistence surface the attendance service needs.
// *repositories.AttendanceRepository satisfies it.
type AttendanceStore interface {
	GetByNaturalKey(ctx context.Context, courseID, studentID int64, day time.Time) (*models.Attendance, error)
	Insert(ctx context.Context, a *models.Attendance) error
	UpdateStatus(ctx context.Context, id int64, status models.AttendanceStatus, facultyID int64) error
	List(ctx context.Context, courseID int64, day *time.Time, studentID *int64) ([]*models.Attendance, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Attendance, error)
	Summary(ctx context.Context, courseID int64, day time.Time) (*repositories.AttendanceSummary, error)
	ExportRows(ctx context.Context, courseID int64, from, to *time.Time) ([]*repositories.AttendanceExportRow, error)
}

// CourseMembershipStore answers course membership questions.
// *repositories.CourseRepository satisfies it.
type CourseMembershipStore interface {
	IsFaculty(ctx context.Context, courseID, userID int64) (bool, error)
	IsStudent(ctx context.Context, courseID, userID int64) (bool, error)
}

// AttendanceService handles marking and querying attendance. Records are
// unique per (course, student, day); marking the same cell again updates the
// status in place instead of creating a second record.
type AttendanceService struct {
	attendance AttendanceStore
	courses    CourseMembershipStore
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendance AttendanceStore, courses CourseMembershipStore) *AttendanceService {
	return &AttendanceService{attendance: attendance, courses: courses}
}

// MarkBatch records attendance for a set of students on one course day.
// Each student is processed independently: one bad record fails that student's
// entry without aborting the rest. The response carries per-student outcomes
// plus aggregate created/updated/failed counts.
func (s *AttendanceService) MarkBatch(ctx context.Context, actor *models.User, req *dto.MarkAttendanceRequest) (*dto.MarkAttendanceResponse, error) {
	if actor.RoleType != models.RoleAdmin {
		teaches, err := s.courses.IsFaculty(ctx, req.CourseID, actor.ID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrNotCourseFaculty
		}
	}

	day := helpers.NormalizeDay(req.Date)

	resp := &dto.MarkAttendanceResponse{
		Date:     day,
		CourseID: req.CourseID,
		Results:  make([]dto.AttendanceOutcome, 0, len(req.Records)),
	}

	for _, record := range req.Records {
		outcome, err := s.markOne(ctx, req.CourseID, record.StudentID, day, models.AttendanceStatus(record.Status), actor.ID)
		if err != nil {
			logger.Warn().Err(err).
				Int64("courseId", req.CourseID).
				Int64("studentId", record.StudentID).
				Time("date", day).
				Msg("Failed to mark attendance")
			resp.Results = append(resp.Results, dto.AttendanceOutcome{
				StudentID: record.StudentID,
				Outcome:   OutcomeFailed,
				Error:     err.Error(),
			})
			resp.Failed++
			continue
		}

		resp.Results = append(resp.Results, dto.AttendanceOutcome{
			StudentID: record.StudentID,
			Outcome:   outcome,
		})
		if outcome == OutcomeCreated {
			resp.Created++
		} else {
			resp.Updated++
		}
	}

	return resp, nil
}

// markOne upserts a single attendance cell. The lookup-then-insert pair can
// race a concurrent marker; when the insert hits the unique index the lookup
// is retried exactly once, which then finds the winner's row and updates it.
func (s *AttendanceService) markOne(ctx context.Context, courseID, studentID int64, day time.Time, status models.AttendanceStatus, facultyID int64) (string, error) {
	if !models.ValidAttendanceStatus(status) {
		return "", apperrors.NewBadRequestError("unknown attendance status: " + string(status))
	}

	enrolled, err := s.courses.IsStudent(ctx, courseID, studentID)
	if err != nil {
		return "", err
	}
	if !enrolled {
		return "", apperrors.ErrStudentNotInCourse
	}

	for attempt := 0; attempt < 2; attempt++ {
		existing, err := s.attendance.GetByNaturalKey(ctx, courseID, studentID, day)
		if err != nil {
			return "", err
		}

		if existing != nil {
			if err := s.attendance.UpdateStatus(ctx, existing.ID, status, facultyID); err != nil {
				return "", err
			}
			return OutcomeUpdated, nil
		}

		err = s.attendance.Insert(ctx, &models.Attendance{
			CourseID:  courseID,
			StudentID: studentID,
			Date:      day,
			Status:    status,
			FacultyID: facultyID,
		})
		if err == nil {
			return OutcomeCreated, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicateKey) {
			return "", err
		}
		// Lost an insert race; the next lookup finds the winner's row.
	}

	return "", apperrors.ErrDuplicateKey
}

// List returns a course's attendance records, optionally narrowed to one day
// or one student. Dates are normalized to the day they fall in.
func (s *AttendanceService) List(ctx context.Context, courseID int64, date *time.Time, studentID *int64) ([]*models.Attendance, error) {
	var day *time.Time
	if date != nil {
		d := helpers.NormalizeDay(*date)
		day = &d
	}
	return s.attendance.List(ctx, courseID, day, studentID)
}

// ListByStudent returns a student's attendance history across courses.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID int64) ([]*models.Attendance, error) {
	return s.attendance.ListByStudent(ctx, studentID)
}

// Summary aggregates one course day by status. Percentage is present records
// over total; an empty day yields zero, not a division error.
func (s *AttendanceService) Summary(ctx context.Context, courseID int64, date time.Time) (*dto.AttendanceSummaryResponse, error) {
	sum, err := s.attendance.Summary(ctx, courseID, helpers.NormalizeDay(date))
	if err != nil {
		return nil, err
	}

	resp := &dto.AttendanceSummaryResponse{
		Total:   sum.Total,
		Present: sum.Present,
		Absent:  sum.Absent,
		Late:    sum.Late,
		Excused: sum.Excused,
	}
	if sum.Total > 0 {
		resp.Percentage = float64(sum.Present) / float64(sum.Total) * 100
	}
	return resp, nil
}

// WriteExportCSV streams a course's attendance as CSV for the given date
// range. Nil bounds leave that end of the range open.
func (s *AttendanceService) WriteExportCSV(ctx context.Context, w io.Writer, req *dto.AttendanceExportRequest) error {
	var from, to *time.Time
	if req.From != nil {
		d := helpers.NormalizeDay(*req.From)
		from = &d
	}
	if req.To != nil {
		d := helpers.NormalizeDay(*req.To)
		to = &d
	}

	rows, err := s.attendance.ExportRows(ctx, req.CourseID, from, to)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Student Name", "Email", "Marked By", "Status"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Date.Format("2006-01-02"),
			row.StudentName,
			row.Email,
			row.MarkedBy,
			string(row.Status),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
