package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
)

// fakeAttendanceStore keeps attendance rows in memory keyed by the natural
// key, enforcing the same uniqueness the database index does.
type fakeAttendanceStore struct {
	rows   map[string]*models.Attendance
	nextID int64

	insertErrs []error // popped per Insert call before the real behavior
	inserts    int
	updates    int
	lookups    int
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{rows: make(map[string]*models.Attendance), nextID: 1}
}

func naturalKey(courseID, studentID int64, day time.Time) string {
	return fmt.Sprintf("%d/%d/%s", courseID, studentID, day.Format("2006-01-02"))
}

func (f *fakeAttendanceStore) GetByNaturalKey(_ context.Context, courseID, studentID int64, day time.Time) (*models.Attendance, error) {
	f.lookups++
	if a, ok := f.rows[naturalKey(courseID, studentID, day)]; ok {
		return a, nil
	}
	return nil, nil
}

func (f *fakeAttendanceStore) Insert(_ context.Context, a *models.Attendance) error {
	f.inserts++
	if len(f.insertErrs) > 0 {
		err := f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
		if err != nil {
			return err
		}
	}
	key := naturalKey(a.CourseID, a.StudentID, a.Date)
	if _, ok := f.rows[key]; ok {
		return apperrors.ErrDuplicateKey
	}
	a.ID = f.nextID
	f.nextID++
	f.rows[key] = a
	return nil
}

func (f *fakeAttendanceStore) UpdateStatus(_ context.Context, id int64, status models.AttendanceStatus, facultyID int64) error {
	f.updates++
	for _, a := range f.rows {
		if a.ID == id {
			a.Status = status
			a.FacultyID = facultyID
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func (f *fakeAttendanceStore) List(_ context.Context, courseID int64, day *time.Time, studentID *int64) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, a := range f.rows {
		if a.CourseID != courseID {
			continue
		}
		if day != nil && !a.Date.Equal(*day) {
			continue
		}
		if studentID != nil && a.StudentID != *studentID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAttendanceStore) ListByStudent(_ context.Context, studentID int64) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, a := range f.rows {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) Summary(_ context.Context, courseID int64, day time.Time) (*repositories.AttendanceSummary, error) {
	sum := &repositories.AttendanceSummary{}
	for _, a := range f.rows {
		if a.CourseID != courseID || !a.Date.Equal(day) {
			continue
		}
		sum.Total++
		switch a.Status {
		case models.AttendancePresent:
			sum.Present++
		case models.AttendanceAbsent:
			sum.Absent++
		case models.AttendanceLate:
			sum.Late++
		case models.AttendanceExcused:
			sum.Excused++
		}
	}
	return sum, nil
}

func (f *fakeAttendanceStore) ExportRows(_ context.Context, courseID int64, from, to *time.Time) ([]*repositories.AttendanceExportRow, error) {
	var out []*repositories.AttendanceExportRow
	for _, a := range f.rows {
		if a.CourseID != courseID {
			continue
		}
		if from != nil && a.Date.Before(*from) {
			continue
		}
		if to != nil && a.Date.After(*to) {
			continue
		}
		out = append(out, &repositories.AttendanceExportRow{
			Date:        a.Date,
			StudentName: fmt.Sprintf("Student %d", a.StudentID),
			Email:       fmt.Sprintf("s%d@campus.edu", a.StudentID),
			MarkedBy:    "Prof. Rao",
			Status:      a.Status,
		})
	}
	return out, nil
}

// fakeMembership answers course membership from fixed sets.
type fakeMembership struct {
	faculty  map[int64]bool
	students map[int64]bool
}

func (f *fakeMembership) IsFaculty(_ context.Context, _ int64, userID int64) (bool, error) {
	return f.faculty[userID], nil
}

func (f *fakeMembership) IsStudent(_ context.Context, _ int64, userID int64) (bool, error) {
	return f.students[userID], nil
}

func newAttendanceFixture() (*AttendanceService, *fakeAttendanceStore, *fakeMembership) {
	store := newFakeAttendanceStore()
	membership := &fakeMembership{
		faculty:  map[int64]bool{10: true},
		students: map[int64]bool{1: true, 2: true, 3: true},
	}
	return NewAttendanceService(store, membership), store, membership
}

func facultyActor() *models.User {
	return &models.User{ID: 10, Name: "Prof. Rao", RoleType: models.RoleFaculty}
}

func TestMarkBatchCreatesThenUpdates(t *testing.T) {
	svc, store, _ := newAttendanceFixture()
	day := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	resp, err := svc.MarkBatch(context.Background(), facultyActor(), &dto.MarkAttendanceRequest{
		CourseID: 7,
		Date:     day,
		Records:  []dto.MarkAttendanceRecord{{StudentID: 1, Status: "present"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 0, resp.Updated)
	assert.Equal(t, "created", resp.Results[0].Outcome)

	// Re-marking the same student on the same day updates in place.
	resp, err = svc.MarkBatch(context.Background(), facultyActor(), &dto.MarkAttendanceRequest{
		CourseID: 7,
		Date:     day,
		Records:  []dto.MarkAttendanceRecord{{StudentID: 1, Status: "absent"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 1, resp.Updated)
	assert.Len(t, store.rows, 1)

	records, err := svc.List(context.Background(), 7, &day, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendanceAbsent, records[0].Status)
}

func TestMarkBatchNormalizesTimestampsToOneDay(t *testing.T) {
	svc, store, _ := newAttendanceFixture()

	morning := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	night := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)

	_, err := svc.MarkBatch(context.Background(), facultyActor(), &dto.MarkAttendanceRequest{
		CourseID: 7,
		Date:     morning,
		Records:  []dto.MarkAttendanceRecord{{StudentID: 1, Status: "present"}},
	})
	require.NoError(t, err)

	resp, err := svc.MarkBatch(context.Background(), facultyActor(), &dto.MarkAttendanceRequest{
		CourseID: 7,
		Date:     night,
		Records:  []dto.MarkAttendanceRecord{{StudentID: 1, Status: "late"}},
	})
	require.NoError(t, err)

	// Different clock times on the same day hit the same record.
	assert.Equal(t, 1, resp.Updated)
	assert.Len(t, store.rows, 1)
}

func TestMarkBatchRetriesLostInsertRaceOnce(t *testing.T) {
	svc, store, _ := newAttendanceFixture()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// First insert loses a race and reports a duplicate.
	store.insertErrs = []error{apperrors.ErrDuplicateKey}

	resp, err := svc.MarkBatch(context.Background(), facultyActor(), &dto.MarkAttendanceRequest{
		CourseID: 7,
		Date:     day,
		Records:  []dto.MarkAttendanceRecord{{StudentID: 1, Status: "absent"}},
	})
	require.NoError(t, err)

	// Attempt one: lookup misses, insert reports duplicate. Attempt two:
	// lookup misses again, insert succeeds. Exactly two inserts, no more.
	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 2, store.inserts)
	assert.Len(t, store.rows, 1)
}

func TestMarkBatchGivesUpAfterSecondDuplicate(t *testing.T) {
	svc, store, _ := newAttendanceFixture()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	store.insertErrs = []error{apperrors.ErrDuplicateKey, apperrors.ErrDuplicateKey}

	resp, err := svc.MarkBatch(context.Background(), facultyActor(), &dto.MarkAttendanceRequest{
		CourseID: 7,
		Date:     day,
		Records:  []dto.MarkAttendanceRecord{{StudentID: 1, Status: "present"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 2, store.inserts)
	assert.Contains(t, resp.Results[0].Error, "duplicate")
}

func TestMarkBatchIsolatesPerStudentFailures(t *testing.T) {
	svc, _, _ := newAttendanceFixture()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	resp, err := svc.MarkBatch(context.Background(), facultyActor(), &dto.MarkAttendanceRequest{
		CourseID: 7,
		Date:     day,
		Records: []dto.MarkAttendanceRecord{
			{StudentID: 1, Status: "present"},
			{StudentID: 50, Status: "present"}, // not enrolled
			{StudentID: 2, Status: "late"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "failed", resp.Results[1].Outcome)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.Equal(t, "created", resp.Results[2].Outcome)
}

func TestMarkBatchRejectsNonFaculty(t *testing.T) {
	svc, _, _ := newAttendanceFixture()

	outsider := &models.User{ID: 99, RoleType: models.RoleFaculty}
	_, err := svc.MarkBatch(context.Background(), outsider, &dto.MarkAttendanceRequest{
		CourseID: 7,
		Date:     time.Now(),
		Records:  []dto.MarkAttendanceRecord{{StudentID: 1, Status: "present"}},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotCourseFaculty)
}

func TestMarkBatchAllowsAdminWithoutMembership(t *testing.T) {
	svc, _, _ := newAttendanceFixture()

	admin := &models.User{ID: 99, RoleType: models.RoleAdmin}
	resp, err := svc.MarkBatch(context.Background(), admin, &dto.MarkAttendanceRequest{
		CourseID: 7,
		Date:     time.Now(),
		Records:  []dto.MarkAttendanceRecord{{StudentID: 1, Status: "present"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
}

func TestSummarySingleLateStudent(t *testing.T) {
	svc, _, _ := newAttendanceFixture()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := svc.MarkBatch(context.Background(), facultyActor(), &dto.MarkAttendanceRequest{
		CourseID: 7,
		Date:     day,
		Records:  []dto.MarkAttendanceRecord{{StudentID: 1, Status: "late"}},
	})
	require.NoError(t, err)

	sum, err := svc.Summary(context.Background(), 7, day)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, 1, sum.Late)
	assert.Equal(t, 0, sum.Present)
	assert.Equal(t, float64(0), sum.Percentage)
}

func TestSummaryEmptyDay(t *testing.T) {
	svc, _, _ := newAttendanceFixture()

	sum, err := svc.Summary(context.Background(), 7, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Total)
	assert.Equal(t, float64(0), sum.Percentage)
}

func TestWriteExportCSVHeadersAndRows(t *testing.T) {
	svc, _, _ := newAttendanceFixture()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := svc.MarkBatch(context.Background(), facultyActor(), &dto.MarkAttendanceRequest{
		CourseID: 7,
		Date:     day,
		Records:  []dto.MarkAttendanceRecord{{StudentID: 1, Status: "present"}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = svc.WriteExportCSV(context.Background(), &buf, &dto.AttendanceExportRequest{CourseID: 7})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Student Name,Email,Marked By,Status", lines[0])
	assert.Contains(t, lines[1], "2026-03-02")
	assert.Contains(t, lines[1], "present")
}
