package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
)

type fakeJobStore struct {
	jobs   map[int64]*models.Job
	nextID int64
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[int64]*models.Job), nextID: 1}
}

func (f *fakeJobStore) Create(_ context.Context, j *models.Job) error {
	j.ID = f.nextID
	f.nextID++
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeJobStore) GetByID(_ context.Context, id int64) (*models.Job, error) {
	if j, ok := f.jobs[id]; ok {
		return j, nil
	}
	return nil, apperrors.ErrJobNotFound
}

func (f *fakeJobStore) GetAll(_ context.Context, status *models.JobStatus, _ uint64, _ int) ([]*models.Job, int64, error) {
	var out []*models.Job
	for _, j := range f.jobs {
		if status == nil || j.Status == *status {
			out = append(out, j)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeJobStore) Update(_ context.Context, j *models.Job) error {
	if _, ok := f.jobs[j.ID]; !ok {
		return apperrors.ErrJobNotFound
	}
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeJobStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.jobs[id]; !ok {
		return apperrors.ErrJobNotFound
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobStore) Stats(_ context.Context) (map[string]int, int, error) {
	byStatus := make(map[string]int)
	for _, j := range f.jobs {
		byStatus[string(j.Status)]++
	}
	return byStatus, len(f.jobs), nil
}

type fakeApplicationStore struct {
	apps   map[int64]*models.JobApplication
	nextID int64
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: make(map[int64]*models.JobApplication), nextID: 1}
}

func (f *fakeApplicationStore) Create(_ context.Context, a *models.JobApplication) error {
	for _, existing := range f.apps {
		if existing.JobID == a.JobID && existing.StudentID == a.StudentID {
			return apperrors.ErrAlreadyApplied
		}
	}
	a.ID = f.nextID
	f.nextID++
	a.AppliedAt = time.Now()
	f.apps[a.ID] = a
	return nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id int64) (*models.JobApplication, error) {
	if a, ok := f.apps[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrApplicationNotFound
}

func (f *fakeApplicationStore) ListByJob(_ context.Context, jobID int64) ([]*models.JobApplication, error) {
	var out []*models.JobApplication
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) UpdateStatus(_ context.Context, id int64, status models.ApplicationStatus) error {
	a, ok := f.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeApplicationStore) ExportRows(_ context.Context, jobID int64) ([]*repositories.JobApplicationExportRow, error) {
	var out []*repositories.JobApplicationExportRow
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, &repositories.JobApplicationExportRow{
				StudentName: "Student",
				Email:       "student@campus.edu",
				CGPA:        a.CGPA,
				Degree:      a.Degree,
				Batch:       a.Batch,
				Status:      a.Status,
				AppliedAt:   a.AppliedAt,
			})
		}
	}
	return out, nil
}

type fakeDirectory struct {
	users map[int64]*models.User
}

func (f *fakeDirectory) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeDirectory) ListStudentsMatching(_ context.Context, e models.JobEligibility) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.RoleType == models.RoleStudent && e.Matches(u.CGPA, u.Degree, u.Batch) {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeNotifier records recipients; Send is called from dispatch goroutines.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) Send(to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeNotifier) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	copy(out, f.sent)
	return out
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func newJobFixture() (*JobService, *fakeJobStore, *fakeApplicationStore, *fakeDirectory, *fakeNotifier) {
	jobs := newFakeJobStore()
	apps := newFakeApplicationStore()
	dir := &fakeDirectory{users: map[int64]*models.User{
		1: {ID: 1, Name: "Asha", Email: "asha@campus.edu", RoleType: models.RoleStudent,
			CGPA: floatPtr(8.5), Degree: strPtr("B.Tech"), Batch: strPtr("2026")},
		2: {ID: 2, Name: "Vikram", Email: "vikram@campus.edu", RoleType: models.RoleStudent,
			CGPA: floatPtr(6.0), Degree: strPtr("B.Tech"), Batch: strPtr("2026")},
		20: {ID: 20, Name: "Placement Cell", Email: "placement@campus.edu", RoleType: models.RolePlacement},
	}}
	notifier := &fakeNotifier{}
	return NewJobService(jobs, apps, dir, notifier), jobs, apps, dir, notifier
}

func openJob(t *testing.T, svc *JobService) *models.Job {
	t.Helper()
	job, err := svc.Create(context.Background(), &models.User{ID: 20, RoleType: models.RolePlacement}, &dto.CreateJobRequest{
		Title:               "Backend Engineer",
		Company:             "Acme",
		MinCGPA:             floatPtr(7.0),
		ApplicationDeadline: time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	return job
}

func TestCreateJobNotifiesEligibleStudents(t *testing.T) {
	svc, _, _, _, notifier := newJobFixture()

	openJob(t, svc)

	// Only the student above the CGPA bar hears about it.
	require.Eventually(t, func() bool {
		return len(notifier.recipients()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"asha@campus.edu"}, notifier.recipients())
}

func TestCreateJobRejectsPastDeadline(t *testing.T) {
	svc, _, _, _, _ := newJobFixture()

	_, err := svc.Create(context.Background(), &models.User{ID: 20}, &dto.CreateJobRequest{
		Title:               "Backend Engineer",
		Company:             "Acme",
		ApplicationDeadline: time.Now().Add(-time.Hour),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestApplySnapshotsProfileAndNotifiesCreator(t *testing.T) {
	svc, _, apps, dir, notifier := newJobFixture()
	job := openJob(t, svc)

	student := dir.users[1]
	app, err := svc.Apply(context.Background(), student, job.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, student.CGPA, app.CGPA)
	assert.Equal(t, student.Degree, app.Degree)
	assert.Len(t, apps.apps, 1)

	// The posting's creator gets the heads-up, on top of the posting fan-out.
	require.Eventually(t, func() bool {
		for _, to := range notifier.recipients() {
			if to == "placement@campus.edu" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestApplyTwiceReturnsAlreadyApplied(t *testing.T) {
	svc, _, _, dir, _ := newJobFixture()
	job := openJob(t, svc)

	_, err := svc.Apply(context.Background(), dir.users[1], job.ID)
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), dir.users[1], job.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
}

func TestApplyClosedJob(t *testing.T) {
	svc, jobs, _, dir, _ := newJobFixture()
	job := openJob(t, svc)
	jobs.jobs[job.ID].Status = models.JobClosed

	_, err := svc.Apply(context.Background(), dir.users[1], job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotOpen)
}

func TestApplyAfterDeadline(t *testing.T) {
	svc, jobs, _, dir, _ := newJobFixture()
	job := openJob(t, svc)
	jobs.jobs[job.ID].ApplicationDeadline = time.Now().Add(-time.Minute)

	_, err := svc.Apply(context.Background(), dir.users[1], job.ID)
	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
}

func TestApplyBelowEligibilityBar(t *testing.T) {
	svc, _, _, dir, _ := newJobFixture()
	job := openJob(t, svc)

	_, err := svc.Apply(context.Background(), dir.users[2], job.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateApplicationStatusWrongJob(t *testing.T) {
	svc, _, _, dir, _ := newJobFixture()
	job := openJob(t, svc)
	other := openJob(t, svc)

	app, err := svc.Apply(context.Background(), dir.users[1], job.ID)
	require.NoError(t, err)

	_, err = svc.UpdateApplicationStatus(context.Background(), other.ID, app.ID, models.ApplicationShortlisted)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestUpdateApplicationStatusUnknownStatus(t *testing.T) {
	svc, _, _, _, _ := newJobFixture()
	job := openJob(t, svc)

	_, err := svc.UpdateApplicationStatus(context.Background(), job.ID, 1, models.ApplicationStatus("Maybe"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestJobStats(t *testing.T) {
	svc, jobs, _, _, _ := newJobFixture()
	openJob(t, svc)
	job := openJob(t, svc)
	jobs.jobs[job.ID].Status = models.JobFilled

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalJobs)
	assert.Equal(t, 1, stats.ByStatus["Open"])
	assert.Equal(t, 1, stats.ByStatus["Filled"])
}
