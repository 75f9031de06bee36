package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/email"
	"github.com/kaanaktas/campushub/internal/pkg/logger"
)

// JobStore is the persistence surface the job service needs for postings.
// *repositories.JobRepository satisfies it.
type JobStore interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	GetAll(ctx context.Context, status *models.JobStatus, offset uint64, limit int) ([]*models.Job, int64, error)
	Update(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (map[string]int, int, error)
}

// JobApplicationStore is the persistence surface for applications.
// *repositories.JobApplicationRepository satisfies it.
type JobApplicationStore interface {
	Create(ctx context.Context, a *models.JobApplication) error
	GetByID(ctx context.Context, id int64) (*models.JobApplication, error)
	ListByJob(ctx context.Context, jobID int64) ([]*models.JobApplication, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	ExportRows(ctx context.Context, jobID int64) ([]*repositories.JobApplicationExportRow, error)
}

// StudentDirectory resolves students for eligibility fan-out and notification
// addressing. *repositories.UserRepository satisfies it.
type StudentDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListStudentsMatching(ctx context.Context, e models.JobEligibility) ([]*models.User, error)
}

// JobService handles job postings and applications. All emails it sends are
// best-effort: a failed delivery is logged and never fails the operation that
// triggered it.
type JobService struct {
	jobs         JobStore
	applications JobApplicationStore
	students     StudentDirectory
	notifier     email.Notifier
}

// NewJobService creates a new job service
func NewJobService(jobs JobStore, applications JobApplicationStore, students StudentDirectory, notifier email.Notifier) *JobService {
	return &JobService{
		jobs:         jobs,
		applications: applications,
		students:     students,
		notifier:     notifier,
	}
}

// Create posts a new job opening and notifies eligible students.
func (s *JobService) Create(ctx context.Context, actor *models.User, req *dto.CreateJobRequest) (*models.Job, error) {
	if !req.ApplicationDeadline.After(time.Now()) {
		return nil, apperrors.NewBadRequestError("application deadline must be in the future")
	}

	job := &models.Job{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
		Eligibility: models.JobEligibility{
			MinCGPA: req.MinCGPA,
			Degrees: req.Degrees,
			Batches: req.Batches,
		},
		ApplicationDeadline: req.ApplicationDeadline,
		Status:              models.JobOpen,
		CreatedBy:           actor.ID,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.notifyEligibleStudents(ctx, job)

	return job, nil
}

// notifyEligibleStudents emails every student whose profile matches the
// posting's eligibility. Lookup failures are logged and dropped.
func (s *JobService) notifyEligibleStudents(ctx context.Context, job *models.Job) {
	students, err := s.students.ListStudentsMatching(ctx, job.Eligibility)
	if err != nil {
		logger.Warn().Err(err).Int64("jobId", job.ID).Msg("Failed to resolve eligible students for notification")
		return
	}

	subject := fmt.Sprintf("New job opening: %s at %s", job.Title, job.Company)
	body := fmt.Sprintf(
		"<p>A new job matching your profile has been posted.</p><p><b>%s</b> at <b>%s</b><br>Apply before %s.</p>",
		job.Title, job.Company, job.ApplicationDeadline.Format("02 Jan 2006"))

	for _, student := range students {
		s.dispatch(student.Email, subject, body)
	}
}

// dispatch sends one email without blocking the caller, logging any delivery
// failure.
func (s *JobService) dispatch(to, subject, body string) {
	result := email.Dispatch(s.notifier, to, subject, body)
	go func() {
		if err := <-result; err != nil {
			logger.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("Notification delivery failed")
		}
	}()
}

// GetByID retrieves one job posting.
func (s *JobService) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// GetAll lists job postings, optionally filtered by status.
func (s *JobService) GetAll(ctx context.Context, status *models.JobStatus, offset uint64, limit int) ([]*models.Job, int64, error) {
	return s.jobs.GetAll(ctx, status, offset, limit)
}

// Update applies a partial update to a posting.
func (s *JobService) Update(ctx context.Context, id int64, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Company != nil {
		job.Company = *req.Company
	}
	if req.Description != nil {
		job.Description = req.Description
	}
	if req.Requirements != nil {
		job.Requirements = req.Requirements
	}
	if req.Status != nil {
		job.Status = models.JobStatus(*req.Status)
	}
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = *req.ApplicationDeadline
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a posting with its applications.
func (s *JobService) Delete(ctx context.Context, id int64) error {
	return s.jobs.Delete(ctx, id)
}

// Apply submits a student's application. The posting must be open and before
// its deadline, the profile must satisfy eligibility, and a student applies
// at most once per job. CGPA, degree and batch are snapshotted so later
// profile edits don't rewrite submitted applications.
func (s *JobService) Apply(ctx context.Context, student *models.User, jobID int64) (*models.JobApplication, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != models.JobOpen {
		return nil, apperrors.ErrJobNotOpen
	}
	if time.Now().After(job.ApplicationDeadline) {
		return nil, apperrors.ErrDeadlinePassed
	}
	if !job.Eligibility.Matches(student.CGPA, student.Degree, student.Batch) {
		return nil, apperrors.NewForbiddenError("profile does not meet the job's eligibility criteria")
	}

	application := &models.JobApplication{
		JobID:     jobID,
		StudentID: student.ID,
		CGPA:      student.CGPA,
		Degree:    student.Degree,
		Batch:     student.Batch,
		Status:    models.ApplicationPending,
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	// The poster hears about new applicants; a lost email never fails the apply.
	if creator, err := s.students.GetByID(ctx, job.CreatedBy); err != nil {
		logger.Warn().Err(err).Int64("jobId", jobID).Msg("Could not resolve job creator for notification")
	} else {
		s.dispatch(creator.Email,
			fmt.Sprintf("New application: %s at %s", job.Title, job.Company),
			fmt.Sprintf("<p><b>%s</b> has applied for <b>%s</b> at <b>%s</b>.</p>", student.Name, job.Title, job.Company))
	}

	return application, nil
}

// ListApplications returns a posting's applications with applicants attached.
func (s *JobService) ListApplications(ctx context.Context, jobID int64) ([]*models.JobApplication, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.applications.ListByJob(ctx, jobID)
}

// UpdateApplicationStatus transitions an application and emails the applicant.
func (s *JobService) UpdateApplicationStatus(ctx context.Context, jobID, applicationID int64, status models.ApplicationStatus) (*models.JobApplication, error) {
	if !models.ValidApplicationStatus(status) {
		return nil, apperrors.NewBadRequestError("unknown application status: " + string(status))
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.JobID != jobID {
		return nil, apperrors.ErrApplicationNotFound
	}

	if err := s.applications.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}
	application.Status = status

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, application.StudentID)
	if err != nil {
		logger.Warn().Err(err).Int64("studentId", application.StudentID).Msg("Failed to resolve applicant for status notification")
		return application, nil
	}

	s.dispatch(student.Email,
		fmt.Sprintf("Application update: %s at %s", job.Title, job.Company),
		fmt.Sprintf("<p>Your application for <b>%s</b> at <b>%s</b> is now <b>%s</b>.</p>", job.Title, job.Company, status))

	return application, nil
}

// Stats aggregates posting counts by status plus the total application count.
func (s *JobService) Stats(ctx context.Context) (*dto.JobStatsResponse, error) {
	byStatus, totalApplications, err := s.jobs.Stats(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	return &dto.JobStatsResponse{
		TotalJobs:         total,
		ByStatus:          byStatus,
		TotalApplications: totalApplications,
	}, nil
}

// WriteApplicationsCSV streams a posting's applications as CSV.
func (s *JobService) WriteApplicationsCSV(ctx context.Context, w io.Writer, jobID int64) error {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return err
	}

	rows, err := s.applications.ExportRows(ctx, jobID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Student Name", "Email", "CGPA", "Degree", "Batch", "Status", "Applied At"}); err != nil {
		return err
	}
	for _, row := range rows {
		cgpa := ""
		if row.CGPA != nil {
			cgpa = strconv.FormatFloat(*row.CGPA, 'f', 2, 64)
		}
		degree := ""
		if row.Degree != nil {
			degree = *row.Degree
		}
		batch := ""
		if row.Batch != nil {
			batch = *row.Batch
		}
		record := []string{
			row.StudentName,
			row.Email,
			cgpa,
			degree,
			batch,
			string(row.Status),
			row.AppliedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
