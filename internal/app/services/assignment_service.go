package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
)

// AssignmentService handles assignments, submissions and grading.
type AssignmentService struct {
	assignmentRepo *repositories.AssignmentRepository
	submissionRepo *repositories.SubmissionRepository
	courseRepo     *repositories.CourseRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignmentRepo *repositories.AssignmentRepository, submissionRepo *repositories.SubmissionRepository, courseRepo *repositories.CourseRepository) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		courseRepo:     courseRepo,
	}
}

// Create adds an assignment. Faculty must teach the course; admins may post
// to any course.
func (s *AssignmentService) Create(ctx context.Context, actor *models.User, req *dto.CreateAssignmentRequest) (*models.Assignment, error) {
	if actor.RoleType != models.RoleAdmin {
		teaches, err := s.courseRepo.IsFaculty(ctx, req.CourseID, actor.ID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrNotCourseFaculty
		}
	}

	a := &models.Assignment{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Points:      req.ResolvePoints(),
		CreatedBy:   actor.ID,
	}
	if err := s.assignmentRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID retrieves one assignment.
func (s *AssignmentService) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	return s.assignmentRepo.GetByID(ctx, id)
}

// GetAll lists assignments, optionally filtered by course.
func (s *AssignmentService) GetAll(ctx context.Context, courseID *int64, offset uint64, limit int) ([]*models.Assignment, int64, error) {
	return s.assignmentRepo.GetAll(ctx, courseID, offset, limit)
}

// Update applies a partial assignment update.
func (s *AssignmentService) Update(ctx context.Context, id int64, req *dto.UpdateAssignmentRequest) (*models.Assignment, error) {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = req.Description
	}
	if req.DueDate != nil {
		a.DueDate = *req.DueDate
	}
	if req.Points != nil {
		a.Points = *req.Points
	} else if req.TotalMarks != nil {
		a.Points = *req.TotalMarks
	}

	if err := s.assignmentRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an assignment with its submissions. The removed assignment
// is returned so callers know which course it belonged to.
func (s *AssignmentService) Delete(ctx context.Context, id int64) (*models.Assignment, error) {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return a, nil
}

// Submit records a student's submission. Each student submits at most once
// per assignment; submissions past the due date are stored as late.
func (s *AssignmentService) Submit(ctx context.Context, student *models.User, assignmentID int64, req *dto.CreateSubmissionRequest) (*models.Submission, error) {
	a, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.courseRepo.IsStudent(ctx, a.CourseID, student.ID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperrors.ErrStudentNotInCourse
	}

	now := time.Now()
	status := models.SubmissionSubmitted
	if now.After(a.DueDate) {
		status = models.SubmissionLate
	}

	sub := &models.Submission{
		AssignmentID:  assignmentID,
		StudentID:     student.ID,
		Text:          req.Text,
		AttachmentURL: req.AttachmentURL,
		Status:        status,
		SubmittedAt:   now,
	}
	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ListSubmissions returns an assignment's submissions. The actor must teach
// the course unless they are an admin.
func (s *AssignmentService) ListSubmissions(ctx context.Context, actor *models.User, assignmentID int64) ([]*models.Submission, error) {
	a, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if actor.RoleType != models.RoleAdmin {
		teaches, err := s.courseRepo.IsFaculty(ctx, a.CourseID, actor.ID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrNotCourseFaculty
		}
	}

	return s.submissionRepo.ListByAssignment(ctx, assignmentID)
}

// Grade records marks on a submission. Marks may not exceed the assignment's
// points.
func (s *AssignmentService) Grade(ctx context.Context, grader *models.User, submissionID int64, req *dto.GradeSubmissionRequest) (*models.Submission, error) {
	sub, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	a, err := s.assignmentRepo.GetByID(ctx, sub.AssignmentID)
	if err != nil {
		return nil, err
	}

	if grader.RoleType != models.RoleAdmin {
		teaches, err := s.courseRepo.IsFaculty(ctx, a.CourseID, grader.ID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrNotCourseFaculty
		}
	}

	if req.Marks > a.Points {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("marks %d exceed assignment points %d", req.Marks, a.Points))
	}

	now := time.Now()
	if err := s.submissionRepo.Grade(ctx, submissionID, req.Marks, grader.ID, now); err != nil {
		return nil, err
	}

	sub.Marks = &req.Marks
	sub.Status = models.SubmissionGraded
	sub.GradedAt = &now
	sub.GradedBy = &grader.ID
	return sub, nil
}
