package services

import (
	"context"

	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
)

// CourseStore is the persistence surface the course service needs.
// *repositories.CourseRepository satisfies it.
type CourseStore interface {
	Create(ctx context.Context, c *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error)
	Update(ctx context.Context, c *models.Course) error
	Delete(ctx context.Context, id int64) error
	AddStudent(ctx context.Context, courseID, userID int64) error
	RemoveStudent(ctx context.Context, courseID, userID int64) error
	AddFaculty(ctx context.Context, courseID, userID int64) error
	ListStudents(ctx context.Context, courseID int64) ([]*models.User, error)
	ListFaculty(ctx context.Context, courseID int64) ([]*models.User, error)
	ListByFaculty(ctx context.Context, userID int64) ([]*models.Course, error)
	IsFaculty(ctx context.Context, courseID, userID int64) (bool, error)
	AddResource(ctx context.Context, r *models.CourseResource) error
	ListResources(ctx context.Context, courseID int64) ([]*models.CourseResource, error)
}

// UserDirectory resolves users for membership role checks.
// *repositories.UserRepository satisfies it.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// CourseService handles course, enrollment and resource operations.
type CourseService struct {
	courseRepo CourseStore
	userRepo   UserDirectory
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo CourseStore, userRepo UserDirectory) *CourseService {
	return &CourseService{courseRepo: courseRepo, userRepo: userRepo}
}

// Create adds a new course. Course codes are unique.
func (s *CourseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// GetByID retrieves a course with its faculty and students attached.
func (s *CourseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	faculty, err := s.courseRepo.ListFaculty(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Faculty = faculty

	students, err := s.courseRepo.ListStudents(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Students = students

	return course, nil
}

// GetAll lists courses.
func (s *CourseService) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error) {
	return s.courseRepo.GetAll(ctx, offset, limit)
}

// Update applies a partial course update.
func (s *CourseService) Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = req.Description
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course with its enrollments.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}

// EnrollStudent adds a student to a course. Enrolling twice is a no-op.
func (s *CourseService) EnrollStudent(ctx context.Context, courseID, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.RoleType != models.RoleStudent {
		return apperrors.NewBadRequestError("only students can be enrolled in a course")
	}
	return s.courseRepo.AddStudent(ctx, courseID, userID)
}

// RemoveStudent drops a student from a course.
func (s *CourseService) RemoveStudent(ctx context.Context, courseID, userID int64) error {
	return s.courseRepo.RemoveStudent(ctx, courseID, userID)
}

// AddFaculty assigns a faculty member to a course.
func (s *CourseService) AddFaculty(ctx context.Context, courseID, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.RoleType != models.RoleFaculty {
		return apperrors.NewBadRequestError("only faculty members can teach a course")
	}
	return s.courseRepo.AddFaculty(ctx, courseID, userID)
}

// ListStudents returns the students enrolled in a course.
func (s *CourseService) ListStudents(ctx context.Context, courseID int64) ([]*models.User, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.courseRepo.ListStudents(ctx, courseID)
}

// ListFaculty returns the faculty assigned to a course.
func (s *CourseService) ListFaculty(ctx context.Context, courseID int64) ([]*models.User, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.courseRepo.ListFaculty(ctx, courseID)
}

// ListByFaculty returns the courses taught by a faculty member.
func (s *CourseService) ListByFaculty(ctx context.Context, userID int64) ([]*models.Course, error) {
	return s.courseRepo.ListByFaculty(ctx, userID)
}

// AddResource attaches a shared resource to a course. The actor must teach
// the course unless they are an admin.
func (s *CourseService) AddResource(ctx context.Context, actor *models.User, courseID int64, req *dto.AddResourceRequest) (*models.CourseResource, error) {
	if actor.RoleType != models.RoleAdmin {
		teaches, err := s.courseRepo.IsFaculty(ctx, courseID, actor.ID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.ErrNotCourseFaculty
		}
	}

	res := &models.CourseResource{
		CourseID: courseID,
		Title:    req.Title,
		URL:      req.URL,
		AddedBy:  actor.ID,
	}
	if err := s.courseRepo.AddResource(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ListResources returns a course's shared resources.
func (s *CourseService) ListResources(ctx context.Context, courseID int64) ([]*models.CourseResource, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.courseRepo.ListResources(ctx, courseID)
}
