package services

import (
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/auth"
	"github.com/kaanaktas/campushub/internal/pkg/email"
)

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	UserService       *UserService
	CourseService     *CourseService
	AssignmentService *AssignmentService
	AttendanceService *AttendanceService
	JobService        *JobService
	CanteenService    *CanteenService
	LostItemService   *LostItemService
}

// NewServices initializes all services over the repository layer.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, notifier email.Notifier) *Services {
	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		UserService:       NewUserService(repos.UserRepository),
		CourseService:     NewCourseService(repos.CourseRepository, repos.UserRepository),
		AssignmentService: NewAssignmentService(repos.AssignmentRepository, repos.SubmissionRepository, repos.CourseRepository),
		AttendanceService: NewAttendanceService(repos.AttendanceRepository, repos.CourseRepository),
		JobService:        NewJobService(repos.JobRepository, repos.JobApplicationRepository, repos.UserRepository, notifier),
		CanteenService:    NewCanteenService(repos.CanteenRepository),
		LostItemService:   NewLostItemService(repos.LostItemRepository),
	}
}
