package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository           *UserRepository
	TokenRepository          *TokenRepository
	CourseRepository         *CourseRepository
	AssignmentRepository     *AssignmentRepository
	SubmissionRepository     *SubmissionRepository
	AttendanceRepository     *AttendanceRepository
	JobRepository            *JobRepository
	JobApplicationRepository *JobApplicationRepository
	LostItemRepository       *LostItemRepository
	CanteenRepository        *CanteenRepository
	FileRepository           *FileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		TokenRepository:          NewTokenRepository(db),
		CourseRepository:         NewCourseRepository(db),
		AssignmentRepository:     NewAssignmentRepository(db),
		SubmissionRepository:     NewSubmissionRepository(db),
		AttendanceRepository:     NewAttendanceRepository(db),
		JobRepository:            NewJobRepository(db),
		JobApplicationRepository: NewJobApplicationRepository(db),
		LostItemRepository:       NewLostItemRepository(db),
		CanteenRepository:        NewCanteenRepository(db),
		FileRepository:           NewFileRepository(db),
	}
}
