package models

import "time"

// Course represents a course with its enrolled students and teaching faculty.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Code        string    `json:"code" db:"code" example:"CS101"`
	Name        string    `json:"name" db:"name" example:"Introduction to Computer Science"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Faculty  []*User `json:"faculty,omitempty"`
	Students []*User `json:"students,omitempty"`
}

// CourseResource represents a shared resource (link or file) attached to a course.
type CourseResource struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	URL       string    `json:"url" db:"url"`
	AddedBy   int64     `json:"addedBy" db:"added_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
