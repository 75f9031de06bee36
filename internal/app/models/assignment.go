package models

import "time"

// Assignment represents a course assignment.
// Points is the single canonical marks field; the legacy totalMarks name is
// accepted and emitted only at the DTO boundary.
type Assignment struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	DueDate     time.Time `json:"dueDate" db:"due_date"`
	Points      int       `json:"points" db:"points" example:"100"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// SubmissionStatus represents the state of a submission
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
	SubmissionLate      SubmissionStatus = "late"
)

// Submission represents a student's submission for an assignment.
// Unique per (assignment, student).
type Submission struct {
	ID           int64            `json:"id" db:"id"`
	AssignmentID int64            `json:"assignmentId" db:"assignment_id"`
	StudentID    int64            `json:"studentId" db:"student_id"`
	Text         *string          `json:"text,omitempty" db:"text"`
	AttachmentURL *string         `json:"attachmentUrl,omitempty" db:"attachment_url"`
	Marks        *int             `json:"marks,omitempty" db:"marks"`
	Status       SubmissionStatus `json:"status" db:"status"`
	SubmittedAt  time.Time        `json:"submittedAt" db:"submitted_at"`
	GradedAt     *time.Time       `json:"gradedAt,omitempty" db:"graded_at"`
	GradedBy     *int64           `json:"gradedBy,omitempty" db:"graded_by"`

	// Relations (populated when needed)
	Student *User `json:"student,omitempty"`
}
