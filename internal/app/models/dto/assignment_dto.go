package dto

import (
	"time"

	"github.com/kaanaktas/campushub/internal/app/models"
)

// CreateAssignmentRequest is the payload for POST /assignments.
// Clients may send either points or the legacy totalMarks name; when both are
// present, points wins.
type CreateAssignmentRequest struct {
	CourseID    int64     `json:"courseId" binding:"required,gt=0"`
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description *string   `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
	Points      *int      `json:"points" binding:"omitempty,gte=0"`
	TotalMarks  *int      `json:"totalMarks" binding:"omitempty,gte=0"`
}

// ResolvePoints returns the canonical points value from the request aliases.
func (r *CreateAssignmentRequest) ResolvePoints() int {
	if r.Points != nil {
		return *r.Points
	}
	if r.TotalMarks != nil {
		return *r.TotalMarks
	}
	return 0
}

// UpdateAssignmentRequest is the payload for PUT /assignments/:id
type UpdateAssignmentRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Points      *int       `json:"points" binding:"omitempty,gte=0"`
	TotalMarks  *int       `json:"totalMarks" binding:"omitempty,gte=0"`
}

// AssignmentResponse mirrors the assignment with the legacy totalMarks alias
// emitted alongside points for older clients.
type AssignmentResponse struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"courseId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Points      int       `json:"points"`
	TotalMarks  int       `json:"totalMarks"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewAssignmentResponse maps a model to its wire representation.
func NewAssignmentResponse(a *models.Assignment) *AssignmentResponse {
	if a == nil {
		return nil
	}
	return &AssignmentResponse{
		ID:          a.ID,
		CourseID:    a.CourseID,
		Title:       a.Title,
		Description: a.Description,
		DueDate:     a.DueDate,
		Points:      a.Points,
		TotalMarks:  a.Points,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
	}
}

// NewAssignmentResponseList maps a slice of models.
func NewAssignmentResponseList(list []*models.Assignment) []*AssignmentResponse {
	out := make([]*AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAssignmentResponse(a))
	}
	return out
}

// CreateSubmissionRequest is the payload for POST /assignments/:assignmentId/submissions
type CreateSubmissionRequest struct {
	Text          *string `json:"text"`
	AttachmentURL *string `json:"attachmentUrl" binding:"omitempty,url"`
}

// GradeSubmissionRequest is the payload for PUT .../submissions/:id/grade
type GradeSubmissionRequest struct {
	Marks int `json:"marks" binding:"gte=0"`
}
