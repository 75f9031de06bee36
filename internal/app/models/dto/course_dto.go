package dto

// CreateCourseRequest is the payload for POST /courses
type CreateCourseRequest struct {
	Code        string  `json:"code" binding:"required,min=2,max=20"`
	Name        string  `json:"name" binding:"required,min=2,max=200"`
	Description *string `json:"description"`
}

// UpdateCourseRequest is the payload for PUT /courses/:id
type UpdateCourseRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=200"`
	Description *string `json:"description"`
}

// EnrollRequest adds a student or faculty member to a course.
type EnrollRequest struct {
	UserID int64 `json:"userId" binding:"required,gt=0"`
}

// AddResourceRequest is the payload for POST /courses/:id/resources
type AddResourceRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
	URL   string `json:"url" binding:"required,url"`
}

// AttendanceSummaryResponse is the per-day course attendance rollup.
type AttendanceSummaryResponse struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Excused    int     `json:"excused"`
	Percentage float64 `json:"percentage"` // Present records over total, in percent
}
