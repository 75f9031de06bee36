package dto

import "time"

// CreateJobRequest is the payload for POST /jobs
type CreateJobRequest struct {
	Title               string    `json:"title" binding:"required,min=2,max=200"`
	Company             string    `json:"company" binding:"required,min=1,max=200"`
	Description         *string   `json:"description"`
	Requirements        []string  `json:"requirements"`
	MinCGPA             *float64  `json:"minCgpa" binding:"omitempty,gte=0,lte=10"`
	Degrees             []string  `json:"degrees"`
	Batches             []string  `json:"batches"`
	ApplicationDeadline time.Time `json:"applicationDeadline" binding:"required"`
}

// UpdateJobRequest is the payload for PUT /jobs/:id
type UpdateJobRequest struct {
	Title               *string    `json:"title" binding:"omitempty,min=2,max=200"`
	Company             *string    `json:"company" binding:"omitempty,min=1,max=200"`
	Description         *string    `json:"description"`
	Requirements        []string   `json:"requirements"`
	Status              *string    `json:"status" binding:"omitempty,oneof=Open Closed Filled"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
}

// UpdateApplicationStatusRequest is the payload for PUT /jobs/:id/applications/:applicationId
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Shortlisted Rejected Selected 'On Hold'"`
}

// JobStatsResponse aggregates posting and application counts.
type JobStatsResponse struct {
	TotalJobs         int            `json:"totalJobs"`
	ByStatus          map[string]int `json:"byStatus"`
	TotalApplications int            `json:"totalApplications"`
}
