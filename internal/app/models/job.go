package models

import "time"

// JobStatus represents the lifecycle state of a job posting
type JobStatus string

const (
	JobOpen   JobStatus = "Open"
	JobClosed JobStatus = "Closed"
	JobFilled JobStatus = "Filled"
)

// ApplicationStatus represents the state of a job application
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "Pending"
	ApplicationShortlisted ApplicationStatus = "Shortlisted"
	ApplicationRejected    ApplicationStatus = "Rejected"
	ApplicationSelected    ApplicationStatus = "Selected"
	ApplicationOnHold      ApplicationStatus = "On Hold"
)

// ValidApplicationStatus reports whether the given status is one of the known statuses.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationShortlisted, ApplicationRejected, ApplicationSelected, ApplicationOnHold:
		return true
	}
	return false
}

// JobEligibility holds the filters a student profile must match to be
// considered for a posting.
type JobEligibility struct {
	MinCGPA *float64 `json:"minCgpa,omitempty" db:"min_cgpa" example:"7.5"`
	Degrees []string `json:"degrees,omitempty" db:"degrees"`
	Batches []string `json:"batches,omitempty" db:"batches"`
}

// Matches reports whether a student profile satisfies the eligibility filters.
// A nil/empty filter matches everyone.
func (e JobEligibility) Matches(cgpa *float64, degree, batch *string) bool {
	if e.MinCGPA != nil {
		if cgpa == nil || *cgpa < *e.MinCGPA {
			return false
		}
	}
	if len(e.Degrees) > 0 {
		if degree == nil || !containsString(e.Degrees, *degree) {
			return false
		}
	}
	if len(e.Batches) > 0 {
		if batch == nil || !containsString(e.Batches, *batch) {
			return false
		}
	}
	return true
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Job represents a job posting created by a placement officer.
type Job struct {
	ID                  int64          `json:"id" db:"id"`
	Title               string         `json:"title" db:"title"`
	Company             string         `json:"company" db:"company"`
	Description         *string        `json:"description,omitempty" db:"description"`
	Requirements        []string       `json:"requirements,omitempty" db:"requirements"`
	Eligibility         JobEligibility `json:"eligibility"`
	ApplicationDeadline time.Time      `json:"applicationDeadline" db:"application_deadline"`
	Status              JobStatus      `json:"status" db:"status"`
	CreatedBy           int64          `json:"createdBy" db:"created_by"`
	CreatedAt           time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time      `json:"updatedAt" db:"updated_at"`
}

// JobApplication represents a student's application to a job posting.
// Unique per (job, student). Profile fields are snapshotted at apply time.
type JobApplication struct {
	ID        int64             `json:"id" db:"id"`
	JobID     int64             `json:"jobId" db:"job_id"`
	StudentID int64             `json:"studentId" db:"student_id"`
	CGPA      *float64          `json:"cgpa,omitempty" db:"cgpa"`
	Degree    *string           `json:"degree,omitempty" db:"degree"`
	Batch     *string           `json:"batch,omitempty" db:"batch"`
	Status    ApplicationStatus `json:"status" db:"status"`
	AppliedAt time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *User `json:"student,omitempty"`
	Job     *Job  `json:"job,omitempty"`
}
