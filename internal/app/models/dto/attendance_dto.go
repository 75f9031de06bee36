package dto

import "time"

// MarkAttendanceRecord is one student's entry in a batch mark call.
type MarkAttendanceRecord struct {
	StudentID int64  `json:"studentId" binding:"required,gt=0"`
	Status    string `json:"status" binding:"required,oneof=present absent late excused"`
}

// MarkAttendanceRequest is the payload for POST /attendance.
type MarkAttendanceRequest struct {
	CourseID int64                  `json:"courseId" binding:"required,gt=0"`
	Date     time.Time              `json:"date" binding:"required"`
	Records  []MarkAttendanceRecord `json:"records" binding:"required,min=1,dive"`
}

// AttendanceOutcome is the result of marking one student. Outcome is one of
// created, updated or failed; Error is set only for failures.
type AttendanceOutcome struct {
	StudentID int64  `json:"studentId"`
	Outcome   string `json:"outcome"`
	Error     string `json:"error,omitempty"`
}

// MarkAttendanceResponse reports per-student outcomes plus aggregate counts.
type MarkAttendanceResponse struct {
	Date     time.Time           `json:"date"`
	CourseID int64               `json:"courseId"`
	Results  []AttendanceOutcome `json:"results"`
	Created  int                 `json:"created"`
	Updated  int                 `json:"updated"`
	Failed   int                 `json:"failed"`
}

// AttendanceExportRequest is the payload for POST /attendance/export.
type AttendanceExportRequest struct {
	CourseID int64      `json:"courseId" binding:"required,gt=0"`
	From     *time.Time `json:"from"`
	To       *time.Time `json:"to"`
}
