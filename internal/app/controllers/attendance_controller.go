package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/services"
	"github.com/kaanaktas/campushub/internal/middleware"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
)

// AttendanceController handles attendance endpoints
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new attendance controller
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// Mark godoc
// @Summary Mark attendance
// @Description Records attendance for a set of students on one course day. Re-marking a student for the same day updates the status in place. Each record succeeds or fails independently.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkAttendanceRequest true "Attendance records"
// @Success 200 {object} dto.APIResponse{data=dto.MarkAttendanceResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Router /attendance [post]
func (ac *AttendanceController) Mark(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp, err := ac.attendanceService.MarkBatch(c.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(resp))
}

// List godoc
// @Summary List course attendance
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param courseId query int true "Course ID"
// @Param date query string false "Day (RFC 3339 or YYYY-MM-DD)"
// @Param studentId query int false "Filter by student"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance}
// @Router /attendance [get]
func (ac *AttendanceController) List(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Query("courseId"), 10, 64)
	if err != nil || courseID <= 0 {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid courseId parameter"))
		return
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var studentID *int64
	if raw := c.Query("studentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid studentId parameter"))
			return
		}
		studentID = &id
	}

	records, err := ac.attendanceService.List(c.Request.Context(), courseID, date, studentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessCount(records, len(records)))
}

// Summary godoc
// @Summary Course day summary
// @Description Per-status counts plus present percentage for one course day
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param date query string false "Day (defaults to today)"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceSummaryResponse}
// @Router /courses/{id}/attendance [get]
func (ac *AttendanceController) Summary(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	day := time.Now()
	if date != nil {
		day = *date
	}

	summary, err := ac.attendanceService.Summary(c.Request.Context(), courseID, day)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(summary))
}

// MyAttendance godoc
// @Summary Current student's attendance history
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance}
// @Router /attendance/student [get]
func (ac *AttendanceController) MyAttendance(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	records, err := ac.attendanceService.ListByStudent(c.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessCount(records, len(records)))
}

// Export godoc
// @Summary Export attendance as CSV
// @Description Streams a course's attendance records for a date range as a CSV download. Accepts the range as query parameters (GET) or a JSON body (POST).
// @Tags attendance
// @Accept json
// @Produce text/csv
// @Security BearerAuth
// @Param request body dto.AttendanceExportRequest false "Course and date range"
// @Success 200 {string} string "CSV content"
// @Router /attendance/export [post]
func (ac *AttendanceController) Export(c *gin.Context) {
	var req dto.AttendanceExportRequest
	if c.Request.Method == http.MethodGet {
		courseID, err := strconv.ParseInt(c.Query("courseId"), 10, 64)
		if err != nil || courseID <= 0 {
			middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid courseId parameter"))
			return
		}
		req.CourseID = courseID
		if req.From, err = parseDateQuery(c, "from"); err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		if req.To, err = parseDateQuery(c, "to"); err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="attendance.csv"`)

	if err := ac.attendanceService.WriteExportCSV(c.Request.Context(), c.Writer, &req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
}

// parseDateQuery reads an optional date query parameter, accepting RFC 3339
// timestamps or plain YYYY-MM-DD dates.
func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, apperrors.NewBadRequestError("invalid " + name + " parameter, expected RFC 3339 or YYYY-MM-DD")
}
