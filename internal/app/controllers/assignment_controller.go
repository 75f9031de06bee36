package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/services"
	"github.com/kaanaktas/campushub/internal/middleware"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/cache"
	"github.com/kaanaktas/campushub/internal/pkg/helpers"
)

const assignmentsPath = "/api/v1/assignments"

// courseAssignmentsPath is the cache prefix of a course's nested assignment
// list; assignment mutations must drop it along with the flat collection.
func courseAssignmentsPath(courseID int64) string {
	return coursesPath + "/" + strconv.FormatInt(courseID, 10) + "/assignments"
}

// AssignmentController handles assignment and submission endpoints
type AssignmentController struct {
	assignmentService *services.AssignmentService
	cache             cache.Store
}

// NewAssignmentController creates a new assignment controller
func NewAssignmentController(assignmentService *services.AssignmentService, store cache.Store) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService, cache: store}
}

// Create godoc
// @Summary Create an assignment
// @Description Posts an assignment to a course. Accepts points or the legacy totalMarks name.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAssignmentRequest true "Assignment details"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Router /assignments [post]
func (ac *AssignmentController) Create(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	a, err := ac.assignmentService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), ac.cache, assignmentsPath, courseAssignmentsPath(a.CourseID))
	c.JSON(http.StatusCreated, dto.Success(dto.NewAssignmentResponse(a)))
}

// GetAll godoc
// @Summary List assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Filter by course"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]dto.AssignmentResponse}
// @Router /assignments [get]
func (ac *AssignmentController) GetAll(c *gin.Context) {
	page, limit := helpers.ParsePaginationParams(c)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	var courseID *int64
	if raw := c.Query("courseId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid courseId parameter"))
			return
		}
		courseID = &id
	}

	assignments, total, err := ac.assignmentService.GetAll(c.Request.Context(), courseID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	list := dto.NewAssignmentResponseList(assignments)
	c.JSON(http.StatusOK, dto.SuccessPage(list, len(list), helpers.NewPaginationInfo(total, page, limit)))
}

// ListByCourse godoc
// @Summary List a course's assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]dto.AssignmentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/assignments [get]
func (ac *AssignmentController) ListByCourse(c *gin.Context) {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	page, limit := helpers.ParsePaginationParams(c)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	assignments, total, err := ac.assignmentService.GetAll(c.Request.Context(), &courseID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	list := dto.NewAssignmentResponseList(assignments)
	c.JSON(http.StatusOK, dto.SuccessPage(list, len(list), helpers.NewPaginationInfo(total, page, limit)))
}

// GetByID godoc
// @Summary Get an assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments/{id} [get]
func (ac *AssignmentController) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	a, err := ac.assignmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(dto.NewAssignmentResponse(a)))
}

// Update godoc
// @Summary Update an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.UpdateAssignmentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments/{id} [put]
func (ac *AssignmentController) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	a, err := ac.assignmentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), ac.cache, assignmentsPath, courseAssignmentsPath(a.CourseID))
	c.JSON(http.StatusOK, dto.Success(dto.NewAssignmentResponse(a)))
}

// Delete godoc
// @Summary Delete an assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments/{id} [delete]
func (ac *AssignmentController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	a, err := ac.assignmentService.Delete(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), ac.cache, assignmentsPath, courseAssignmentsPath(a.CourseID))
	c.JSON(http.StatusOK, dto.SuccessMessage("Assignment deleted"))
}

// Submit godoc
// @Summary Submit work
// @Description Records the current student's submission. One submission per assignment; past-due submissions are stored as late.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param request body dto.CreateSubmissionRequest true "Submission content"
// @Success 201 {object} dto.APIResponse{data=models.Submission}
// @Failure 400 {object} dto.ErrorResponse
// @Router /assignments/{id}/submissions [post]
func (ac *AssignmentController) Submit(c *gin.Context) {
	student, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	sub, err := ac.assignmentService.Submit(c.Request.Context(), student, id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), ac.cache, assignmentsPath)
	c.JSON(http.StatusCreated, dto.Success(sub))
}

// ListSubmissions godoc
// @Summary List submissions
// @Description Returns an assignment's submissions. Requires teaching the course or admin.
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Submission}
// @Failure 403 {object} dto.ErrorResponse
// @Router /assignments/{id}/submissions [get]
func (ac *AssignmentController) ListSubmissions(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	subs, err := ac.assignmentService.ListSubmissions(c.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessCount(subs, len(subs)))
}

// Grade godoc
// @Summary Grade a submission
// @Description Records marks on a submission. Marks may not exceed the assignment's points.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param submissionId path int true "Submission ID"
// @Param request body dto.GradeSubmissionRequest true "Marks"
// @Success 200 {object} dto.APIResponse{data=models.Submission}
// @Failure 400 {object} dto.ErrorResponse
// @Router /assignments/{id}/submissions/{submissionId}/grade [put]
func (ac *AssignmentController) Grade(c *gin.Context) {
	grader, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	id, err := parseIDParam(c, "submissionId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.GradeSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	sub, err := ac.assignmentService.Grade(c.Request.Context(), grader, id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), ac.cache, assignmentsPath)
	c.JSON(http.StatusOK, dto.Success(sub))
}
