package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/services"
	"github.com/kaanaktas/campushub/internal/middleware"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/cache"
	"github.com/kaanaktas/campushub/internal/pkg/helpers"
)

const jobsPath = "/api/v1/jobs"

// JobController handles job posting and application endpoints
type JobController struct {
	jobService *services.JobService
	cache      cache.Store
}

// NewJobController creates a new job controller
func NewJobController(jobService *services.JobService, store cache.Store) *JobController {
	return &JobController{jobService: jobService, cache: store}
}

// Create godoc
// @Summary Post a job
// @Description Creates a job opening and notifies eligible students by email
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job details"
// @Success 201 {object} dto.APIResponse{data=models.Job}
// @Failure 400 {object} dto.ErrorResponse
// @Router /jobs [post]
func (jc *JobController) Create(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	job, err := jc.jobService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), jc.cache, jobsPath)
	c.JSON(http.StatusCreated, dto.Success(job))
}

// GetAll godoc
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(Open, Closed, Filled)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Job}
// @Router /jobs [get]
func (jc *JobController) GetAll(c *gin.Context) {
	page, limit := helpers.ParsePaginationParams(c)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	var status *models.JobStatus
	if raw := c.Query("status"); raw != "" {
		s := models.JobStatus(raw)
		status = &s
	}

	jobs, total, err := jc.jobService.GetAll(c.Request.Context(), status, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessPage(jobs, len(jobs), helpers.NewPaginationInfo(total, page, limit)))
}

// GetByID godoc
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{id} [get]
func (jc *JobController) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	job, err := jc.jobService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(job))
}

// Update godoc
// @Summary Update a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.UpdateJobRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Job}
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{id} [put]
func (jc *JobController) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	job, err := jc.jobService.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), jc.cache, jobsPath)
	c.JSON(http.StatusOK, dto.Success(job))
}

// Delete godoc
// @Summary Delete a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{id} [delete]
func (jc *JobController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := jc.jobService.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), jc.cache, jobsPath)
	c.JSON(http.StatusOK, dto.SuccessMessage("Job deleted"))
}

// Apply godoc
// @Summary Apply to a job
// @Description Submits the current student's application. The job must be open and before its deadline; the profile must meet eligibility; one application per job.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 201 {object} dto.APIResponse{data=models.JobApplication}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /jobs/{id}/apply [post]
func (jc *JobController) Apply(c *gin.Context) {
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

	application, err := jc.jobService.Apply(c.Request.Context(), student, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), jc.cache, jobsPath)
	c.JSON(http.StatusCreated, dto.Success(application))
}

// ListApplications godoc
// @Summary List a job's applications
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=[]models.JobApplication}
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{id}/applications [get]
func (jc *JobController) ListApplications(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	applications, err := jc.jobService.ListApplications(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessCount(applications, len(applications)))
}

// UpdateApplicationStatus godoc
// @Summary Update an application's status
// @Description Transitions an application and emails the applicant
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param applicationId path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.JobApplication}
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{id}/applications/{applicationId} [put]
func (jc *JobController) UpdateApplicationStatus(c *gin.Context) {
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	applicationID, err := parseIDParam(c, "applicationId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	application, err := jc.jobService.UpdateApplicationStatus(c.Request.Context(), jobID, applicationID, models.ApplicationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), jc.cache, jobsPath)
	c.JSON(http.StatusOK, dto.Success(application))
}

// Stats godoc
// @Summary Job statistics
// @Description Posting counts by status plus the total application count
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.JobStatsResponse}
// @Router /jobs/stats [get]
func (jc *JobController) Stats(c *gin.Context) {
	stats, err := jc.jobService.Stats(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(stats))
}

// ExportApplications godoc
// @Summary Export applications as CSV
// @Tags jobs
// @Produce text/csv
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {string} string "CSV content"
// @Router /jobs/{id}/applications/export [get]
func (jc *JobController) ExportApplications(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="applications.csv"`)

	if err := jc.jobService.WriteApplicationsCSV(c.Request.Context(), c.Writer, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
}
