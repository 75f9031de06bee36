package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/services"
	"github.com/kaanaktas/campushub/internal/middleware"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/cache"
	"github.com/kaanaktas/campushub/internal/pkg/helpers"
)

const coursesPath = "/api/v1/courses"

// CourseController handles course endpoints
type CourseController struct {
	courseService *services.CourseService
	cache         cache.Store
}

// NewCourseController creates a new course controller
func NewCourseController(courseService *services.CourseService, store cache.Store) *CourseController {
	return &CourseController{courseService: courseService, cache: store}
}

// Create godoc
// @Summary Create a course
// @Description Adds a course. Course codes are unique.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse
// @Router /courses [post]
func (cc *CourseController) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	course, err := cc.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, coursesPath)
	c.JSON(http.StatusCreated, dto.Success(course))
}

// GetAll godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /courses [get]
func (cc *CourseController) GetAll(c *gin.Context) {
	page, limit := helpers.ParsePaginationParams(c)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	courses, total, err := cc.courseService.GetAll(c.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessPage(courses, len(courses), helpers.NewPaginationInfo(total, page, limit)))
}

// GetByID godoc
// @Summary Get a course
// @Description Returns the course with its faculty and enrolled students
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CourseController) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	course, err := cc.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(course))
}

// Update godoc
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [put]
func (cc *CourseController) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	course, err := cc.courseService.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, coursesPath)
	c.JSON(http.StatusOK, dto.Success(course))
}

// Delete godoc
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [delete]
func (cc *CourseController) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.courseService.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, coursesPath)
	c.JSON(http.StatusOK, dto.SuccessMessage("Course deleted"))
}

// EnrollStudent godoc
// @Summary Enroll a student
// @Description Adds a student to the course. Enrolling twice is a no-op.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.EnrollRequest true "Student to enroll"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/students [post]
func (cc *CourseController) EnrollStudent(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.courseService.EnrollStudent(c.Request.Context(), id, req.UserID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, coursesPath)
	c.JSON(http.StatusOK, dto.SuccessMessage("Student enrolled"))
}

// RemoveStudent godoc
// @Summary Remove a student
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param userId path int true "Student ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/students/{userId} [delete]
func (cc *CourseController) RemoveStudent(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.courseService.RemoveStudent(c.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, coursesPath)
	c.JSON(http.StatusOK, dto.SuccessMessage("Student removed"))
}

// ListStudents godoc
// @Summary List enrolled students
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/students [get]
func (cc *CourseController) ListStudents(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	students, err := cc.courseService.ListStudents(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessCount(students, len(students)))
}

// ListFaculty godoc
// @Summary List assigned faculty
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/faculty [get]
func (cc *CourseController) ListFaculty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	faculty, err := cc.courseService.ListFaculty(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessCount(faculty, len(faculty)))
}

// AddFaculty godoc
// @Summary Assign faculty
// @Description Assigns a faculty member to teach the course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.EnrollRequest true "Faculty member to assign"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/faculty [post]
func (cc *CourseController) AddFaculty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.courseService.AddFaculty(c.Request.Context(), id, req.UserID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, coursesPath)
	c.JSON(http.StatusOK, dto.SuccessMessage("Faculty assigned"))
}

// MyCourses godoc
// @Summary Courses taught by the current faculty member
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /attendance/faculty/courses [get]
func (cc *CourseController) MyCourses(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	courses, err := cc.courseService.ListByFaculty(c.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessCount(courses, len(courses)))
}

// AddResource godoc
// @Summary Add a course resource
// @Description Attaches a shared link to the course. Requires teaching the course or admin.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.AddResourceRequest true "Resource details"
// @Success 201 {object} dto.APIResponse{data=models.CourseResource}
// @Failure 403 {object} dto.ErrorResponse
// @Router /courses/{id}/resources [post]
func (cc *CourseController) AddResource(c *gin.Context) {
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

	var req dto.AddResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	res, err := cc.courseService.AddResource(c.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, coursesPath)
	c.JSON(http.StatusCreated, dto.Success(res))
}

// ListResources godoc
// @Summary List course resources
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseResource}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/resources [get]
func (cc *CourseController) ListResources(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resources, err := cc.courseService.ListResources(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessCount(resources, len(resources)))
}
