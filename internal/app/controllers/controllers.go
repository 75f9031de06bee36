package controllers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/app/services"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/cache"
	"github.com/kaanaktas/campushub/internal/pkg/filestorage"
	"github.com/kaanaktas/campushub/internal/pkg/logger"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController       *AuthController
	UserController       *UserController
	CourseController     *CourseController
	AssignmentController *AssignmentController
	AttendanceController *AttendanceController
	JobController        *JobController
	CanteenController    *CanteenController
	LostItemController   *LostItemController
	UploadController     *UploadController
}

// NewControllers initializes all controllers over the service layer.
func NewControllers(svcs *services.Services, store cache.Store, storage *filestorage.LocalStorage, fileRepo *repositories.FileRepository) *Controllers {
	return &Controllers{
		AuthController:       NewAuthController(svcs.AuthService),
		UserController:       NewUserController(svcs.UserService, store),
		CourseController:     NewCourseController(svcs.CourseService, store),
		AssignmentController: NewAssignmentController(svcs.AssignmentService, store),
		AttendanceController: NewAttendanceController(svcs.AttendanceService),
		JobController:        NewJobController(svcs.JobService, store),
		CanteenController:    NewCanteenController(svcs.CanteenService, store),
		LostItemController:   NewLostItemController(svcs.LostItemService, store),
		UploadController:     NewUploadController(storage, fileRepo),
	}
}

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("invalid " + name + " parameter")
	}
	return id, nil
}

// invalidate drops every cached entry under the given path prefixes. Cache
// trouble is logged, never surfaced: mutations must not fail over staleness.
func invalidate(ctx context.Context, store cache.Store, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := store.DeletePrefix(ctx, prefix); err != nil {
			logger.Warn().Err(err).Str("prefix", prefix).Msg("Cache invalidation failed")
		}
	}
}
