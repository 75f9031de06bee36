package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/auth"
	"github.com/kaanaktas/campushub/internal/pkg/logger"
)

// HandleAPIError maps an application error to its HTTP status and error
// envelope and aborts the request. Controllers funnel every error through
// here so the wire format stays uniform.
func HandleAPIError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		handleValidationErrors(c, validationErrs)
		return
	}

	status, detail := classifyError(err)

	// Surface the application-supplied message when one was attached
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		detail.Message = custom.Message
		if custom.Details != nil {
			detail.Details = custom.Details
		}
	}

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		if gin.Mode() != gin.ReleaseMode {
			detail.WithDebugInfo("%v", err)
		}
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")

	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")

	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrInvalidFormat),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid authentication token")

	case errors.Is(err, apperrors.ErrPrincipalNotFound):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodePrincipalNotFound, "Authenticated user no longer exists")

	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled")

	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrNotCourseFaculty):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrTokenNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrAssignmentNotFound,
		apperrors.ErrSubmissionNotFound,
		apperrors.ErrJobNotFound,
		apperrors.ErrApplicationNotFound,
		apperrors.ErrProductNotFound,
		apperrors.ErrOrderNotFound,
		apperrors.ErrLostItemNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())

	// Unique-constraint violations are client errors in this API, not conflicts
	case apperrors.Is(err, apperrors.ErrDuplicateKey,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrConflict,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrCourseCodeExists,
		apperrors.ErrAlreadySubmitted,
		apperrors.ErrAlreadyApplied):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeDuplicateKey, err.Error())

	case apperrors.Is(err, apperrors.ErrBadRequest,
		apperrors.ErrValidationFailed,
		apperrors.ErrJobNotOpen,
		apperrors.ErrDeadlinePassed,
		apperrors.ErrStudentNotInCourse,
		apperrors.ErrProductUnavailable,
		apperrors.ErrInsufficientStock,
		apperrors.ErrInvalidOrderStatus):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
	}
}

func handleValidationErrors(c *gin.Context, errs validator.ValidationErrors) {
	details := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		details[lowerFirst(fieldErr.Field())] = validationMessage(fieldErr)
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "failed validation on " + fe.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
