package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
)

func performWithError(t *testing.T, err error) (*httptest.ResponseRecorder, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/boom", func(c *gin.Context) {
		HandleAPIError(c, err)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, &body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperrors.ErrCourseNotFound, http.StatusNotFound},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"not course faculty", apperrors.ErrNotCourseFaculty, http.StatusForbidden},
		{"duplicate key", apperrors.ErrDuplicateKey, http.StatusBadRequest},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusBadRequest},
		{"duplicate course code", apperrors.ErrCourseCodeExists, http.StatusBadRequest},
		{"already applied", apperrors.ErrAlreadyApplied, http.StatusBadRequest},
		{"already submitted", apperrors.ErrAlreadySubmitted, http.StatusBadRequest},
		{"insufficient stock", apperrors.ErrInsufficientStock, http.StatusBadRequest},
		{"job not open", apperrors.ErrJobNotOpen, http.StatusBadRequest},
		{"deadline passed", apperrors.ErrDeadlinePassed, http.StatusBadRequest},
		{"student not in course", apperrors.ErrStudentNotInCourse, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := performWithError(t, tc.err)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandleAPIErrorSurfacesCustomMessage(t *testing.T) {
	w, body := performWithError(t, apperrors.NewBadRequestError("marks exceed assignment points"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "marks exceed assignment points", body.Message)
}

func TestHandleAPIErrorUnknownErrorIs500WithDebugInTestMode(t *testing.T) {
	w, body := performWithError(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Error)
	// Outside release mode the response carries debug info; the message stays generic.
	assert.Equal(t, "An unexpected error occurred", body.Message)
	assert.NotEmpty(t, body.Error.DebugInfo)
}
