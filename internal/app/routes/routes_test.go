package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/app/controllers"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/app/services"
	"github.com/kaanaktas/campushub/internal/pkg/auth"
	"github.com/kaanaktas/campushub/internal/pkg/cache"
	"github.com/kaanaktas/campushub/internal/pkg/filestorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopNotifier struct{}

func (noopNotifier) Send(to, subject, htmlBody string) error { return nil }

// testRouter wires the full route table against a nil database pool. No test
// below dispatches into a handler that touches the pool; they only exercise
// routing and the auth gate in front of it.
func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repositories.NewRepositories(nil)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campushub.test",
	})
	storage, err := filestorage.NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	svcs := services.NewServices(repos, jwtService, noopNotifier{})
	store := cache.NewMemoryStore(cache.DefaultTTL)
	ctrl := controllers.NewControllers(svcs, store, storage, repos.FileRepository)

	router := gin.New()
	SetupRouter(router, ctrl, jwtService, repos.UserRepository, store)
	return router
}

func perform(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestUnknownRouteResponseShape(t *testing.T) {
	router := testRouter(t)

	rec := perform(router, http.MethodGet, "/api/v1/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Cannot GET /api/v1/nope", body.Message)
}

func TestUnknownRouteNamesTheMethod(t *testing.T) {
	router := testRouter(t)

	rec := perform(router, http.MethodDelete, "/somewhere/else")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot DELETE /somewhere/else")
}

func TestHealthIsPublic(t *testing.T) {
	router := testRouter(t)

	rec := perform(router, http.MethodGet, "/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{
		"/api/v1/courses",
		"/api/v1/jobs",
		"/api/v1/canteen/products",
		"/api/v1/attendance/student",
		"/api/v1/auth/me",
	} {
		rec := perform(router, http.MethodGet, path)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
