package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kaanaktas/campushub/internal/pkg/cache"
)

func cacheTestRouter(store cache.Store, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/items", CacheResponse(store, time.Minute), func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusOK, gin.H{"hits": *hits})
	})
	router.POST("/items", CacheResponse(store, time.Minute), func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusCreated, gin.H{"hits": *hits})
	})
	router.GET("/missing", CacheResponse(store, time.Minute), func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusNotFound, gin.H{"error": "nope"})
	})
	return router
}

func TestCacheResponseServesSecondRequestFromCache(t *testing.T) {
	hits := 0
	router := cacheTestRouter(cache.NewMemoryStore(time.Minute), &hits)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest("GET", "/items", nil))
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest("GET", "/items", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	// The handler ran once; the second response replayed its body.
	assert.Equal(t, 1, hits)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestCacheResponseKeysIncludeQueryString(t *testing.T) {
	hits := 0
	router := cacheTestRouter(cache.NewMemoryStore(time.Minute), &hits)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/items?page=1", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/items?page=2", nil))

	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, 2, hits)
}

func TestCacheResponseSkipsNonGET(t *testing.T) {
	hits := 0
	router := cacheTestRouter(cache.NewMemoryStore(time.Minute), &hits)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/items", nil))
		assert.Empty(t, w.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, hits)
}

func TestCacheResponseSkipsNon200(t *testing.T) {
	hits := 0
	router := cacheTestRouter(cache.NewMemoryStore(time.Minute), &hits)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/missing", nil))
		assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, hits)
}
