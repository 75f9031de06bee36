package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/pkg/cache"
)

// cacheKey is the request path plus query string, so the same endpoint cached
// under different filters gets distinct entries while DeletePrefix on the
// path alone drops them all.
func cacheKey(c *gin.Context) string {
	key := c.Request.URL.Path
	if raw := c.Request.URL.RawQuery; raw != "" {
		key += "?" + raw
	}
	return key
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheResponse serves GET responses from the cache store, capturing 200
// JSON bodies on miss. Non-GET requests and non-200 responses pass through
// untouched.
func CacheResponse(store cache.Store, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)
		if body, ok := store.Get(c.Request.Context(), key); ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		if writer.Status() == http.StatusOK {
			// Best-effort: a failed write just means the next request misses too
			_ = store.Set(c.Request.Context(), key, writer.body.Bytes(), ttl)
		}
	}
}
