package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDayCollapsesClockTimes(t *testing.T) {
	morning := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	night := time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, NormalizeDay(morning), NormalizeDay(night))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), NormalizeDay(night))
}

func TestNormalizeDayConvertsToUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 02:00 IST on March 3rd is still March 2nd in UTC.
	local := time.Date(2026, 3, 3, 2, 0, 0, 0, ist)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), NormalizeDay(local))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, ParseDuration("90s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 10},
		{"page=3&limit=25", 3, 25},
		{"page=0&limit=0", 1, 10},
		{"page=-2&limit=1000", 1, 10},
		{"page=abc&limit=xyz", 1, 10},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/?"+tc.query, nil)

		page, limit := ParsePaginationParams(c)
		assert.Equal(t, tc.wantPage, page, tc.query)
		assert.Equal(t, tc.wantLimit, limit, tc.query)
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 10)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 10, limit)

	offset, limit = CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, 20, limit)

	// Out-of-range inputs fall back to defaults.
	offset, limit = CalculateOffsetLimit(0, 500)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 10, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(35, 2, 10)
	require.NotNil(t, info)
	require.NotNil(t, info.Next)
	require.NotNil(t, info.Prev)
	assert.Equal(t, 3, info.Next.Page)
	assert.Equal(t, 1, info.Prev.Page)

	// Last page has no next.
	info = NewPaginationInfo(35, 4, 10)
	require.NotNil(t, info)
	assert.Nil(t, info.Next)
	require.NotNil(t, info.Prev)

	// Everything fits on one page.
	assert.Nil(t, NewPaginationInfo(5, 1, 10))
}
