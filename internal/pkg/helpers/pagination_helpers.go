package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Pages are 1-based
)

// ParsePaginationParams extracts and validates page/limit query parameters.
func ParsePaginationParams(c *gin.Context) (page, limit int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limitStr := c.DefaultQuery("limit", "10")
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	return page, limit
}

// CalculateOffsetLimit converts a 1-based page into a SQL offset and limit.
func CalculateOffsetLimit(page, limit int) (offset uint64, lim int) {
	if limit <= 0 || limit > MaxPageSize {
		lim = DefaultPageSize
	} else {
		lim = limit
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * lim)
	return offset, lim
}

// NewPaginationInfo builds next/prev page descriptors for the response
// envelope. Next is present when more items remain past this page, prev when
// the page is past the first.
func NewPaginationInfo(totalItems int64, page, limit int) *dto.PaginationInfo {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	info := &dto.PaginationInfo{}
	if int64(page*limit) < totalItems {
		info.Next = &dto.PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		info.Prev = &dto.PageRef{Page: page - 1, Limit: limit}
	}

	if info.Next == nil && info.Prev == nil {
		return nil
	}
	return info
}
