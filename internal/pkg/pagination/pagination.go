package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Meta is the pagination block of list responses.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Parse reads ?page and ?limit, falling back to 1 and DefaultLimit and
// capping limit at MaxLimit.
func Parse(c *gin.Context) (page, limit int) {
	page, limit = 1, DefaultLimit
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}
	return page, limit
}

func NewMeta(page, limit int, total int64) Meta {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Meta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}
