package httpresp

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// PageParams are clamped query parameters: page >= 1, limit in [1,100].
type PageParams struct {
	Page  int
	Limit int
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func ParsePageParams(c *gin.Context) PageParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	return PageParams{Page: page, Limit: limit}
}

// NewPagination derives page metadata from a total row count.
func NewPagination(params PageParams, total int64) Pagination {
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	return Pagination{
		CurrentPage: params.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     params.Page < totalPages,
		HasPrev:     params.Page > 1,
	}
}
