package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Pagination carries the page window of a list query plus the totals filled
// in by the repository.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalRows  int64 `json:"total_rows"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationFromQuery reads page/page_size from the request, clamping to
// sane bounds.
func NewPaginationFromQuery(c *gin.Context) *Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return &Pagination{Page: page, PageSize: pageSize}
}

func (p *Pagination) GetOffset() int {
	return (p.Page - 1) * p.PageSize
}

func (p *Pagination) GetLimit() int {
	return p.PageSize
}

// SetTotal records the row count and derives the page count.
func (p *Pagination) SetTotal(totalRows int64) {
	p.TotalRows = totalRows
	p.TotalPages = int((totalRows + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// Paginate is a gorm scope applying the pagination window.
func Paginate(p *Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.GetOffset()).Limit(p.GetLimit())
	}
}
