package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Pagination carries the page/per_page query params for list endpoints.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

func PaginationFromQuery(c *gin.Context) Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	return Pagination{Page: page, PerPage: perPage}
}

// Scope returns a gorm scope applying the offset/limit of this page.
func (p Pagination) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((p.Page - 1) * p.PerPage).Limit(p.PerPage)
	}
}
