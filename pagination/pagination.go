package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Meta describes the page that was returned
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Params reads page/per_page query parameters with clamping
func Params(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))
	return Clamp(page, perPage)
}

// Clamp enforces page >= 1 and 1 <= perPage <= MaxPerPage
func Clamp(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// Apply counts the query, fetches one page into dest, and returns the meta.
// dest must be a pointer to a slice of the queried model.
func Apply(query *gorm.DB, dest interface{}, page, perPage int) (Meta, error) {
	page, perPage = Clamp(page, perPage)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Meta{}, err
	}

	if err := query.Offset((page - 1) * perPage).Limit(perPage).Find(dest).Error; err != nil {
		return Meta{}, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return Meta{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}, nil
}
