package helpers

import (
	"net/http"
	"net/url"
	"strconv"

	"virtualconf/internal/domain"
)

// Pagination limits. A missing page_size selects every item.
const (
	DefaultPage = 1
	MaxPageSize = 500
)

// ParsePagination reads page and page_size from the query string. Invalid
// values fall back to page 1 and no page size.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.PaginationParams{
		Page:     positiveInt(q, "page", DefaultPage),
		PageSize: min(positiveInt(q, "page_size", 0), MaxPageSize),
	}
}

func positiveInt(q url.Values, key string, fallback int) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta for p over total items. Without a
// page size everything fits on one page.
func NewPaginationMeta(p domain.PaginationParams, total int) PaginationMeta {
	totalPages := 1
	if p.PageSize > 0 {
		totalPages = (total + p.PageSize - 1) / p.PageSize
	}
	return PaginationMeta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
