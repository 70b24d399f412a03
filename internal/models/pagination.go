package models

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Pagination is 1-based page/limit paging shared by list endpoints.
type Pagination struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize clamps page and limit into their allowed ranges.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset is the row offset for the current page.
func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// ListResult is a page of items with the total count across all pages.
type ListResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewListResult wraps items in a ListResult, never returning a nil slice.
func NewListResult[T any](items []T, total int, p Pagination) ListResult[T] {
	if items == nil {
		items = []T{}
	}
	n := p.Normalize()
	return ListResult[T]{Items: items, Total: total, Page: n.Page, Limit: n.Limit}
}
