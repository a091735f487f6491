package models

// PageRequest is a zero-based page plus page size. Normalize clamps
// nonsense values so repos can trust it.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

const defaultPageSize = 20

func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > 200 {
		p.Size = 200
	}
	return p
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is a paginated result with the store-side total.
type Page[T any] struct {
	Items         []T   `json:"items"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
}

func NewPage[T any](items []T, req PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:         items,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
	}
}
