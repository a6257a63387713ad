package services

import "math"

type Page struct {
	Page  int
	Limit int
}

func (p Page) normalize(defaultLimit int) Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

func (p Page) offset() int {
	return (p.Page - 1) * p.Limit
}

type PageMeta struct {
	Total        int64 `json:"total"`
	CurrentPage  int   `json:"currentPage"`
	Limit        int   `json:"limit"`
	HasPrevPage  bool  `json:"hasPrevPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	PreviousPage int   `json:"previousPage"`
	NextPage     int   `json:"nextPage"`
}

func newPageMeta(p Page, total int64) PageMeta {
	totalPages := int(math.Ceil(float64(total) / float64(p.Limit)))
	return PageMeta{
		Total:        total,
		CurrentPage:  p.Page,
		Limit:        p.Limit,
		HasPrevPage:  p.Page > 1,
		HasNextPage:  totalPages > p.Page,
		PreviousPage: p.Page - 1,
		NextPage:     p.Page + 1,
	}
}
