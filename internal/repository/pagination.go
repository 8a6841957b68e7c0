package repository

import "talently/internal/pkg/pagination"

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// Normalize applies the default and maximum page size shared with the
// request parser.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = pagination.DefaultLimit
	}
	if p.Limit > pagination.MaxLimit {
		p.Limit = pagination.MaxLimit
	}
	return p
}

func (p Page) offset() int {
	return (p.Page - 1) * p.Limit
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '\\' || c == '%' || c == '_' {
			r = append(r, '\\')
		}
		r = append(r, c)
	}
	return string(r)
}
