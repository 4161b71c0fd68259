package domain

import "math"

// PagedResult is one page of an ordered collection plus the total number of
// matching items across all pages.
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
}

// MaxPageSize bounds PageSize on every paged query.
const MaxPageSize = 100

// Offset is the zero-based index of the first item on the page. ok is false
// when the arguments are not positive or the index does not fit in an int.
func Offset(pageNumber, pageSize int) (offset int, ok bool) {
	if pageNumber < 1 || pageSize < 1 {
		return 0, false
	}
	if pageNumber-1 > math.MaxInt/pageSize {
		return 0, false
	}
	return (pageNumber - 1) * pageSize, true
}

// TotalPages is ceil(total/pageSize); zero when pageSize is not positive.
func (p PagedResult[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// MapPage converts the items of a page, keeping page metadata.
func MapPage[T, U any](p PagedResult[T], fn func(T) U) PagedResult[U] {
	out := PagedResult[U]{
		Items:      make([]U, 0, len(p.Items)),
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
	}
	for _, it := range p.Items {
		out.Items = append(out.Items, fn(it))
	}
	return out
}
