package service

// Pagination rules shared by every listing endpoint.
//
// page and pageSize arrive as query strings; anything non-numeric or
// non-positive is clamped to the defaults instead of propagating a bogus
// offset. Out-of-range pages are not an error — they return an empty item
// list with the correct total/totalPages so a client can safely page past
// the end.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Paginated is the listing envelope returned by every list/search endpoint.
type Paginated[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// clampPaging normalizes page/pageSize to sane values.
func clampPaging(page, pageSize int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// paginate slices one page out of an in-memory collection.
func paginate[T any](items []T, page, pageSize int) Paginated[T] {
	page, pageSize = clampPaging(page, pageSize)

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	// Always a non-nil slice — the JSON must be [] rather than null.
	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	return Paginated[T]{
		Items:      pageItems,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
