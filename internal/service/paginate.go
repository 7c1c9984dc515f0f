package service

import "tourops/internal/domain"

// DefaultPageSize is the page size the dashboard list view uses.
const DefaultPageSize = 10

// Page is one slice of a filtered reservation list plus paging metadata.
type Page struct {
	Items      []*domain.Reservation
	PageIndex  int // 1-based, after clamping
	TotalPages int // 0 when the list is empty
	StartIndex int // offset of the first item within the full list
}

// Paginate slices a filtered list into fixed-size pages. The page index is
// 1-based and is clamped to [1, max(totalPages, 1)] on every call, so a stale
// index into a shrunk list can never produce an out-of-range slice.
func Paginate(list []*domain.Reservation, pageSize, pageIndex int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := 0
	if len(list) > 0 {
		totalPages = (len(list) + pageSize - 1) / pageSize
	}

	if pageIndex < 1 {
		pageIndex = 1
	}
	if totalPages > 0 && pageIndex > totalPages {
		pageIndex = totalPages
	}
	if totalPages == 0 {
		pageIndex = 1
	}

	startIndex := (pageIndex - 1) * pageSize
	endIndex := startIndex + pageSize
	if endIndex > len(list) {
		endIndex = len(list)
	}

	items := []*domain.Reservation{}
	if startIndex < len(list) {
		items = list[startIndex:endIndex]
	}

	return Page{
		Items:      items,
		PageIndex:  pageIndex,
		TotalPages: totalPages,
		StartIndex: startIndex,
	}
}
