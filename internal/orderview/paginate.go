package orderview

// Ellipsis marks a collapsed run in a compressed page-number list.
const Ellipsis = -1

// Paginate returns the window [(page-1)*size, page*size) of items. An
// out-of-range page yields an empty slice; callers keep their current page
// unchanged in that case (see ValidPage).
func Paginate[T any](items []T, size, page int) []T {
	if size <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages is ceil(n/size).
func TotalPages(n, size int) int {
	if size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ValidPage reports whether page is within [1, totalPages]. Page changes to
// invalid targets are no-ops.
func ValidPage(page, totalPages int) bool {
	return page >= 1 && page <= totalPages
}

// PageNumbers compresses the page list for display. All pages are shown when
// there are at most five; otherwise the first four plus the last page near
// the start, the mirror image near the end, and first + window of three
// around the current page + last in the middle. Ellipsis entries separate
// the runs.
func PageNumbers(totalPages, current int) []int {
	if totalPages <= 5 {
		pages := make([]int, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			pages = append(pages, p)
		}
		return pages
	}

	switch {
	case current <= 3:
		return []int{1, 2, 3, 4, Ellipsis, totalPages}
	case current >= totalPages-2:
		return []int{1, Ellipsis, totalPages - 3, totalPages - 2, totalPages - 1, totalPages}
	default:
		return []int{1, Ellipsis, current - 1, current, current + 1, Ellipsis, totalPages}
	}
}
