package pagination

// Paginate returns the items on the given 1-based page and the total page count.
// Page 1 covers items [0, pageSize). No clamping is done: a page outside
// [1, totalPages] yields an empty slice. A non-positive pageSize puts every
// item on a single page.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = len(items)
		if pageSize == 0 {
			return []T{}, 0
		}
	}

	totalPages := TotalPages(len(items), pageSize)
	if page < MinPage || page > totalPages {
		return []T{}, totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// TotalPages returns ceil(count / pageSize), or 0 when there is nothing to show.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	pages := count / pageSize
	if count%pageSize > 0 {
		pages++
	}
	return pages
}

// ClampPage moves page into [1, totalPages]. With no pages at all it returns 1.
func ClampPage(page, totalPages int) int {
	if page < MinPage || totalPages < MinPage {
		return MinPage
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
