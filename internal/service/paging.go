package service

// pageWindow normalizes client paging: page starts at 1, limit defaults to
// 10 and is capped at 100. Returns (page, limit, offset).
func pageWindow(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

// totalPages for a list envelope; 0 items means 0 pages.
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
