package question

import "strconv"

// ParsePage reads a 1-based page number from a query value.
// Absent or non-numeric input yields 1; zero and negative pages are clamped to 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate returns items[(page-1)*size : page*size] clamped to the bounds of items.
// A page past the end yields an empty slice. The input slice is never modified,
// and the returned slice does not share its backing array.
func Paginate[T any](page, size int, items []T) []T {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		return []T{}
	}

	if page-1 > len(items)/size {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
