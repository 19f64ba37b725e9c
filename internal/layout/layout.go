// Package layout splits the task list into fixed-size pages for printing.
package layout

import (
	"errors"
	"slices"
)

var ErrInvalidPageSize = errors.New("invalid page size")

// PageSizes are the tasks-per-page choices offered to parents.
var PageSizes = []int{4, 6, 8, 10}

const DefaultPageSize = 6

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// PageCount returns ceil(n / pageSize), or 0 when either is not positive.
func PageCount(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns contiguous slices of items, each pageSize long except
// possibly the last. An empty list has no pages. Pages share the backing
// array of items; callers treat them as read-only.
func Paginate[T any](items []T, pageSize int) [][]T {
	count := PageCount(len(items), pageSize)
	pages := make([][]T, 0, count)
	for i := 0; i < count; i++ {
		start := i * pageSize
		end := min(start+pageSize, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}
