package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate_LastPageShorter(t *testing.T) {
	items := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7"}

	pages := Paginate(items, 3)

	assert.Len(t, pages, 3)
	assert.Equal(t, []string{"t1", "t2", "t3"}, pages[0])
	assert.Equal(t, []string{"t4", "t5", "t6"}, pages[1])
	assert.Equal(t, []string{"t7"}, pages[2])
}

func TestPaginate_EmptyHasNoPages(t *testing.T) {
	pages := Paginate([]string{}, 5)

	assert.Empty(t, pages)
	assert.NotNil(t, pages)
	assert.Equal(t, 0, PageCount(0, 5))
}

func TestPaginate_ExactMultiple(t *testing.T) {
	pages := Paginate([]int{1, 2, 3, 4, 5, 6, 7, 8}, 4)

	assert.Equal(t, [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}}, pages)
}

func TestPaginate_NonPositiveSize(t *testing.T) {
	assert.Empty(t, Paginate([]int{1, 2}, 0))
	assert.Empty(t, Paginate([]int{1, 2}, -3))
}

func TestPaginate_PageAppendDoesNotClobberNext(t *testing.T) {
	items := []int{1, 2, 3, 4}
	pages := Paginate(items, 2)

	_ = append(pages[0], 99)

	assert.Equal(t, []int{3, 4}, pages[1])
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{7, 3, 3},
		{6, 6, 1},
		{1, 10, 1},
		{11, 10, 2},
		{0, 4, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.n, tt.size), "PageCount(%d, %d)", tt.n, tt.size)
	}
}

func TestValidPageSize(t *testing.T) {
	for _, n := range []int{4, 6, 8, 10} {
		assert.True(t, ValidPageSize(n), n)
	}
	for _, n := range []int{0, 3, 5, 12} {
		assert.False(t, ValidPageSize(n), n)
	}
	assert.True(t, ValidPageSize(DefaultPageSize))
}
