package orderview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intRange(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestPaginateWindow(t *testing.T) {
	// 23 orders, page size 10, page 3 -> items 21..23
	items := intRange(23)

	page := Paginate(items, 10, 3)
	assert.Equal(t, []int{21, 22, 23}, page)
	assert.Equal(t, 3, TotalPages(23, 10))
}

func TestPaginateReconstruction(t *testing.T) {
	// concatenating all pages in order reconstructs the collection exactly once
	for _, n := range []int{0, 1, 9, 10, 11, 23, 50, 101} {
		items := intRange(n)
		total := TotalPages(n, 10)

		rebuilt := []int{}
		for p := 1; p <= total; p++ {
			rebuilt = append(rebuilt, Paginate(items, 10, p)...)
		}
		assert.Equal(t, items, rebuilt, "n=%d", n)
	}
}

func TestPaginateIdempotent(t *testing.T) {
	items := intRange(42)
	assert.Equal(t, Paginate(items, 10, 2), Paginate(items, 10, 2))
}

func TestPaginateOutOfRange(t *testing.T) {
	items := intRange(23)
	assert.Empty(t, Paginate(items, 10, 4))
	assert.Empty(t, Paginate(items, 10, 0))
	assert.Empty(t, Paginate(items, 10, -1))

	assert.False(t, ValidPage(4, 3))
	assert.False(t, ValidPage(0, 3))
	assert.True(t, ValidPage(3, 3))
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{23, 10, 3},
		{500, 50, 10},
		{501, 50, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.n, tt.size), "n=%d size=%d", tt.n, tt.size)
	}
}

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		name           string
		total, current int
		want           []int
	}{
		{"all when few", 5, 3, []int{1, 2, 3, 4, 5}},
		{"single page", 1, 1, []int{1}},
		{"near start", 10, 2, []int{1, 2, 3, 4, Ellipsis, 10}},
		{"start boundary", 10, 3, []int{1, 2, 3, 4, Ellipsis, 10}},
		{"near end", 10, 9, []int{1, Ellipsis, 7, 8, 9, 10}},
		{"middle", 10, 5, []int{1, Ellipsis, 4, 5, 6, Ellipsis, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageNumbers(tt.total, tt.current))
		})
	}
}
