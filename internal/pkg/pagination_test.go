package pkg

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateNumPages(t *testing.T) {
	cases := []struct {
		total    int64
		size     int
		numPages int
		lastLen  int
	}{
		{total: 25, size: 10, numPages: 3, lastLen: 5},
		{total: 30, size: 10, numPages: 3, lastLen: 10},
		{total: 1, size: 10, numPages: 1, lastLen: 1},
		{total: 10, size: 10, numPages: 1, lastLen: 10},
		{total: 11, size: 10, numPages: 2, lastLen: 1},
		{total: 0, size: 10, numPages: 1, lastLen: 0},
	}

	for _, tc := range cases {
		page := Paginate("1", tc.total, tc.size)
		assert.Equal(t, tc.numPages, page.NumPages, "total=%d size=%d", tc.total, tc.size)

		last := Paginate(strconv.Itoa(tc.numPages), tc.total, tc.size)
		remaining := tc.total - int64(last.Offset)
		if remaining > int64(tc.size) {
			remaining = int64(tc.size)
		}
		assert.Equal(t, int64(tc.lastLen), remaining, "total=%d size=%d", tc.total, tc.size)
	}
}

func TestPaginateFirstPage(t *testing.T) {
	page := Paginate("1", 25, 10)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, 10, page.Limit)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestPaginateMiddlePage(t *testing.T) {
	page := Paginate("2", 25, 10)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 10, page.Offset)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrevious)
}

func TestPaginateLastPage(t *testing.T) {
	page := Paginate("3", 25, 10)
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, 20, page.Offset)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrevious)
}

// 超出范围的页码收敛到最后一页，非数字回第一页
func TestPaginateClamping(t *testing.T) {
	page := Paginate("999", 25, 10)
	assert.Equal(t, 3, page.Number)

	page = Paginate("0", 25, 10)
	assert.Equal(t, 3, page.Number)

	page = Paginate("-1", 25, 10)
	assert.Equal(t, 3, page.Number)

	page = Paginate("abc", 25, 10)
	assert.Equal(t, 1, page.Number)

	page = Paginate("", 25, 10)
	assert.Equal(t, 1, page.Number)
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate("1", 0, 10)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}
