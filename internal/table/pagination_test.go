package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxCurrent(t *testing.T) {
	tests := []struct {
		total, pageSize, current, want int
	}{
		{total: 0, pageSize: 10, current: 1, want: 1},
		{total: 0, pageSize: 10, current: 5, want: 1},
		{total: 25, pageSize: 10, current: 3, want: 3},
		{total: 25, pageSize: 10, current: 4, want: 3},
		{total: 20, pageSize: 10, current: 3, want: 2},
		{total: 1, pageSize: 1, current: 9, want: 1},
		{total: 100, pageSize: 7, current: 1, want: 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxCurrent(tt.total, tt.pageSize, tt.current),
			"MaxCurrent(%d, %d, %d)", tt.total, tt.pageSize, tt.current)
	}
}

func TestMaxCurrent_BoundsAndIdempotence(t *testing.T) {
	for total := 0; total <= 30; total++ {
		for pageSize := 1; pageSize <= 7; pageSize++ {
			pages := max((total+pageSize-1)/pageSize, 1)
			for current := 1; current <= 10; current++ {
				got := MaxCurrent(total, pageSize, current)
				assert.GreaterOrEqual(t, got, 1)
				assert.LessOrEqual(t, got, pages)
				assert.Equal(t, got, MaxCurrent(total, pageSize, got), "not idempotent at (%d,%d,%d)", total, pageSize, current)
			}
		}
	}
}

func TestSlice(t *testing.T) {
	data := rowsN(7)
	assert.Equal(t, []string{"1", "2", "3"}, idsOf(Slice(data, 1, 3)))
	assert.Equal(t, []string{"7"}, idsOf(Slice(data, 3, 3)))
	assert.Empty(t, Slice(data, 4, 3))
	assert.Equal(t, data, Slice(data, 2, 0), "non-positive page size disables slicing")
}

func TestPaginationState(t *testing.T) {
	s, valid := newPaginationState(nil)
	assert.True(t, valid)
	assert.Equal(t, Pagination{Current: 1, PageSize: DefaultPageSize, Total: 5}, s.effective(5))

	s, valid = newPaginationState(&PaginationConfig{DefaultCurrent: 3, DefaultPageSize: 2})
	assert.True(t, valid)
	assert.Equal(t, Pagination{Current: 3, PageSize: 2, Total: 9}, s.effective(9))
	assert.Equal(t, 2, s.effective(4).Current, "clamped against a shrunk total")

	s, valid = newPaginationState(&PaginationConfig{PageSize: -1})
	assert.False(t, valid)
	assert.Equal(t, DefaultPageSize, s.pageSize)

	s, _ = newPaginationState(&PaginationConfig{Current: 2, PageSize: 5, Total: 50})
	assert.True(t, s.currentControlled)
	assert.True(t, s.pageSizeControlled)
	assert.Equal(t, Pagination{Current: 2, PageSize: 5, Total: 50}, s.effective(5), "configured total wins")
}
