package dto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	for _, tt := range []struct {
		name  string
		page  int
		limit int
		total int64
		want  Pagination
	}{
		{
			name: "first of three pages", page: 1, limit: 10, total: 25,
			want: Pagination{CurrentPage: 1, TotalPages: 3, TotalItems: 25, ItemsPerPage: 10, HasNextPage: true, HasPrevPage: false},
		},
		{
			name: "middle page", page: 2, limit: 10, total: 25,
			want: Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 25, ItemsPerPage: 10, HasNextPage: true, HasPrevPage: true},
		},
		{
			name: "last page", page: 3, limit: 10, total: 25,
			want: Pagination{CurrentPage: 3, TotalPages: 3, TotalItems: 25, ItemsPerPage: 10, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "empty result", page: 1, limit: 10, total: 0,
			want: Pagination{CurrentPage: 1, TotalPages: 0, TotalItems: 0, ItemsPerPage: 10, HasNextPage: false, HasPrevPage: false},
		},
		{
			name: "defaults applied", page: 0, limit: 0, total: 5,
			want: Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 5, ItemsPerPage: 10, HasNextPage: false, HasPrevPage: false},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, &tt.want, NewPagination(tt.page, tt.limit, tt.total))
		})
	}
}

func TestListQueryNormalize(t *testing.T) {
	q := &ListQueryDTO{}
	q.Normalize()
	require.Equal(t, 1, q.Page)
	require.Equal(t, 10, q.Limit)

	q = &ListQueryDTO{Page: 3, Limit: 500}
	q.Normalize()
	require.Equal(t, 3, q.Page)
	require.Equal(t, 100, q.Limit) // 上限截断
}
