package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		page           int
		limit          int
		wantTotalPages int
		wantHasMore    bool
	}{
		{name: "empty result", total: 0, page: 1, limit: 24, wantTotalPages: 0, wantHasMore: false},
		{name: "single partial page", total: 10, page: 1, limit: 24, wantTotalPages: 1, wantHasMore: false},
		{name: "exact page boundary", total: 48, page: 2, limit: 24, wantTotalPages: 2, wantHasMore: false},
		{name: "more pages remain", total: 49, page: 1, limit: 24, wantTotalPages: 3, wantHasMore: true},
		{name: "middle page", total: 49, page: 2, limit: 24, wantTotalPages: 3, wantHasMore: true},
		{name: "last short page", total: 49, page: 3, limit: 24, wantTotalPages: 3, wantHasMore: false},
		{name: "three events two per page", total: 3, page: 1, limit: 2, wantTotalPages: 2, wantHasMore: true},
		{name: "total equals page times limit", total: 4, page: 2, limit: 2, wantTotalPages: 2, wantHasMore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.wantTotalPages, p.TotalPages)
			assert.Equal(t, tt.wantHasMore, p.HasMore)
		})
	}
}
