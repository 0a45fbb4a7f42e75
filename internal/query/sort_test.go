package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSort(t *testing.T) {
	tests := []struct {
		name    string
		sortBy  string
		sortDir string
		want    SortSpec
	}{
		{name: "allowed key asc", sortBy: "rating", sortDir: "asc", want: SortSpec{Column: "rating", Direction: DirAsc}},
		{name: "allowed key desc", sortBy: "applied_at", sortDir: "desc", want: SortSpec{Column: "applied_at", Direction: DirDesc}},
		{name: "direction case-insensitive", sortBy: "full_name", sortDir: "ASC", want: SortSpec{Column: "full_name", Direction: DirAsc}},
		{name: "unknown key falls back", sortBy: "password_hash", sortDir: "asc", want: SortSpec{Column: "created_at", Direction: DirAsc}},
		{name: "unknown direction falls back", sortBy: "rating", sortDir: "sideways", want: SortSpec{Column: "rating", Direction: DirDesc}},
		{name: "both missing", sortBy: "", sortDir: "", want: SortSpec{Column: "created_at", Direction: DirDesc}},
		{name: "injection attempt", sortBy: "created_at; DROP TABLE applications", sortDir: "desc", want: SortSpec{Column: "created_at", Direction: DirDesc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSort(tt.sortBy, tt.sortDir, ApplicationSchema)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "created_at DESC", SortSpec{Column: "created_at", Direction: DirDesc}.OrderClause())
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, DefaultPageSize},
		{-3, 10, 1, 10},
		{2, 500, 2, MaxPageSize},
		{5, 25, 5, 25},
	}
	for _, tt := range tests {
		p, s := ClampPage(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, p)
		assert.Equal(t, tt.wantSize, s)
	}
}
