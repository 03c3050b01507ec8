package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilters(t *testing.T) {
	allowed := []string{"name", "postal_code"}

	tests := []struct {
		name string
		raw  map[string]string
		want map[string]string
	}{
		{
			name: "whitelisted keys pass",
			raw:  map[string]string{"name": "Lead", "postal_code": "14"},
			want: map[string]string{"name": "Lead", "postal_code": "14"},
		},
		{
			name: "unknown keys dropped",
			raw:  map[string]string{"name": "Lead", "password": "x", "id": "1"},
			want: map[string]string{"name": "Lead"},
		},
		{
			name: "empty values dropped",
			raw:  map[string]string{"name": ""},
			want: nil,
		},
		{
			name: "empty input",
			raw:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilters(tt.raw, allowed))
		})
	}
}

func TestSanitizeSort(t *testing.T) {
	allowed := []string{"name", "postal_code"}

	tests := []struct {
		raw  string
		want Sort
	}{
		{"name", Sort{Field: "name", Direction: "ASC"}},
		{"-name", Sort{Field: "name", Direction: "DESC"}},
		{"+name", Sort{Field: "name", Direction: "ASC"}},
		{"name:desc", Sort{Field: "name", Direction: "DESC"}},
		{"name:asc", Sort{Field: "name", Direction: "ASC"}},
		{"postal_code", Sort{Field: "postal_code", Direction: "ASC"}},
		{"secret_column", Sort{}},
		{"-secret_column", Sort{}},
		{"", Sort{}},
		{"   ", Sort{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeSort(tt.raw, allowed))
		})
	}
}

func TestSortOrderBy(t *testing.T) {
	assert.Equal(t, "name DESC", Sort{Field: "name", Direction: "DESC"}.OrderBy())
	assert.Equal(t, "", Sort{}.OrderBy())
}

func TestSanitizePagination(t *testing.T) {
	tests := []struct {
		name        string
		rawPerPage  string
		rawPage     string
		wantPerPage int
		wantPage    int
	}{
		{"defaults", "", "", DefaultPerPage, 1},
		{"explicit", "25", "3", 25, 3},
		{"per page capped", "1000", "1", MaxPerPage, 1},
		{"garbage falls back", "abc", "-2", DefaultPerPage, 1},
		{"zero falls back", "0", "0", DefaultPerPage, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perPage, page := SanitizePagination(tt.rawPerPage, tt.rawPage)
			assert.Equal(t, tt.wantPerPage, perPage)
			assert.Equal(t, tt.wantPage, page)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(10, 1))
	assert.Equal(t, 20, Offset(10, 3))
	assert.Equal(t, 0, Offset(10, 0))
}
