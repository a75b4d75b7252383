package repository

import "testing"

func TestProductOrderClause(t *testing.T) {
	cases := []struct {
		sortBy    string
		sortOrder string
		want      string
	}{
		{"", "", "created_at DESC"},
		{"name", "asc", "name ASC"},
		{"selling_price", "DESC", "selling_price DESC"},
		// unknown columns and raw SQL fall back to the default
		{"secret_column", "", "created_at DESC"},
		{"name; DROP TABLE products", "ASC", "created_at ASC"},
		{"created_at", "descending", "created_at DESC"},
	}

	for _, tc := range cases {
		if got := productOrderClause(tc.sortBy, tc.sortOrder); got != tc.want {
			t.Errorf("productOrderClause(%q, %q) = %q, want %q", tc.sortBy, tc.sortOrder, got, tc.want)
		}
	}
}
