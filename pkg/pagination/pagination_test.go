package pagination

import "testing"

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name                  string
		page, perPage         int
		wantPage, wantPerPage int
	}{
		{"defaults applied", 0, 0, 1, 15},
		{"negative page clamps", -3, 20, 1, 20},
		{"per page capped at 100", 2, 500, 2, 100},
		{"valid values untouched", 4, 25, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PaginationParams{Page: tt.page, PerPage: tt.perPage}
			p.Validate()
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("Validate() -> page=%d per_page=%d, want page=%d per_page=%d",
					p.Page, p.PerPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 15}
	if got := p.Offset(); got != 30 {
		t.Errorf("Offset() = %d, want 30", got)
	}
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 35)
	if pag.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", pag.TotalPages)
	}
	if !pag.HasNext || !pag.HasPrev {
		t.Errorf("HasNext=%v HasPrev=%v, want both true", pag.HasNext, pag.HasPrev)
	}

	last := NewPagination(4, 10, 35)
	if last.HasNext {
		t.Error("last page should not have next")
	}
}
