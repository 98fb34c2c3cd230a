package pagination

import "testing"

func TestNormalizeDefaultsAndCaps(t *testing.T) {
	p := Params{}.Normalize(CatalogPageSize)
	if p.Page != 1 || p.Limit != CatalogPageSize {
		t.Fatalf("unexpected normalized params %+v", p)
	}

	p = Params{Page: 3, Limit: 500}.Normalize(CatalogPageSize)
	if p.Limit != MaxLimit {
		t.Fatalf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
	if p.Page != 3 {
		t.Fatalf("page should be preserved, got %d", p.Page)
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 1, Limit: 12}
	if got := p.Offset(); got != 0 {
		t.Fatalf("expected offset 0 for page 1, got %d", got)
	}
	p = Params{Page: 4, Limit: 12}
	if got := p.Offset(); got != 36 {
		t.Fatalf("expected offset 36 for page 4, got %d", got)
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(37, Params{Page: 1, Limit: 12})
	if meta.TotalPages != 4 {
		t.Fatalf("expected 4 total pages for 37 rows, got %d", meta.TotalPages)
	}
	if !meta.HasMore {
		t.Fatalf("expected hasMore on page 1 of 4")
	}

	meta = NewMeta(37, Params{Page: 4, Limit: 12})
	if meta.HasMore {
		t.Fatalf("expected hasMore false on the final page")
	}

	meta = NewMeta(0, Params{Page: 1, Limit: 10})
	if meta.TotalPages != 0 || meta.HasMore {
		t.Fatalf("empty result should have no pages, got %+v", meta)
	}
}
