package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(0, 0)
	if p.Page != 1 || p.Limit != DefaultLimit {
		t.Fatalf("expected page=1 limit=%d, got %+v", DefaultLimit, p)
	}
}

func TestNormalizeCapsLimit(t *testing.T) {
	p := Normalize(3, 10_000)
	if p.Limit != MaxLimit {
		t.Fatalf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
	if p.Page != 3 {
		t.Fatalf("page should pass through, got %d", p.Page)
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 1, Limit: 20}).Offset(); got != 0 {
		t.Fatalf("page 1 offset should be 0, got %d", got)
	}
	if got := (Params{Page: 2, Limit: 20}).Offset(); got != 20 {
		t.Fatalf("page 2 offset should be 20, got %d", got)
	}
}

func TestNewMetaCeilsTotalPages(t *testing.T) {
	meta := NewMeta(Params{Page: 2, Limit: 20}, 25)
	if meta.TotalPages != 2 {
		t.Fatalf("25 records at limit 20 should be 2 pages, got %d", meta.TotalPages)
	}
	if meta.Total != 25 {
		t.Fatalf("unexpected total %d", meta.Total)
	}

	empty := NewMeta(Params{Page: 1, Limit: 20}, 0)
	if empty.TotalPages != 0 {
		t.Fatalf("0 records should yield 0 pages, got %d", empty.TotalPages)
	}

	exact := NewMeta(Params{Page: 1, Limit: 20}, 40)
	if exact.TotalPages != 2 {
		t.Fatalf("40 records at limit 20 should be 2 pages, got %d", exact.TotalPages)
	}
}
