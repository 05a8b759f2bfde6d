package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestNewClampsValues(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 20, 1, 20},
		{"limit above max", 2, 500, 2, 100},
		{"limit at max", 1, 100, 1, 100},
		{"normal", 4, 25, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.page, tt.limit)
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit {
				t.Fatalf("New(%d, %d) = %+v, want page=%d limit=%d", tt.page, tt.limit, p, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/cases?page=3&limit=50", nil)
	p := FromRequest(r)
	if p.Page != 3 || p.Limit != 50 {
		t.Fatalf("unexpected params: %+v", p)
	}

	r = httptest.NewRequest("GET", "/api/v1/cases?page=abc&limit=-1", nil)
	p = FromRequest(r)
	if p.Page != 1 || p.Limit != 10 {
		t.Fatalf("unexpected params for bad input: %+v", p)
	}
}

func TestOffsetAndMeta(t *testing.T) {
	p := New(3, 20)
	if p.Offset() != 40 {
		t.Fatalf("unexpected offset: %d", p.Offset())
	}

	meta := p.Meta(41)
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 41 rows at limit 20, got %d", meta.TotalPages)
	}
	if meta.Total != 41 || meta.Page != 3 || meta.Limit != 20 {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	if got := New(1, 10).Meta(0).TotalPages; got != 0 {
		t.Fatalf("expected 0 pages for empty set, got %d", got)
	}
}
