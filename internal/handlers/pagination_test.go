package handlers

import "testing"

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || limit != 20 {
		t.Fatalf("expected defaults page=1 limit=20, got page=%d limit=%d", page, limit)
	}
}

func TestParsePaginationParamsRejectsInvalid(t *testing.T) {
	for _, tc := range [][2]string{{"0", "10"}, {"-1", "10"}, {"abc", "10"}, {"1", "0"}, {"1", "x"}} {
		if _, _, err := parsePaginationParams(tc[0], tc[1]); err == nil {
			t.Fatalf("expected error for page=%q pageSize=%q", tc[0], tc[1])
		}
	}
}

func TestHasNextPageWindow(t *testing.T) {
	// 15 matching records, pageSize 10: page 1 has more, page 2 does not.
	pageOneSkip := paginationSkip(1, 10)
	if !hasNextPage(15, pageOneSkip, 10) {
		t.Fatal("expected hasNext=true on page 1 of 15 records")
	}

	pageTwoSkip := paginationSkip(2, 10)
	if pageTwoSkip != 10 {
		t.Fatalf("expected skip=10 for page 2, got %d", pageTwoSkip)
	}
	if hasNextPage(15, pageTwoSkip, 5) {
		t.Fatal("expected hasNext=false on page 2 of 15 records")
	}
}

func TestHasNextPageExactBoundary(t *testing.T) {
	if hasNextPage(20, paginationSkip(2, 10), 10) {
		t.Fatal("expected hasNext=false when the page ends exactly at the total")
	}
}
