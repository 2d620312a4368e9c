package handlers

import "testing"

func TestOrderDisplayNameStartsAt1000(t *testing.T) {
	if got := orderDisplayName(1); got != "SD-#1000" {
		t.Fatalf("expected first order to be named SD-#1000, got %s", got)
	}
	if got := orderDisplayName(2); got != "SD-#1001" {
		t.Fatalf("expected second order to be named SD-#1001, got %s", got)
	}
}

func TestOrderDisplayNameStrictlyIncreasing(t *testing.T) {
	previous := ""
	for seq := int64(1); seq <= 50; seq++ {
		name := orderDisplayName(seq)
		if name <= previous && previous != "" {
			t.Fatalf("expected names to increase, got %s after %s", name, previous)
		}
		previous = name
	}
}
