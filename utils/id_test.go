package utils

import "testing"

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(6)
	if err != nil {
		t.Fatalf("RandomHex() error = %v", err)
	}
	if len(a) != 12 {
		t.Errorf("len = %d, want 12", len(a))
	}
	b, _ := RandomHex(6)
	if a == b {
		t.Error("two calls returned the same value")
	}
	if _, err := RandomHex(0); err == nil {
		t.Error("RandomHex(0) expected error")
	}
}
