package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 32; i++ {
		if x, y := a.IntRange(3, 9), b.IntRange(3, 9); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 1000; i++ {
		if v := r.IntRange(2, 4); v < 2 || v > 4 {
			t.Fatalf("IntRange(2,4) = %d", v)
		}
		if v := r.FloatRange(-1, 1); v < -1 || v >= 1 {
			t.Fatalf("FloatRange(-1,1) = %f", v)
		}
	}
	if v := r.IntRange(5, 5); v != 5 {
		t.Fatalf("degenerate range returned %d", v)
	}
	if v := r.FloatRange(2, 1); v != 2 {
		t.Fatalf("inverted range returned %f", v)
	}
}
