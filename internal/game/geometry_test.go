package game

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Fatalf("expected 5, got %f", d)
	}
	if d := Distance(-2, 7, -2, 7); d != 0 {
		t.Fatalf("expected 0 for identical points, got %f", d)
	}
}

func TestCirclesOverlap_Symmetric(t *testing.T) {
	cases := []struct {
		ax, ay, ra, bx, by, rb float64
	}{
		{0, 0, 5, 3, 0, 5},
		{0, 0, 5, 30, 0, 5},
		{100, 100, 15, 112, 109, 5},
		{-10, 4, 1, 400, 300, 200},
	}
	for _, c := range cases {
		ab := CirclesOverlap(c.ax, c.ay, c.ra, c.bx, c.by, c.rb)
		ba := CirclesOverlap(c.bx, c.by, c.rb, c.ax, c.ay, c.ra)
		if ab != ba {
			t.Errorf("overlap not symmetric for %+v: %v vs %v", c, ab, ba)
		}
	}
}

func TestCirclesOverlap_TangentIsNotOverlap(t *testing.T) {
	// 3-4-5 triangle: centres exactly 25 apart, radii sum to 25.
	if CirclesOverlap(0, 0, 15, 15, 20, 10) {
		t.Fatal("tangent circles must not overlap")
	}
	if !CirclesOverlap(0, 0, 15, 15, 20, 10.001) {
		t.Fatal("circles just inside tangency should overlap")
	}
}

func TestClampHelpers(t *testing.T) {
	if v := clamp(-1, 0, 10); v != 0 {
		t.Errorf("clamp low: got %f", v)
	}
	if v := clamp(11, 0, 10); v != 10 {
		t.Errorf("clamp high: got %f", v)
	}
	if v := clampInt(55, 0, 50); v != 50 {
		t.Errorf("clampInt high: got %d", v)
	}
	if v := radToDeg(degToRad(135)); math.Abs(v-135) > 1e-9 {
		t.Errorf("deg/rad round trip drifted: %f", v)
	}
}
