package game

import (
	"testing"
	"time"
)

func TestClock_CarriesRemainder(t *testing.T) {
	c := NewClock(16 * time.Millisecond)
	if n := c.Advance(40 * time.Millisecond); n != 2 {
		t.Fatalf("expected 2 fires, got %d", n)
	}
	if c.Pending() != 8*time.Millisecond {
		t.Fatalf("expected 8ms pending, got %s", c.Pending())
	}
	if n := c.Advance(8 * time.Millisecond); n != 1 {
		t.Fatalf("expected remainder to complete one interval, got %d", n)
	}
	if c.Pending() != 0 {
		t.Fatalf("expected nothing pending, got %s", c.Pending())
	}
}

func TestClock_IgnoresNonPositive(t *testing.T) {
	c := NewClock(0)
	if n := c.Advance(time.Second); n != 0 {
		t.Fatalf("zero-interval clock must never fire, got %d", n)
	}
	c = NewClock(time.Millisecond)
	if n := c.Advance(-time.Second); n != 0 || c.Pending() != 0 {
		t.Fatalf("negative elapsed must be ignored, got n=%d pending=%s", n, c.Pending())
	}
}
