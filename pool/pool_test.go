package pool

import "testing"

func TestRentReturnsZeroLengthWithCapacity(t *testing.T) {
	s := Rent[int](10)
	if len(s) != 0 {
		t.Errorf("len = %d, want 0", len(s))
	}
	if cap(s) < 10 {
		t.Errorf("cap = %d, want >= 10", cap(s))
	}
}

func TestReleaseThenRentReusesBackingArray(t *testing.T) {
	s := Rent[string](8)
	s = append(s, "a", "b")
	backing := &s[0]
	Release(s)

	s2 := Rent[string](8)
	if len(s2) != 0 {
		t.Errorf("len = %d, want 0", len(s2))
	}
	s2 = append(s2, "x")
	if &s2[0] != backing {
		t.Skip("pool did not reuse the released backing array (sync.Pool may have dropped it under GC pressure); not a correctness failure")
	}
}

func TestDoubleCopiesContentsAndGrows(t *testing.T) {
	s := Rent[int](2)
	s = append(s, 1, 2)
	grown := Double(s)
	if cap(grown) < 4 {
		t.Errorf("cap = %d, want >= 4", cap(grown))
	}
	if len(grown) != 2 || grown[0] != 1 || grown[1] != 2 {
		t.Errorf("grown = %v, want [1 2]", grown)
	}
}

func TestReleaseNilIsSafe(t *testing.T) {
	Release[int](nil)
}

func TestPoolHygiene(t *testing.T) {
	// Rent/release many times in sequence; each rental must accept an
	// append and be releasable without panicking.
	for i := 0; i < 100; i++ {
		s := Rent[byte](16)
		s = append(s, byte(i))
		Release(s)
	}
}
