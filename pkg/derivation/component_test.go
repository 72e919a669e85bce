// Copyright 2025 Certen Protocol

package derivation

import "testing"

func TestNewUnsecurifiedRejectsOutOfRange(t *testing.T) {
	if _, err := NewUnsecurified(halfSpaceSize + 1); err == nil {
		t.Fatal("expected error for out-of-range base")
	}
	if _, err := NewUnsecurified(halfSpaceSize); err != nil {
		t.Fatalf("boundary value should be accepted: %v", err)
	}
}

func TestHardenedEncodingDiffersBySpace(t *testing.T) {
	u, err := NewUnsecurified(0)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSecurified(0)
	if err != nil {
		t.Fatal(err)
	}
	if u.Hardened() == s.Hardened() {
		t.Fatal("unsecurified and securified base 0 must hash to different hardened values")
	}
	if s.Hardened()-u.Hardened() != halfSpaceSize {
		t.Fatalf("securified offset should be exactly halfSpaceSize, got %d", s.Hardened()-u.Hardened())
	}
}

func TestAddNAdvancesWithinSpace(t *testing.T) {
	c, _ := NewUnsecurified(5)
	next := c.AddN(3)
	if next.Base() != 8 {
		t.Fatalf("expected base 8, got %d", next.Base())
	}
}

func TestAddNPanicsOnBoundaryCross(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic crossing half-space boundary")
		}
	}()
	c, _ := NewUnsecurified(halfSpaceSize)
	c.AddN(1)
}

func TestLessOnlyMeaningfulWithinSameSpace(t *testing.T) {
	u, _ := NewUnsecurified(1)
	s, _ := NewSecurified(0)
	if u.Less(s) || s.Less(u) {
		t.Fatal("cross-space comparisons must report false both ways")
	}
}
