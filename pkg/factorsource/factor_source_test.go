// Copyright 2025 Certen Protocol

package factorsource

import (
	"testing"
	"time"
)

func mk(kind Kind, lastUsed time.Time) FactorSource {
	return FactorSource{ID: NewHashID(kind, []byte(kind.String())), LastUsed: lastUsed}
}

func TestSortOrdersByKindThenLastUsed(t *testing.T) {
	now := time.Now()
	sources := []FactorSource{
		mk(KindDevice, now),
		mk(KindLedger, now.Add(time.Hour)),
		mk(KindLedger, now),
	}
	Sort(sources)
	if sources[0].ID.Kind != KindLedger || !sources[0].LastUsed.Equal(now) {
		t.Fatalf("expected oldest Ledger first, got %+v", sources[0])
	}
	if sources[1].ID.Kind != KindLedger {
		t.Fatalf("expected Ledger second, got %+v", sources[1])
	}
	if sources[2].ID.Kind != KindDevice {
		t.Fatalf("expected Device last, got %+v", sources[2])
	}
}

func TestGroupByKindPreservesInsertionOrderAndSkipsNonSigning(t *testing.T) {
	now := time.Now()
	a := mk(KindDevice, now)
	b := mk(KindDevice, now)
	b.ID = NewHashID(KindDevice, []byte("other-device"))
	password := mk(KindPassword, now)

	groups := GroupByKind([]FactorSource{a, password, b})
	var deviceGroup *KindGroup
	for i := range groups {
		if groups[i].Kind == KindDevice {
			deviceGroup = &groups[i]
		}
	}
	if deviceGroup == nil {
		t.Fatal("expected a Device group")
	}
	if len(deviceGroup.Sources) != 2 {
		t.Fatalf("expected 2 device sources, got %d", len(deviceGroup.Sources))
	}
	if !deviceGroup.Sources[0].ID.Equal(a.ID) {
		t.Fatal("insertion order not preserved")
	}
	for _, g := range groups {
		if g.Kind == KindPassword {
			t.Fatal("Password must not appear as a signable group")
		}
	}
}
