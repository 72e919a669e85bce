// Copyright 2025 Certen Protocol

package factorsource

import "testing"

func TestFrictionOrder(t *testing.T) {
	want := []Kind{KindLedger, KindArculus, KindYubikey, KindSecurityQuestions, KindOffDeviceMnemonic, KindDevice}
	got := OrderedKinds()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestKindLess(t *testing.T) {
	if !KindLedger.Less(KindDevice) {
		t.Fatal("Ledger should sort before Device (higher friction first)")
	}
	if KindDevice.Less(KindLedger) {
		t.Fatal("Device should not sort before Ledger")
	}
}

func TestPasswordAndTrustedContactCannotSign(t *testing.T) {
	if KindPassword.CanSign() {
		t.Fatal("Password must not be directly invokable by the collector")
	}
	if KindTrustedContact.CanSign() {
		t.Fatal("TrustedContact must not be directly invokable by the collector")
	}
	if !KindDevice.CanSign() {
		t.Fatal("Device must be signable")
	}
}

func TestIsValid(t *testing.T) {
	if Kind(99).IsValid() {
		t.Fatal("99 should not be a valid kind")
	}
	if !KindLedger.IsValid() {
		t.Fatal("Ledger should be valid")
	}
}
