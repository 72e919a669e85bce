// Copyright 2025 Certen Protocol

package indexassigner

import (
	"testing"

	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/profile"
)

func TestNextStartsAtZeroWithEmptyProfile(t *testing.T) {
	a := New(profile.Empty)
	fsid := factorsource.NewHashID(factorsource.KindDevice, []byte("x"))
	path := derivation.PresetAccountVeci.AgnosticPath(derivation.NetworkMainnet)

	c, err := a.Next(fsid, path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Base() != 0 {
		t.Fatalf("expected base 0, got %d", c.Base())
	}
}

func TestNextIsStrictlyIncreasingWithinInvocation(t *testing.T) {
	a := New(profile.Empty)
	fsid := factorsource.NewHashID(factorsource.KindDevice, []byte("x"))
	path := derivation.PresetAccountVeci.AgnosticPath(derivation.NetworkMainnet)

	first, err := a.Next(fsid, path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Next(fsid, path)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Less(second) {
		t.Fatalf("expected strictly increasing indices, got %s then %s", first, second)
	}
	if second.Base() != first.Base()+1 {
		t.Fatalf("expected consecutive indices, got %d then %d", first.Base(), second.Base())
	}
}

func TestNextIndependentPathsDoNotShareOffsets(t *testing.T) {
	a := New(profile.Empty)
	fsid := factorsource.NewHashID(factorsource.KindDevice, []byte("x"))
	veciPath := derivation.PresetAccountVeci.AgnosticPath(derivation.NetworkMainnet)
	mfaPath := derivation.PresetAccountMfa.AgnosticPath(derivation.NetworkMainnet)

	a.Next(fsid, veciPath)
	mfaFirst, err := a.Next(fsid, mfaPath)
	if err != nil {
		t.Fatal(err)
	}
	if mfaFirst.Base() != 0 {
		t.Fatalf("expected independent offset tracking per path, got base %d", mfaFirst.Base())
	}
}
