// Copyright 2025 Certen Protocol

package provider

import (
	"context"
	"testing"

	"github.com/radixdlt/walletmfa/pkg/cache"
	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/interactors"
	"github.com/radixdlt/walletmfa/pkg/profile"
)

// testInteractor is a deterministic in-memory interactors.DerivationInteractor:
// it returns one instance per requested path, with public key bytes derived
// from the path so assertions can key off them.
type testInteractor struct {
	invocations int
}

func (t *testInteractor) Derive(_ context.Context, requests []interactors.DerivationRequest) (map[factorsource.ID][]factorinstance.HierarchicalDeterministicFactorInstance, error) {
	t.invocations++
	out := make(map[factorsource.ID][]factorinstance.HierarchicalDeterministicFactorInstance)
	for _, req := range requests {
		var instances []factorinstance.HierarchicalDeterministicFactorInstance
		for _, path := range req.Paths {
			instances = append(instances, factorinstance.HierarchicalDeterministicFactorInstance{
				FactorSourceID: req.FactorSourceID,
				DerivationPath: path,
				PublicKey:      factorinstance.PublicKey{Curve: factorinstance.CurveCurve25519, Bytes: []byte{byte(path.Index.Base())}},
			})
		}
		out[req.FactorSourceID] = instances
	}
	return out, nil
}

func TestFirstAccountCreationFromEmptyCache(t *testing.T) {
	c := cache.New()
	di := &testInteractor{}
	p := New(c, di, WithFillQuantity(30))

	fsid := factorsource.NewHashID(factorsource.KindDevice, []byte("x"))
	requests := []Request{{FactorSourceID: fsid, Network: derivation.NetworkMainnet, Preset: derivation.PresetAccountVeci, Quantity: 1}}

	outcomes, err := p.With(context.Background(), profile.Empty, requests)
	if err != nil {
		t.Fatal(err)
	}
	outcome := outcomes[fsid]
	if len(outcome.ToUseDirectly) != 1 {
		t.Fatalf("expected exactly 1 instance to use directly, got %d", len(outcome.ToUseDirectly))
	}
	if outcome.ToUseDirectly[0].DerivationPath.Index.Base() != 0 {
		t.Fatalf("expected direct-use index 0, got %d", outcome.ToUseDirectly[0].DerivationPath.Index.Base())
	}
	if len(outcome.NewlyDerived) != 4*30+1 {
		t.Fatalf("expected 4*Q+1 = 121 derivations, got %d", len(outcome.NewlyDerived))
	}
	if !c.IsFull(derivation.NetworkMainnet, fsid, 30) {
		t.Fatal("expected cache full for every preset after the run")
	}
}

func TestSecondAccountCreationUsesCacheNoDerivation(t *testing.T) {
	c := cache.New()
	di := &testInteractor{}
	p := New(c, di, WithFillQuantity(30))
	fsid := factorsource.NewHashID(factorsource.KindDevice, []byte("x"))
	path := derivation.PresetAccountVeci.AgnosticPath(derivation.NetworkMainnet)

	var preloaded []factorinstance.HierarchicalDeterministicFactorInstance
	for i := uint32(1); i <= 30; i++ {
		comp, _ := derivation.NewUnsecurified(i)
		preloaded = append(preloaded, factorinstance.HierarchicalDeterministicFactorInstance{
			FactorSourceID: fsid,
			DerivationPath: path.WithIndex(comp),
			PublicKey:      factorinstance.PublicKey{Curve: factorinstance.CurveCurve25519, Bytes: []byte{byte(i)}},
		})
	}
	c.Insert(fsid, path, preloaded)

	requests := []Request{{FactorSourceID: fsid, Network: derivation.NetworkMainnet, Preset: derivation.PresetAccountVeci, Quantity: 1}}
	outcomes, err := p.With(context.Background(), profile.Empty, requests)
	if err != nil {
		t.Fatal(err)
	}
	outcome := outcomes[fsid]
	if di.invocations != 0 {
		t.Fatalf("expected no derivation calls, got %d", di.invocations)
	}
	if len(outcome.ToUseDirectly) != 1 || outcome.ToUseDirectly[0].DerivationPath.Index.Base() != 1 {
		t.Fatalf("expected direct-use instance at index 1, got %+v", outcome.ToUseDirectly)
	}
	remaining := c.Peek(fsid, path)
	if len(remaining) != 29 {
		t.Fatalf("expected 29 remaining cached instances, got %d", len(remaining))
	}
}

func TestMixedPresetBatchRejected(t *testing.T) {
	c := cache.New()
	di := &testInteractor{}
	p := New(c, di)
	fsid := factorsource.NewHashID(factorsource.KindDevice, []byte("x"))
	requests := []Request{
		{FactorSourceID: fsid, Network: derivation.NetworkMainnet, Preset: derivation.PresetAccountVeci, Quantity: 1},
		{FactorSourceID: fsid, Network: derivation.NetworkMainnet, Preset: derivation.PresetIdentityVeci, Quantity: 1},
	}
	if _, err := p.With(context.Background(), profile.Empty, requests); err == nil {
		t.Fatal("expected ErrMixedPresetBatch")
	}
}
