// Copyright 2025 Certen Protocol

package derivation

import "testing"

func TestAllPresetsOrder(t *testing.T) {
	want := []Preset{PresetAccountVeci, PresetIdentityVeci, PresetAccountMfa, PresetIdentityMfa}
	got := AllPresets()
	if len(got) != len(want) {
		t.Fatalf("expected %d presets, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestPresetAgnosticPathMapping(t *testing.T) {
	cases := []struct {
		preset Preset
		entity EntityKind
		space  KeySpace
	}{
		{PresetAccountVeci, EntityKindAccount, KeySpaceUnsecurified},
		{PresetIdentityVeci, EntityKindIdentity, KeySpaceUnsecurified},
		{PresetAccountMfa, EntityKindAccount, KeySpaceSecurified},
		{PresetIdentityMfa, EntityKindIdentity, KeySpaceSecurified},
	}
	for _, c := range cases {
		p := c.preset.AgnosticPath(NetworkMainnet)
		if p.Network != NetworkMainnet {
			t.Errorf("%s: expected network mainnet, got %v", c.preset, p.Network)
		}
		if p.Entity != c.entity {
			t.Errorf("%s: expected entity %v, got %v", c.preset, c.entity, p.Entity)
		}
		if p.KeySpace != c.space {
			t.Errorf("%s: expected space %v, got %v", c.preset, c.space, p.KeySpace)
		}
		if p.Key != KeyKindTransactionSigning {
			t.Errorf("%s: expected transaction signing key kind, got %v", c.preset, p.Key)
		}
	}
}

func TestPresetOnRoundTrip(t *testing.T) {
	np := PresetOn(PresetAccountMfa, NetworkStokenet)
	if np.Network != NetworkStokenet {
		t.Fatalf("expected stokenet, got %v", np.Network)
	}
	if np.Path != PresetAccountMfa.AgnosticPath(NetworkStokenet) {
		t.Fatalf("PresetOn path mismatch")
	}
}
