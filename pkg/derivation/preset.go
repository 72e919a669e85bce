// Copyright 2025 Certen Protocol

package derivation

// Preset is one of the four canonical IndexAgnosticPath shapes on a
// network, per spec §3. All presets use KeyKindTransactionSigning.
type Preset int

const (
	PresetAccountVeci Preset = iota
	PresetIdentityVeci
	PresetAccountMfa
	PresetIdentityMfa
)

// AllPresets lists the four canonical presets in a fixed, deterministic
// order. The Provider's cache-filling plan (§4.4 step 2) iterates this
// order when topping up every preset's pool.
func AllPresets() []Preset {
	return []Preset{PresetAccountVeci, PresetIdentityVeci, PresetAccountMfa, PresetIdentityMfa}
}

func (p Preset) String() string {
	switch p {
	case PresetAccountVeci:
		return "AccountVeci"
	case PresetIdentityVeci:
		return "IdentityVeci"
	case PresetAccountMfa:
		return "AccountMfa"
	case PresetIdentityMfa:
		return "IdentityMfa"
	default:
		return "UnknownPreset"
	}
}

// AgnosticPath resolves p to its IndexAgnosticPath shape on network n.
func (p Preset) AgnosticPath(n NetworkID) IndexAgnosticPath {
	entity, space := EntityKindAccount, KeySpaceUnsecurified
	switch p {
	case PresetAccountVeci:
		entity, space = EntityKindAccount, KeySpaceUnsecurified
	case PresetIdentityVeci:
		entity, space = EntityKindIdentity, KeySpaceUnsecurified
	case PresetAccountMfa:
		entity, space = EntityKindAccount, KeySpaceSecurified
	case PresetIdentityMfa:
		entity, space = EntityKindIdentity, KeySpaceSecurified
	}
	return IndexAgnosticPath{Network: n, Entity: entity, Key: KeyKindTransactionSigning, KeySpace: space}
}

// NetworkIndexAgnosticPath pairs a network with an index-agnostic path,
// the unit the Provider's request presets are expressed in.
type NetworkIndexAgnosticPath struct {
	Network NetworkID
	Path    IndexAgnosticPath
}

// PresetOn builds the NetworkIndexAgnosticPath for preset p on network n.
func PresetOn(p Preset, n NetworkID) NetworkIndexAgnosticPath {
	return NetworkIndexAgnosticPath{Network: n, Path: p.AgnosticPath(n)}
}
