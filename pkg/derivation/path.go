// Copyright 2025 Certen Protocol

package derivation

// NetworkID identifies an on-ledger network (e.g. mainnet, a testnet).
type NetworkID uint8

const (
	NetworkMainnet NetworkID = 1
	NetworkStokenet NetworkID = 2
)

// EntityKind distinguishes accounts from personas/identities.
type EntityKind int

const (
	EntityKindAccount EntityKind = iota
	EntityKindIdentity
)

func (k EntityKind) String() string {
	if k == EntityKindIdentity {
		return "Identity"
	}
	return "Account"
}

// KeyKind distinguishes the purpose a derived key serves.
type KeyKind int

const (
	KeyKindTransactionSigning KeyKind = iota
	KeyKindAuthenticationSigning
)

func (k KeyKind) String() string {
	if k == KeyKindAuthenticationSigning {
		return "AuthenticationSigning"
	}
	return "TransactionSigning"
}

// Path is a full derivation path: network, entity kind, key kind, and a
// concrete hardened index.
type Path struct {
	Network NetworkID
	Entity  EntityKind
	Key     KeyKind
	Index   HDPathComponent
}

// AgnosticPath returns the index-agnostic shape of p, used as the
// cache's lookup key.
func (p Path) AgnosticPath() IndexAgnosticPath {
	return IndexAgnosticPath{
		Network:  p.Network,
		Entity:   p.Entity,
		Key:      p.Key,
		KeySpace: p.Index.Space(),
	}
}

// Equal reports structural equality.
func (p Path) Equal(other Path) bool {
	return p.Network == other.Network && p.Entity == other.Entity &&
		p.Key == other.Key && p.Index.Equal(other.Index)
}

// IndexAgnosticPath is (network, entity_kind, key_kind, key_space) with
// no concrete index — the cache's and assigner's lookup key.
type IndexAgnosticPath struct {
	Network  NetworkID
	Entity   EntityKind
	Key      KeyKind
	KeySpace KeySpace
}

// WithIndex produces a concrete Path by attaching idx.
func (a IndexAgnosticPath) WithIndex(idx HDPathComponent) Path {
	return Path{Network: a.Network, Entity: a.Entity, Key: a.Key, Index: idx}
}
