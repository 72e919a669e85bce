// Copyright 2025 Certen Protocol

package factorsource

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// IDVariant distinguishes the two ways a factor source can be identified.
type IDVariant int

const (
	// IDVariantHash identifies a factor source by the hash of its root
	// key material, tagged with the kind it was derived from.
	IDVariantHash IDVariant = iota
	// IDVariantAddress identifies a factor source that has no stable
	// content hash yet (e.g. a TrustedContact, identified by the
	// contact's own on-ledger entity address).
	IDVariantAddress
)

// ID is the identity of a factor source: either a (kind, hash) pair or
// an address, per spec §3.
type ID struct {
	Variant IDVariant

	// Kind is only meaningful (and only set) for IDVariantHash.
	Kind Kind

	// Body is the SHA-256 of the root key material (IDVariantHash) or of
	// the address bytes (IDVariantAddress).
	Body [32]byte
}

// NewHashID builds a Hash-variant ID for the given kind from raw key
// material, hashing it with SHA-256.
func NewHashID(kind Kind, rootKeyMaterial []byte) ID {
	return ID{
		Variant: IDVariantHash,
		Kind:    kind,
		Body:    sha256.Sum256(rootKeyMaterial),
	}
}

// NewAddressID builds an Address-variant ID from raw address bytes.
func NewAddressID(addressBytes []byte) ID {
	var id ID
	id.Variant = IDVariantAddress
	h := sha256.Sum256(addressBytes)
	id.Body = h
	return id
}

// Equal reports structural equality.
func (id ID) Equal(other ID) bool {
	return id.Variant == other.Variant && id.Kind == other.Kind && id.Body == other.Body
}

func (id ID) String() string {
	switch id.Variant {
	case IDVariantHash:
		return fmt.Sprintf("%s:%s", id.Kind, hex.EncodeToString(id.Body[:8]))
	case IDVariantAddress:
		return fmt.Sprintf("address:%s", hex.EncodeToString(id.Body[:8]))
	default:
		return "invalid-factor-source-id"
	}
}
