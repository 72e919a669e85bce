// Copyright 2025 Certen Protocol
//
// Factor source kinds and their friction ordering.

package factorsource

// Kind identifies the class of root of trust a factor source is backed by.
//
// Ordering is friction-based, highest friction first: Ledger hardware
// wallets and Arculus cards require the most user interaction, Device
// (the phone itself) the least. The signing collector walks kinds in
// this order so the cheapest interactions happen last, after the
// expensive ones have already been asked.
type Kind int

const (
	KindLedger Kind = iota
	KindArculus
	KindYubikey
	KindSecurityQuestions
	KindOffDeviceMnemonic
	KindDevice

	// KindPassword and KindTrustedContact participate in role matrices
	// (§4.1's per-role/per-kind admission rules) but never hold key
	// material that the Signatures Collector can invoke directly: a
	// password is only ever a co-factor alongside another signing-capable
	// threshold factor, and a trusted contact represents a social-recovery
	// relationship, not a local signer. Both are therefore absent from
	// orderedKinds and OrderedKinds(); the collector's preprocessing step
	// never buckets a factor source of either kind (see signing package).
	KindPassword
	KindTrustedContact
)

// orderedKinds is the canonical friction order, highest friction first.
var orderedKinds = [...]Kind{
	KindLedger,
	KindArculus,
	KindYubikey,
	KindSecurityQuestions,
	KindOffDeviceMnemonic,
	KindDevice,
}

// OrderedKinds returns all kinds in friction order (highest first).
func OrderedKinds() []Kind {
	out := make([]Kind, len(orderedKinds))
	copy(out, orderedKinds[:])
	return out
}

// Less reports whether k has strictly higher friction (sorts earlier) than other.
func (k Kind) Less(other Kind) bool {
	return k.frictionRank() < other.frictionRank()
}

func (k Kind) frictionRank() int {
	for i, ok := range orderedKinds {
		if ok == k {
			return i
		}
	}
	return len(orderedKinds)
}

func (k Kind) String() string {
	switch k {
	case KindLedger:
		return "Ledger"
	case KindArculus:
		return "Arculus"
	case KindYubikey:
		return "Yubikey"
	case KindSecurityQuestions:
		return "SecurityQuestions"
	case KindOffDeviceMnemonic:
		return "OffDeviceMnemonic"
	case KindDevice:
		return "Device"
	case KindPassword:
		return "Password"
	case KindTrustedContact:
		return "TrustedContact"
	default:
		return "Unknown"
	}
}

// IsValid reports whether k is one of the closed set of known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindLedger, KindArculus, KindYubikey, KindSecurityQuestions,
		KindOffDeviceMnemonic, KindDevice, KindPassword, KindTrustedContact:
		return true
	default:
		return false
	}
}

// CanSign reports whether a factor source of this kind can be invoked
// directly by the Signatures Collector. Password and TrustedContact
// gate role-matrix admission only; see the KindPassword/KindTrustedContact
// doc comment.
func (k Kind) CanSign() bool {
	return k.frictionRank() < len(orderedKinds)
}
