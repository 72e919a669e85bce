// Copyright 2025 Certen Protocol

package rolebuilder

// ListKind distinguishes a role's threshold list from its override list.
type ListKind int

const (
	ListThreshold ListKind = iota
	ListOverride
)

func (l ListKind) String() string {
	if l == ListThreshold {
		return "Threshold"
	}
	return "Override"
}
