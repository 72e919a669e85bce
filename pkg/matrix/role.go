// Copyright 2025 Certen Protocol

package matrix

import (
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
)

// Role is one of the three entity control roles, per spec §3.
type Role int

const (
	RolePrimary Role = iota
	RoleRecovery
	RoleConfirmation
)

func (r Role) String() string {
	switch r {
	case RoleRecovery:
		return "Recovery"
	case RoleConfirmation:
		return "Confirmation"
	default:
		return "Primary"
	}
}

// MatrixOfFactorSourceIDs is the build-time shape of a role matrix:
// factors are still identified by factor source ID, before fulfilment.
type MatrixOfFactorSourceIDs = MatrixOfFactors[factorsource.ID]

// MatrixOfFactorInstances is the fulfilled shape of a role matrix: every
// placeholder factor source ID has been resolved to a concrete derived
// instance.
type MatrixOfFactorInstances = MatrixOfFactors[factorinstance.HierarchicalDeterministicFactorInstance]

// RoleMatrices bundles the three roles' fulfilled matrices that together
// secure one entity, per spec §1's "triples of (Primary, Recovery,
// Confirmation) roles".
type RoleMatrices struct {
	Primary      MatrixOfFactorInstances
	Recovery     MatrixOfFactorInstances
	Confirmation MatrixOfFactorInstances
}
