// Copyright 2025 Certen Protocol

package petition

import (
	"github.com/radixdlt/walletmfa/pkg/entity"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/interactors"
)

// Graph is the full petition graph for one signing run: one
// ForTransaction per transaction, plus the factor-to-transactions index
// the Collector uses to decide which factor sources still matter.
type Graph struct {
	ByTransaction map[[32]byte]*ForTransaction
	FactorToTxIDs map[factorsource.ID]map[[32]byte]struct{}
	order         [][32]byte // transaction insertion order
}

// TransactionInput is one transaction's entities, keyed by address, in the
// shape Build needs: for each entity either its lone VECI (unsecured) or
// its primary-role matrix (securified).
type TransactionInput struct {
	IntentHash [32]byte
	Entities   []EntityInput
}

// EntityInput is one entity's petition seed for Build.
type EntityInput struct {
	Address entity.Address
	State   entity.EntitySecurityState
}

// Build constructs the petition graph for a batch of transactions, per
// spec §4.5's preprocessing step.
func Build(transactions []TransactionInput) *Graph {
	g := &Graph{
		ByTransaction: make(map[[32]byte]*ForTransaction, len(transactions)),
		FactorToTxIDs: make(map[factorsource.ID]map[[32]byte]struct{}),
	}
	for _, tx := range transactions {
		ft := &ForTransaction{IntentHash: tx.IntentHash, ForEntities: make(map[entity.Address]*ForEntity, len(tx.Entities))}
		for _, e := range tx.Entities {
			var fe *ForEntity
			if e.State.IsSecurified() {
				fe = ForSecurifiedEntity(e.Address, e.State.Securified.Matrix)
			} else {
				fe = ForUnsecuredEntity(e.Address, e.State.Unsecured)
			}
			ft.ForEntities[e.Address] = fe
			for _, list := range fe.lists() {
				for _, f := range list.factors {
					if g.FactorToTxIDs[f.FactorSourceID] == nil {
						g.FactorToTxIDs[f.FactorSourceID] = make(map[[32]byte]struct{})
					}
					g.FactorToTxIDs[f.FactorSourceID][tx.IntentHash] = struct{}{}
				}
			}
		}
		g.ByTransaction[tx.IntentHash] = ft
		g.order = append(g.order, tx.IntentHash)
	}
	return g
}

// TransactionIDs returns transaction IDs in the order they were built.
func (g *Graph) TransactionIDs() [][32]byte {
	return append([][32]byte(nil), g.order...)
}

// TransactionIDsForFactorSource returns which transactions fsid
// participates in, per the factor_to_txids index.
func (g *Graph) TransactionIDsForFactorSource(fsid factorsource.ID) [][32]byte {
	set := g.FactorToTxIDs[fsid]
	ids := make([][32]byte, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// InstancesOwnedBy returns every factor instance belonging to fsid across
// every entity petition in txid, for assembling a signing request.
func (g *Graph) InstancesOwnedBy(txid [32]byte, fsid factorsource.ID) []factorinstance.HierarchicalDeterministicFactorInstance {
	ft, ok := g.ByTransaction[txid]
	if !ok {
		return nil
	}
	var owned []factorinstance.HierarchicalDeterministicFactorInstance
	for _, fe := range ft.ForEntities {
		for _, list := range fe.lists() {
			owned = append(owned, list.InstancesOwnedBy(fsid)...)
		}
	}
	return owned
}

// AddSignature applies sig to every entity petition in txid whose list is
// owned by fsid.
func (g *Graph) AddSignature(txid [32]byte, fsid factorsource.ID, sig interactors.HDSignature) {
	ft, ok := g.ByTransaction[txid]
	if !ok {
		return
	}
	for _, fe := range ft.ForEntities {
		for _, list := range fe.lists() {
			if list.HasFactorSource(fsid) {
				list.AddSignature(sig)
			}
		}
	}
}

// AddNeglect applies a neglect verdict for fsid to every petition (every
// transaction, every entity) that references it.
func (g *Graph) AddNeglect(fsid factorsource.ID, reason NeglectReason) {
	for _, ft := range g.ByTransaction {
		for _, fe := range ft.ForEntities {
			for _, list := range fe.lists() {
				if list.HasFactorSource(fsid) {
					list.AddNeglected(fsid, reason)
				}
			}
		}
	}
}

// Status evaluates a transaction's current status.
func (g *Graph) Status(txid [32]byte) Status {
	ft, ok := g.ByTransaction[txid]
	if !ok {
		return StatusInProgress
	}
	return ft.Status()
}

// AllFinished reports whether every transaction in the graph has reached a
// Finished (Success or Fail) status.
func (g *Graph) AllFinished() bool {
	for _, txid := range g.order {
		if g.Status(txid) == StatusInProgress {
			return false
		}
	}
	return true
}

// AnyFailed reports whether any transaction has reached Finished(Fail).
func (g *Graph) AnyFailed() bool {
	for _, txid := range g.order {
		if g.Status(txid) == StatusFinishedFail {
			return true
		}
	}
	return false
}

// clone deep-copies the graph for hypothetical-neglect evaluation.
func (g *Graph) clone() *Graph {
	clone := &Graph{
		ByTransaction: make(map[[32]byte]*ForTransaction, len(g.ByTransaction)),
		FactorToTxIDs: g.FactorToTxIDs, // read-only for this use, safe to share
		order:         append([][32]byte(nil), g.order...),
	}
	for txid, ft := range g.ByTransaction {
		clone.ByTransaction[txid] = ft.clone()
	}
	return clone
}

// InvalidTransactionsIfNeglected performs a hypothetical neglect of ids on
// a cloned graph and reports which transactions would newly become
// Finished(Fail) as a result, per spec §4.5. Transactions already
// Finished(Fail) on the real graph are never reported: once a transaction
// has failed for any reason, it is not mentioned to the user again.
func (g *Graph) InvalidTransactionsIfNeglected(ids []factorsource.ID) [][32]byte {
	clone := g.clone()
	for _, fsid := range ids {
		clone.AddNeglect(fsid, NeglectSimulation)
	}
	var invalid [][32]byte
	for _, txid := range clone.order {
		if g.Status(txid) == StatusFinishedFail {
			continue
		}
		if clone.Status(txid) == StatusFinishedFail {
			invalid = append(invalid, txid)
		}
	}
	return invalid
}
