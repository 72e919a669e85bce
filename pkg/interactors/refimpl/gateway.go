// Copyright 2025 Certen Protocol
//
// StaticGateway is a reference Gateway backed by an in-memory map,
// standing in for the real on-ledger query surface in tests and the demo
// CLI.

package refimpl

import (
	"context"
	"sync"

	"github.com/radixdlt/walletmfa/pkg/entity"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/interactors"
)

// StaticGateway answers AddressesReferencing and EntityOnChainState from
// maps populated ahead of time via SeedReference and SeedState.
type StaticGateway struct {
	mu        sync.RWMutex
	byHash    map[factorinstance.Hash][]entity.Address
	byAddress map[entity.Address]interactors.OnChainState
}

// NewStaticGateway builds an empty gateway.
func NewStaticGateway() *StaticGateway {
	return &StaticGateway{
		byHash:    make(map[factorinstance.Hash][]entity.Address),
		byAddress: make(map[entity.Address]interactors.OnChainState),
	}
}

// SeedReference records that address is referenced by h, as if it were
// discovered on ledger.
func (g *StaticGateway) SeedReference(h factorinstance.Hash, address entity.Address) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byHash[h] = append(g.byHash[h], address)
}

// SeedState records address's current on-chain control state.
func (g *StaticGateway) SeedState(address entity.Address, state interactors.OnChainState) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byAddress[address] = state
}

// AddressesReferencing implements interactors.Gateway.
func (g *StaticGateway) AddressesReferencing(_ context.Context, publicKeyHashes []factorinstance.Hash) ([]entity.Address, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []entity.Address
	for _, h := range publicKeyHashes {
		out = append(out, g.byHash[h]...)
	}
	return out, nil
}

// EntityOnChainState implements interactors.Gateway.
func (g *StaticGateway) EntityOnChainState(_ context.Context, address entity.Address) (interactors.OnChainState, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.byAddress[address], nil
}
