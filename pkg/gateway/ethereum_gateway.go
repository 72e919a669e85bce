// Copyright 2025 Certen Protocol
//
// Package gateway provides an interactors.Gateway backed by a real chain
// client, adapted from the teacher's plain go-ethereum wrapper. The core
// never writes through this interface; it only reads entity state and
// resolves which addresses a public-key hash has ever signed for, both
// surfaced here as eth_call reads against a registry contract.
package gateway

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/radixdlt/walletmfa/pkg/entity"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/interactors"
)

// OnChainState is an alias to the shape interactors.Gateway expects, kept
// local so call sites read naturally as gateway.OnChainState.
type OnChainState = interactors.OnChainState

// registryABI describes the two read-only entry points this gateway
// depends on: a per-address control-state getter and a per-key-hash
// reverse index of addresses that reference it. The contract itself is
// out of scope; only the Go-side binding lives here.
const registryABI = `[
  {"name":"entityState","type":"function","stateMutability":"view",
   "inputs":[{"name":"entity","type":"address"}],
   "outputs":[{"name":"securified","type":"bool"},
              {"name":"singleKeyHash","type":"bytes32"},
              {"name":"accessRule","type":"bytes"}]},
  {"name":"addressesReferencing","type":"function","stateMutability":"view",
   "inputs":[{"name":"publicKeyHash","type":"bytes32"}],
   "outputs":[{"name":"entities","type":"address[]"}]}
]`

// toEthAddress maps an entity.Address (a 32-byte content-addressed
// handle) down to the 20-byte address the registry contract indexes by.
// The low 20 bytes are the on-chain identity; the remaining bytes
// distinguish entities sharing a truncated prefix only off-chain.
func toEthAddress(a entity.Address) common.Address {
	var out common.Address
	copy(out[:], a[12:])
	return out
}

func fromEthAddress(addr common.Address) entity.Address {
	var out entity.Address
	copy(out[12:], addr[:])
	return out
}

// EthereumGateway satisfies interactors.Gateway by querying a deployed
// registry contract over JSON-RPC.
type EthereumGateway struct {
	client   *ethclient.Client
	registry common.Address
	abi      abi.ABI
}

// Dial connects to an Ethereum JSON-RPC endpoint and binds it to the
// registry contract at registryAddr.
func Dial(ctx context.Context, rpcURL string, registryAddr common.Address) (*EthereumGateway, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: dial %s: %w", rpcURL, err)
	}
	parsed, err := abi.JSON(strings.NewReader(registryABI))
	if err != nil {
		return nil, fmt.Errorf("gateway: parse registry ABI: %w", err)
	}
	return &EthereumGateway{client: client, registry: registryAddr, abi: parsed}, nil
}

// AddressesReferencing returns every entity address the registry has
// recorded as controlled, directly or via threshold matrix, by any of the
// given public-key hashes.
func (g *EthereumGateway) AddressesReferencing(ctx context.Context, publicKeyHashes []factorinstance.Hash) ([]entity.Address, error) {
	var out []entity.Address
	for _, h := range publicKeyHashes {
		data, err := g.abi.Pack("addressesReferencing", h)
		if err != nil {
			return nil, fmt.Errorf("gateway: pack addressesReferencing: %w", err)
		}
		result, err := g.client.CallContract(ctx, ethereum.CallMsg{To: &g.registry, Data: data}, nil)
		if err != nil {
			return nil, fmt.Errorf("gateway: call addressesReferencing: %w", err)
		}
		var decoded []common.Address
		if err := g.abi.UnpackIntoInterface(&decoded, "addressesReferencing", result); err != nil {
			return nil, fmt.Errorf("gateway: unpack addressesReferencing: %w", err)
		}
		for _, addr := range decoded {
			out = append(out, fromEthAddress(addr))
		}
	}
	return out, nil
}

// EntityOnChainState reads address's current control state from the
// registry.
func (g *EthereumGateway) EntityOnChainState(ctx context.Context, address entity.Address) (OnChainState, error) {
	data, err := g.abi.Pack("entityState", toEthAddress(address))
	if err != nil {
		return OnChainState{}, fmt.Errorf("gateway: pack entityState: %w", err)
	}
	result, err := g.client.CallContract(ctx, ethereum.CallMsg{To: &g.registry, Data: data}, nil)
	if err != nil {
		return OnChainState{}, fmt.Errorf("gateway: call entityState: %w", err)
	}
	var decoded struct {
		Securified    bool
		SingleKeyHash [32]byte
		AccessRule    []byte
	}
	if err := g.abi.UnpackIntoInterface(&decoded, "entityState", result); err != nil {
		return OnChainState{}, fmt.Errorf("gateway: unpack entityState: %w", err)
	}
	return OnChainState{
		Securified:      decoded.Securified,
		SingleKeyHash:   factorinstance.Hash(decoded.SingleKeyHash),
		AccessRuleBytes: decoded.AccessRule,
	}, nil
}

// ChainID reports the network this gateway is bound to, mirroring the
// teacher's client wrapper which carried chainID alongside the RPC URL.
func (g *EthereumGateway) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := g.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("gateway: chain id: %w", err)
	}
	return id, nil
}

// LatestBlock confirms the gateway is reachable and reports the chain's
// current head, used by health checks.
func (g *EthereumGateway) LatestBlock(ctx context.Context) (*types.Header, error) {
	header, err := g.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: latest block: %w", err)
	}
	return header, nil
}
