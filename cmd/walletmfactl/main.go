// Copyright 2025 Certen Protocol
//
// walletmfactl is a one-shot demo composition root: it wires the
// Factor-Instance Provider, Role-Matrix Builder, Petition Graph, and
// Signatures Collector end to end against the reference in-memory
// interactors, to show the core working without a real host application.

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/radixdlt/walletmfa/pkg/accessrule"
	"github.com/radixdlt/walletmfa/pkg/cache"
	"github.com/radixdlt/walletmfa/pkg/config"
	"github.com/radixdlt/walletmfa/pkg/derivation"
	"github.com/radixdlt/walletmfa/pkg/entity"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/interactors/refimpl"
	"github.com/radixdlt/walletmfa/pkg/matrix"
	"github.com/radixdlt/walletmfa/pkg/metrics"
	"github.com/radixdlt/walletmfa/pkg/petition"
	"github.com/radixdlt/walletmfa/pkg/profile"
	"github.com/radixdlt/walletmfa/pkg/provider"
	"github.com/radixdlt/walletmfa/pkg/rolebuilder"
	"github.com/radixdlt/walletmfa/pkg/signing"
)

func main() {
	log.Printf("🚀 Starting walletmfactl demo run")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}
	log.Printf("📋 Network: %s, cache fill quantity: %d", cfg.DefaultNetwork, cfg.CacheFillQuantity)

	metricsRecorder := metrics.New()
	network := derivation.NetworkMainnet

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DerivationTimeout+cfg.SigningTimeout)
	defer cancel()

	ledgerID := factorsource.NewHashID(factorsource.KindLedger, []byte("ledger-demo"))
	arculusID := factorsource.NewHashID(factorsource.KindArculus, []byte("arculus-demo"))
	deviceID := factorsource.NewHashID(factorsource.KindDevice, []byte("device-demo"))

	log.Println("🔑 Provisioning factor instances via the Factor-Instance Provider...")
	c := cache.New()
	derivationInteractor := refimpl.NewInMemoryDerivationInteractor()
	p := provider.New(c, derivationInteractor, provider.WithFillQuantity(cfg.CacheFillQuantity), provider.WithMetrics(metricsRecorder))

	outcomes, err := p.With(ctx, profile.Empty, []provider.Request{
		{FactorSourceID: ledgerID, Network: network, Preset: derivation.PresetAccountMfa, Quantity: 1},
		{FactorSourceID: arculusID, Network: network, Preset: derivation.PresetAccountMfa, Quantity: 1},
		{FactorSourceID: deviceID, Network: network, Preset: derivation.PresetAccountMfa, Quantity: 1},
	})
	if err != nil {
		log.Fatal("Provider run failed:", err)
	}
	log.Printf("✅ Provisioned instances for %d factor sources", len(outcomes))

	log.Println("🏗️  Building a Primary role matrix (2-of-2 threshold: Ledger + Arculus, Device override)...")
	builder := rolebuilder.New(matrix.RolePrimary)
	if res := builder.AddFactorSourceToThreshold(ledgerID); !res.AdvancesState() {
		log.Fatalf("unexpected rejection adding ledger to threshold: %+v", res)
	}
	if res := builder.AddFactorSourceToThreshold(arculusID); !res.AdvancesState() {
		log.Fatalf("unexpected rejection adding arculus to threshold: %+v", res)
	}
	if res := builder.SetThreshold(2); !res.AdvancesState() {
		log.Fatalf("unexpected rejection setting threshold: %+v", res)
	}
	if res := builder.AddFactorSourceToOverride(deviceID); !res.AdvancesState() {
		log.Fatalf("unexpected rejection adding device to override: %+v", res)
	}

	idMatrix, result := builder.Build()
	if !result.IsBuildable() {
		log.Fatalf("matrix failed to build: %+v", result)
	}

	log.Printf("✅ Primary matrix built with %d threshold factors", len(idMatrix.ThresholdFactors))

	instancesByID := collectDirectUse(outcomes)
	primaryInstances, err := rolebuilder.ResolveTemplate(idMatrix, instancesByID)
	if err != nil {
		log.Fatal("Failed to resolve matrix template against provisioned instances:", err)
	}

	accessController := accessrule.FromPrimaryMatrix(primaryInstances)
	log.Printf("🔐 Encoded AccessController: %s", accessController)

	addr := entity.AddressFromPublicKeyHash(primaryInstances.ThresholdFactors[0].PublicKeyHash())
	state := entity.NewSecurified(entity.SecurifiedEntityControl{Matrix: primaryInstances, AccessController: accessController})

	log.Println("📝 Running the Signatures Collector against a single transaction...")
	var txid [32]byte
	txid[0] = 0x01
	graph := petition.Build([]petition.TransactionInput{
		{IntentHash: txid, Entities: []petition.EntityInput{{Address: addr, State: state}}},
	})

	signingInteractor := refimpl.NewInMemorySigningInteractor()
	userInteractor := &refimpl.ScriptedUserInteractor{Default: false}
	collector := signing.New(signingInteractor, signing.WithMetrics(metricsRecorder), signing.WithUserInteractor(userInteractor))

	allSources := []factorsource.FactorSource{
		{ID: ledgerID, LastUsed: time.Now()},
		{ID: arculusID, LastUsed: time.Now()},
		{ID: deviceID, LastUsed: time.Now()},
	}
	outcome, err := collector.Collect(ctx, graph, allSources, signing.FinishEarlyStrategy{StopWhenAllTransactionsValid: cfg.StopWhenAllTransactionsValid})
	if err != nil {
		log.Fatal("Signatures Collector run failed:", err)
	}

	log.Printf("✅ Session %s — successful transactions: %d, failed: %d, neglected factors: %d",
		outcome.SessionID, len(outcome.SuccessfulTransactions), len(outcome.FailedTransactions), len(outcome.Neglected))

	if len(outcome.FailedTransactions) > 0 {
		os.Exit(1)
	}
	log.Println("🏁 walletmfactl demo run complete")
}

// collectDirectUse flattens the Provider's per-factor-source outcomes down
// to the single instance each factor source contributed for direct use,
// the shape rolebuilder.ResolveTemplate expects.
func collectDirectUse(outcomes map[factorsource.ID]provider.Outcome) map[factorsource.ID]factorinstance.HierarchicalDeterministicFactorInstance {
	resolved := make(map[factorsource.ID]factorinstance.HierarchicalDeterministicFactorInstance, len(outcomes))
	for fsid, outcome := range outcomes {
		if len(outcome.ToUseDirectly) > 0 {
			resolved[fsid] = outcome.ToUseDirectly[0]
		}
	}
	return resolved
}
