// Copyright 2025 Certen Protocol
//
// Collector is the Signatures Collector (spec §4.6): it walks factor
// source kinds in friction order; for each factor source still relevant to
// some transaction it computes which transactions would be invalidated by
// neglecting that source, offers the user a chance to neglect it up front,
// and otherwise queries the signing interactor and applies the result to
// the petition graph, until every transaction is settled or the finish-
// early strategy says to stop.

package signing

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/interactors"
	"github.com/radixdlt/walletmfa/pkg/metrics"
	"github.com/radixdlt/walletmfa/pkg/petition"
)

// FinishEarlyStrategy controls whether the Collector returns before every
// factor source kind has been visited.
type FinishEarlyStrategy struct {
	// StopWhenAllTransactionsValid: stop as soon as every transaction is
	// Finished(Success). Defaults to true, per spec §4.6 step 3.
	StopWhenAllTransactionsValid bool
	// StopWhenAnyTransactionInvalid: stop as soon as any transaction is
	// Finished(Fail).
	StopWhenAnyTransactionInvalid bool
}

// DefaultFinishEarlyStrategy matches spec §4.6's default: stop as soon as
// every transaction is already valid.
var DefaultFinishEarlyStrategy = FinishEarlyStrategy{StopWhenAllTransactionsValid: true}

// Outcome partitions a Collector run's transactions into successful and
// failed, and lists every neglected factor source with its reason.
type Outcome struct {
	SessionID              uuid.UUID
	SuccessfulTransactions [][32]byte
	FailedTransactions     [][32]byte
	Neglected              []petition.NeglectedFactor
}

// Collector drives one signing run.
type Collector struct {
	interactor interactors.SigningInteractor
	user       interactors.UserInteractor
	metrics    *metrics.Recorder
	logger     *log.Logger
}

// New creates a Collector that queries interactor for signatures.
func New(interactor interactors.SigningInteractor, opts ...Option) *Collector {
	c := &Collector{
		interactor: interactor,
		logger:     log.New(log.Writer(), "[Collector] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a Collector at construction time.
type Option func(*Collector)

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(c *Collector) { c.metrics = m }
}

// WithUserInteractor attaches a UserInteractor so the Collector asks before
// signing with each factor source whether the user wants to neglect it
// instead. Without one, Collect goes straight to the SigningInteractor, as
// it always did.
func WithUserInteractor(u interactors.UserInteractor) Option {
	return func(c *Collector) { c.user = u }
}

// Collect drives graph through every factor source, kind-by-kind in
// friction order, per spec §4.6.
func (c *Collector) Collect(ctx context.Context, graph *petition.Graph, allFactorSources []factorsource.FactorSource, strategy FinishEarlyStrategy) (Outcome, error) {
	sessionID := uuid.New()
	c.logger.Printf("session %s: collecting signatures across %d factor sources", sessionID, len(allFactorSources))

	groups := factorsource.GroupByKind(allFactorSources)

	var neglected []petition.NeglectedFactor

	for _, group := range groups {
		for _, fs := range group.Sources {
			txids := graph.TransactionIDsForFactorSource(fs.ID)
			relevant := c.relevantTransactions(graph, txids)
			if len(relevant) == 0 {
				c.logger.Printf("skipping %s: no longer relevant to any transaction", fs.ID)
				continue
			}

			invalidated := graph.InvalidTransactionsIfNeglected([]factorsource.ID{fs.ID})
			if c.user != nil && c.user.ShouldNeglectFactorSource(ctx, fs.ID, invalidated) {
				reason := petition.NeglectUserExplicitlySkipped
				graph.AddNeglect(fs.ID, reason)
				neglected = append(neglected, petition.NeglectedFactor{FactorSourceID: fs.ID, Reason: reason})
				if c.metrics != nil {
					c.metrics.IncFactorNeglected()
				}
				continue
			}

			request := c.buildRequest(graph, fs.ID, relevant)
			outcome, err := c.interactor.Sign(ctx, request)
			if err != nil {
				return Outcome{}, err
			}

			if outcome.Neglected {
				reason := outcome.Reason
				graph.AddNeglect(fs.ID, reason)
				neglected = append(neglected, petition.NeglectedFactor{FactorSourceID: fs.ID, Reason: reason})
				if c.metrics != nil {
					c.metrics.IncFactorNeglected()
				}
				continue
			}

			collected := 0
			for txid, sigs := range outcome.Signatures {
				for _, sig := range sigs {
					graph.AddSignature(txid, fs.ID, sig)
					collected++
				}
			}
			if c.metrics != nil {
				c.metrics.AddSignaturesCollected(collected)
			}
		}

		if strategy.StopWhenAllTransactionsValid && graph.AllFinished() && !graph.AnyFailed() {
			break
		}
		if strategy.StopWhenAnyTransactionInvalid && graph.AnyFailed() {
			break
		}
	}

	outcome := Outcome{SessionID: sessionID}
	for _, txid := range graph.TransactionIDs() {
		switch graph.Status(txid) {
		case petition.StatusFinishedSuccess:
			outcome.SuccessfulTransactions = append(outcome.SuccessfulTransactions, txid)
		case petition.StatusFinishedFail:
			outcome.FailedTransactions = append(outcome.FailedTransactions, txid)
		}
	}
	outcome.Neglected = neglected
	return outcome, nil
}

// relevantTransactions filters txids down to those not yet Finished.
func (c *Collector) relevantTransactions(graph *petition.Graph, txids [][32]byte) [][32]byte {
	var relevant [][32]byte
	for _, txid := range txids {
		if graph.Status(txid) == petition.StatusInProgress {
			relevant = append(relevant, txid)
		}
	}
	return relevant
}

// buildRequest assembles the per-transaction, per-factor-source signing
// input for fsid across relevant transactions.
func (c *Collector) buildRequest(graph *petition.Graph, fsid factorsource.ID, relevant [][32]byte) interactors.SigningRequestForFactorSource {
	req := interactors.SigningRequestForFactorSource{FactorSourceID: fsid}
	for _, txid := range relevant {
		owned := graph.InstancesOwnedBy(txid, fsid)
		if len(owned) == 0 {
			continue
		}
		req.PerTransaction = append(req.PerTransaction, interactors.SigningRequestForTransaction{
			IntentHash:      txid,
			FactorInstances: owned,
		})
	}
	return req
}
