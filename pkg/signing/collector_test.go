// Copyright 2025 Certen Protocol

package signing

import (
	"context"
	"testing"
	"time"

	"github.com/radixdlt/walletmfa/pkg/entity"
	"github.com/radixdlt/walletmfa/pkg/factorinstance"
	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/interactors"
	"github.com/radixdlt/walletmfa/pkg/matrix"
	"github.com/radixdlt/walletmfa/pkg/petition"
)

func mkInstance(kind factorsource.Kind, seed byte) factorinstance.HierarchicalDeterministicFactorInstance {
	return factorinstance.HierarchicalDeterministicFactorInstance{
		FactorSourceID: factorsource.NewHashID(kind, []byte{seed}),
		PublicKey:      factorinstance.PublicKey{Curve: factorinstance.CurveCurve25519, Bytes: []byte{seed}},
	}
}

// scriptedInteractor signs every instance it is asked about unless its
// factor source ID appears in neglect, in which case it reports the whole
// factor source neglected for NeglectFailure.
type scriptedInteractor struct {
	neglect map[factorsource.ID]bool
	asked   []factorsource.ID
}

func (s *scriptedInteractor) Sign(_ context.Context, req interactors.SigningRequestForFactorSource) (interactors.SigningOutcome, error) {
	s.asked = append(s.asked, req.FactorSourceID)
	if s.neglect[req.FactorSourceID] {
		return interactors.SigningOutcome{Neglected: true, Reason: interactors.NeglectFailure}, nil
	}
	out := interactors.SigningOutcome{Signatures: make(map[[32]byte][]interactors.HDSignature)}
	for _, pt := range req.PerTransaction {
		for _, inst := range pt.FactorInstances {
			out.Signatures[pt.IntentHash] = append(out.Signatures[pt.IntentHash], interactors.HDSignature{
				FactorInstance: inst,
				IntentHash:     pt.IntentHash,
				Signature:      []byte{0x01},
			})
		}
	}
	return out, nil
}

// scriptedUserInteractor answers ShouldNeglectFactorSource via decide, for
// tests that need to observe what the Collector offers to neglect before
// it ever signs.
type scriptedUserInteractor struct {
	decide func(fsID factorsource.ID, invalidated []interactors.IntentHash) bool
}

func (s *scriptedUserInteractor) ShouldNeglectFactorSource(_ context.Context, fsID factorsource.ID, invalidated []interactors.IntentHash) bool {
	return s.decide(fsID, invalidated)
}

func buildSingleEntityGraph(t *testing.T, veci factorinstance.HierarchicalDeterministicFactorInstance) (*petition.Graph, [32]byte) {
	t.Helper()
	txid := [32]byte{0x01}
	addr := entity.Address{0x01}
	g := petition.Build([]petition.TransactionInput{
		{IntentHash: txid, Entities: []petition.EntityInput{{Address: addr, State: entity.NewUnsecured(veci)}}},
	})
	return g, txid
}

func TestCollectSignsSingleFactorTransaction(t *testing.T) {
	veci := mkInstance(factorsource.KindDevice, 1)
	g, txid := buildSingleEntityGraph(t, veci)

	fs := factorsource.FactorSource{ID: veci.FactorSourceID, LastUsed: time.Unix(0, 0)}
	interactor := &scriptedInteractor{}
	c := New(interactor)

	outcome, err := c.Collect(context.Background(), g, []factorsource.FactorSource{fs}, DefaultFinishEarlyStrategy)
	if err != nil {
		t.Fatal(err)
	}
	if len(outcome.SuccessfulTransactions) != 1 || outcome.SuccessfulTransactions[0] != txid {
		t.Fatalf("expected the single transaction to succeed, got %+v", outcome)
	}
	if len(outcome.FailedTransactions) != 0 {
		t.Fatalf("expected no failed transactions, got %+v", outcome.FailedTransactions)
	}
}

func TestCollectStopsEarlyOnceAllTransactionsValid(t *testing.T) {
	veciA := mkInstance(factorsource.KindLedger, 1)
	gA, _ := buildSingleEntityGraph(t, veciA)

	// A second factor source (lower friction, later in the order) that
	// should never be asked once the single transaction already succeeded
	// from the ledger factor signing.
	laterFsid := factorsource.NewHashID(factorsource.KindDevice, []byte{9})

	fsLedger := factorsource.FactorSource{ID: veciA.FactorSourceID, LastUsed: time.Unix(0, 0)}
	fsLater := factorsource.FactorSource{ID: laterFsid, LastUsed: time.Unix(0, 0)}

	interactor := &scriptedInteractor{}
	c := New(interactor)

	outcome, err := c.Collect(context.Background(), gA, []factorsource.FactorSource{fsLedger, fsLater}, DefaultFinishEarlyStrategy)
	if err != nil {
		t.Fatal(err)
	}
	if len(outcome.SuccessfulTransactions) != 1 {
		t.Fatalf("expected success, got %+v", outcome)
	}
	for _, asked := range interactor.asked {
		if asked == laterFsid {
			t.Fatalf("expected to stop before asking the irrelevant later factor source")
		}
	}
}

func TestCollectRecordsNeglectAndFailsBelowThreshold(t *testing.T) {
	a := mkInstance(factorsource.KindLedger, 1)
	b := mkInstance(factorsource.KindArculus, 2)

	m, err := matrix.New([]factorinstance.HierarchicalDeterministicFactorInstance{a, b}, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	txid := [32]byte{0x02}
	addr := entity.Address{0x02}
	g := petition.Build([]petition.TransactionInput{
		{IntentHash: txid, Entities: []petition.EntityInput{{Address: addr, State: entity.NewSecurified(entity.SecurifiedEntityControl{Matrix: m})}}},
	})

	fsA := factorsource.FactorSource{ID: a.FactorSourceID, LastUsed: time.Unix(0, 0)}
	fsB := factorsource.FactorSource{ID: b.FactorSourceID, LastUsed: time.Unix(1, 0)}

	interactor := &scriptedInteractor{neglect: map[factorsource.ID]bool{a.FactorSourceID: true}}
	c := New(interactor)

	outcome, err := c.Collect(context.Background(), g, []factorsource.FactorSource{fsA, fsB}, DefaultFinishEarlyStrategy)
	if err != nil {
		t.Fatal(err)
	}
	if len(outcome.FailedTransactions) != 1 || outcome.FailedTransactions[0] != txid {
		t.Fatalf("expected the transaction to fail once the threshold can no longer be met, got %+v", outcome)
	}
	if len(outcome.Neglected) != 1 || outcome.Neglected[0].FactorSourceID != a.FactorSourceID {
		t.Fatalf("expected factor source a recorded as neglected, got %+v", outcome.Neglected)
	}
}

func TestCollectConsultsUserInteractorBeforeSigning(t *testing.T) {
	veci := mkInstance(factorsource.KindDevice, 1)
	g, txid := buildSingleEntityGraph(t, veci)

	fs := factorsource.FactorSource{ID: veci.FactorSourceID, LastUsed: time.Unix(0, 0)}
	interactor := &scriptedInteractor{}
	var askedFsid factorsource.ID
	var askedInvalidated []interactors.IntentHash
	user := &scriptedUserInteractor{decide: func(fsID factorsource.ID, invalidated []interactors.IntentHash) bool {
		askedFsid = fsID
		askedInvalidated = invalidated
		return true
	}}
	c := New(interactor, WithUserInteractor(user))

	outcome, err := c.Collect(context.Background(), g, []factorsource.FactorSource{fs}, DefaultFinishEarlyStrategy)
	if err != nil {
		t.Fatal(err)
	}
	if !askedFsid.Equal(veci.FactorSourceID) {
		t.Fatalf("expected the user interactor consulted for the lone factor source, got %v", askedFsid)
	}
	if len(askedInvalidated) != 1 || askedInvalidated[0] != txid {
		t.Fatalf("expected the lone transaction reported as invalidated, got %v", askedInvalidated)
	}
	if len(interactor.asked) != 0 {
		t.Fatal("expected the signing interactor to never be consulted once the user neglected the factor source")
	}
	if len(outcome.Neglected) != 1 || outcome.Neglected[0].FactorSourceID != veci.FactorSourceID || outcome.Neglected[0].Reason != petition.NeglectUserExplicitlySkipped {
		t.Fatalf("expected the factor source recorded as user-neglected, got %+v", outcome.Neglected)
	}
	if len(outcome.FailedTransactions) != 1 || outcome.FailedTransactions[0] != txid {
		t.Fatalf("expected the transaction to fail once its only factor source is neglected, got %+v", outcome)
	}
}

func TestCollectSignsWithoutConsultingUserInteractorWhenDeclined(t *testing.T) {
	veci := mkInstance(factorsource.KindDevice, 1)
	g, txid := buildSingleEntityGraph(t, veci)

	fs := factorsource.FactorSource{ID: veci.FactorSourceID, LastUsed: time.Unix(0, 0)}
	interactor := &scriptedInteractor{}
	user := &scriptedUserInteractor{decide: func(factorsource.ID, []interactors.IntentHash) bool { return false }}
	c := New(interactor, WithUserInteractor(user))

	outcome, err := c.Collect(context.Background(), g, []factorsource.FactorSource{fs}, DefaultFinishEarlyStrategy)
	if err != nil {
		t.Fatal(err)
	}
	if len(interactor.asked) != 1 || interactor.asked[0] != veci.FactorSourceID {
		t.Fatalf("expected the signing interactor consulted once the user declined to neglect, got %v", interactor.asked)
	}
	if len(outcome.SuccessfulTransactions) != 1 || outcome.SuccessfulTransactions[0] != txid {
		t.Fatalf("expected the transaction to succeed, got %+v", outcome)
	}
}

func TestCollectSkipsFactorSourceIrrelevantToAnyTransaction(t *testing.T) {
	veci := mkInstance(factorsource.KindDevice, 1)
	g, _ := buildSingleEntityGraph(t, veci)

	unrelated := factorsource.FactorSource{ID: factorsource.NewHashID(factorsource.KindYubikey, []byte{7}), LastUsed: time.Unix(0, 0)}
	owner := factorsource.FactorSource{ID: veci.FactorSourceID, LastUsed: time.Unix(0, 0)}

	interactor := &scriptedInteractor{}
	c := New(interactor)

	// StopWhenAllTransactionsValid is false here so both kinds get walked,
	// proving the unrelated source was skipped rather than merely never
	// reached.
	_, err := c.Collect(context.Background(), g, []factorsource.FactorSource{owner, unrelated}, FinishEarlyStrategy{})
	if err != nil {
		t.Fatal(err)
	}
	for _, asked := range interactor.asked {
		if asked == unrelated.ID {
			t.Fatalf("expected the irrelevant factor source to be skipped silently")
		}
	}
}
