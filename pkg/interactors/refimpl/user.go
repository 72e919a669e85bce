// Copyright 2025 Certen Protocol

package refimpl

import (
	"context"

	"github.com/radixdlt/walletmfa/pkg/factorsource"
	"github.com/radixdlt/walletmfa/pkg/interactors"
)

// ScriptedUserInteractor answers every ShouldNeglectFactorSource call with
// a fixed, pre-scripted decision; the demo CLI and tests use it instead of
// prompting a real human.
type ScriptedUserInteractor struct {
	// Decide, when set, is consulted for each factor source; its return
	// value is used verbatim. When nil, Default is used for every call.
	Decide  func(fsID factorsource.ID, invalidated []interactors.IntentHash) bool
	Default bool
}

// ShouldNeglectFactorSource implements interactors.UserInteractor.
func (s *ScriptedUserInteractor) ShouldNeglectFactorSource(_ context.Context, fsID factorsource.ID, invalidated []interactors.IntentHash) bool {
	if s.Decide != nil {
		return s.Decide(fsID, invalidated)
	}
	return s.Default
}
