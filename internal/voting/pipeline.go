package voting

import (
	"context"
	"math/big"

	"github.com/voteflow/votecli/internal/contract"
)

// CreateCampaign submits a createVotingEvent transaction and waits for it
// to confirm. Returns true only on confirmation.
func (m *Manager) CreateCampaign(ctx context.Context, p contract.CampaignParams) bool {
	return m.mutate(ctx, "creating campaign", func(h contractAPI) (string, error) {
		return h.CreateVotingEvent(ctx, p)
	})
}

// RegisterAsVoter registers the connected account as a voter for the given
// campaign. Returns true only on confirmation.
func (m *Manager) RegisterAsVoter(ctx context.Context, eventID *big.Int, key string) bool {
	return m.mutate(ctx, "registering voter", func(h contractAPI) (string, error) {
		return h.RegisterVoter(ctx, eventID, key)
	})
}

// RegisterAsCandidate registers a candidate for the given campaign.
// Returns true only on confirmation.
func (m *Manager) RegisterAsCandidate(ctx context.Context, eventID *big.Int, name, key string) bool {
	return m.mutate(ctx, "registering candidate", func(h contractAPI) (string, error) {
		return h.RegisterCandidate(ctx, eventID, name, key)
	})
}

// mutate runs the shared write pipeline: signer check, single-flight gate,
// fresh signing handle, submit, wait for the receipt, then refresh the
// campaign list. Failures at any stage are logged and yield false; the
// refresh runs only after a confirmed transaction.
func (m *Manager) mutate(ctx context.Context, action string, submit func(contractAPI) (string, error)) bool {
	m.mu.Lock()
	if m.signing == nil || !m.connected {
		m.mu.Unlock()
		m.logf("%s: wallet not connected", action)
		return false
	}
	if m.txPending {
		m.mu.Unlock()
		m.logf("%s: another transaction is pending", action)
		return false
	}
	m.txPending = true
	m.loading++
	sp := m.signing
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.txPending = false
		m.mu.Unlock()
		m.endLoading()
	}()

	signer, err := sp.Signer()
	if err != nil {
		m.logf("%s: acquiring signer: %v", action, err)
		return false
	}
	h, err := m.newHandle(signer)
	if err != nil {
		m.logf("%s: binding contract: %v", action, err)
		return false
	}

	hash, err := submit(h)
	if err != nil {
		m.logf("%s: %v", action, err)
		return false
	}
	receipt, err := h.WaitMined(ctx, hash)
	if err != nil {
		m.logf("%s: waiting for confirmation: %v", action, err)
		return false
	}
	m.logf("%s: confirmed in block %d (tx %s)", action, receipt.BlockNumber, hash)

	if err := m.Refresh(ctx); err != nil {
		m.logf("refreshing campaigns: %v", err)
	}
	return true
}

// RegisteredCandidates returns the campaign's candidates whose registration
// flag is set, in contract order. The query runs through a signing handle,
// so a disconnected session gets nil.
func (m *Manager) RegisteredCandidates(ctx context.Context, eventID *big.Int) []contract.Candidate {
	m.mu.Lock()
	sp := m.signing
	connected := m.connected
	m.mu.Unlock()
	if sp == nil || !connected {
		m.logf("listing candidates: wallet not connected")
		return nil
	}

	signer, err := sp.Signer()
	if err != nil {
		m.logf("listing candidates: acquiring signer: %v", err)
		return nil
	}
	h, err := m.newHandle(signer)
	if err != nil {
		m.logf("listing candidates: binding contract: %v", err)
		return nil
	}

	all, err := h.Candidates(ctx, eventID)
	if err != nil {
		m.logf("listing candidates: %v", err)
		return nil
	}
	out := make([]contract.Candidate, 0, len(all))
	for _, c := range all {
		if c.Registered {
			out = append(out, c)
		}
	}
	return out
}
