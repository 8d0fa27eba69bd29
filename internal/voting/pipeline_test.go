package voting

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voteflow/votecli/internal/contract"
	"github.com/voteflow/votecli/internal/wallet"
)

func connectedManager(t *testing.T, fc *fakeContract) *Manager {
	t.Helper()
	w, ks := signingWallet(t)
	p := &scriptedProvider{chainHex: "0x528", signer: wallet.NewSigner(w, ks)}
	m := newTestManager(t, p, fc)
	m.Resume(context.Background(), testAddr)
	return m
}

func newParams(name string) contract.CampaignParams {
	return contract.CampaignParams{
		Name:          name,
		Purpose:       "choose a maintainer",
		Key:           "k-" + name,
		StartTime:     big.NewInt(1700000000),
		Duration:      big.NewInt(86400),
		MaxCandidates: big.NewInt(3),
	}
}

func TestCreateCampaignConfirmsAndRefreshes(t *testing.T) {
	fc := &fakeContract{campaigns: sampleCampaigns(1)}
	m := connectedManager(t, fc)
	before := fc.refreshCount()

	ok := m.CreateCampaign(context.Background(), newParams("board"))

	require.True(t, ok)
	assert.Equal(t, []string{"create:board"}, fc.submitted())
	// Exactly one enumeration follows the confirmed transaction.
	assert.Equal(t, before+1, fc.refreshCount())
	assert.False(t, m.Loading())
}

func TestCreateCampaignWithoutConnection(t *testing.T) {
	fc := &fakeContract{}
	m := newTestManager(t, nil, fc)

	ok := m.CreateCampaign(context.Background(), newParams("board"))

	assert.False(t, ok)
	assert.Empty(t, fc.submitted())
	assert.Zero(t, fc.refreshCount())
}

func TestSubmitFailureSkipsRefresh(t *testing.T) {
	fc := &fakeContract{submitErr: errors.New("insufficient funds")}
	m := connectedManager(t, fc)
	before := fc.refreshCount()

	ok := m.CreateCampaign(context.Background(), newParams("board"))

	assert.False(t, ok)
	assert.Equal(t, before, fc.refreshCount())
	assert.False(t, m.Loading())
}

func TestConfirmationFailureSkipsRefresh(t *testing.T) {
	fc := &fakeContract{waitErr: errors.New("transaction reverted")}
	m := connectedManager(t, fc)
	before := fc.refreshCount()

	ok := m.RegisterAsVoter(context.Background(), big.NewInt(2), "voter-key")

	assert.False(t, ok)
	assert.Equal(t, []string{"voter:2"}, fc.submitted())
	assert.Equal(t, before, fc.refreshCount())
}

func TestRegisterAsCandidate(t *testing.T) {
	fc := &fakeContract{campaigns: sampleCampaigns(1)}
	m := connectedManager(t, fc)

	ok := m.RegisterAsCandidate(context.Background(), big.NewInt(0), "carol", "carol-key")

	require.True(t, ok)
	assert.Equal(t, []string{"candidate:carol"}, fc.submitted())
}

func TestSignerFailureRejectsAction(t *testing.T) {
	fc := &fakeContract{}
	p := &scriptedProvider{chainHex: "0x528", signerErr: errors.New("wallet is watch-only")}
	m := newTestManager(t, p, fc)
	m.Resume(context.Background(), testAddr)

	ok := m.CreateCampaign(context.Background(), newParams("board"))

	assert.False(t, ok)
	assert.Empty(t, fc.submitted())
}

// A second action while one transaction is in flight is rejected instead
// of queued.
func TestPendingTransactionRejectsSecondAction(t *testing.T) {
	fc := &fakeContract{campaigns: sampleCampaigns(1)}
	m := connectedManager(t, fc)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	fc.mu.Lock()
	fc.waitHook = func() {
		once.Do(func() {
			close(inFlight)
			<-release
		})
	}
	fc.mu.Unlock()

	done := make(chan bool, 1)
	go func() { done <- m.CreateCampaign(context.Background(), newParams("first")) }()
	<-inFlight

	second := m.CreateCampaign(context.Background(), newParams("second"))
	assert.False(t, second)

	close(release)
	assert.True(t, <-done)
	assert.Equal(t, []string{"create:first"}, fc.submitted())
}

func TestRegisteredCandidatesFiltersUnregistered(t *testing.T) {
	fc := &fakeContract{
		candidates: map[string][]contract.Candidate{
			"4": {
				{Name: "alice", Key: "a", Registered: true},
				{Name: "bob", Key: "b", Registered: false},
				{Name: "carol", Key: "c", Registered: true},
			},
		},
	}
	m := connectedManager(t, fc)

	got := m.RegisteredCandidates(context.Background(), big.NewInt(4))

	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Name)
	assert.Equal(t, "carol", got[1].Name)
}

func TestRegisteredCandidatesWithoutConnection(t *testing.T) {
	fc := &fakeContract{
		candidates: map[string][]contract.Candidate{
			"1": {{Name: "alice", Key: "a", Registered: true}},
		},
	}
	m := newTestManager(t, nil, fc)

	assert.Nil(t, m.RegisteredCandidates(context.Background(), big.NewInt(1)))
}

func TestRegisteredCandidatesQueryFailure(t *testing.T) {
	fc := &fakeContract{candErr: errors.New("rpc down")}
	m := connectedManager(t, fc)

	assert.Nil(t, m.RegisteredCandidates(context.Background(), big.NewInt(1)))
}
