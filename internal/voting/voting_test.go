package voting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/voteflow/votecli/internal/chain"
	"github.com/voteflow/votecli/internal/contract"
	"github.com/voteflow/votecli/internal/wallet"
)

// Shared test doubles for the voting package.

// Hardhat's well-known first dev account.
const (
	testKey  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

const testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

// fakeContract is a scriptable contractAPI.
type fakeContract struct {
	mu         sync.Mutex
	campaigns  []contract.Campaign
	candidates map[string][]contract.Candidate

	countErr error
	eventErr map[int64]error
	candErr  error

	txHash    string
	submitErr error
	waitErr   error

	countHook  func() // runs at EventCount entry, outside the lock
	waitHook   func() // runs at WaitMined entry, outside the lock
	countCalls int
	submits    []string
}

func (f *fakeContract) EventCount(ctx context.Context) (*big.Int, error) {
	if f.countHook != nil {
		f.countHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countCalls++
	if f.countErr != nil {
		return nil, f.countErr
	}
	return big.NewInt(int64(len(f.campaigns))), nil
}

func (f *fakeContract) VotingEvent(ctx context.Context, index *big.Int) (contract.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := index.Int64()
	if err := f.eventErr[i]; err != nil {
		return contract.Campaign{}, err
	}
	if i < 0 || i >= int64(len(f.campaigns)) {
		return contract.Campaign{}, errors.New("index out of range")
	}
	return f.campaigns[i], nil
}

func (f *fakeContract) Candidates(ctx context.Context, eventID *big.Int) ([]contract.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.candErr != nil {
		return nil, f.candErr
	}
	return f.candidates[eventID.String()], nil
}

func (f *fakeContract) submit(kind string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits = append(f.submits, kind)
	if f.submitErr != nil {
		return "", f.submitErr
	}
	if f.txHash == "" {
		return "0xabc123", nil
	}
	return f.txHash, nil
}

func (f *fakeContract) CreateVotingEvent(ctx context.Context, p contract.CampaignParams) (string, error) {
	return f.submit("create:" + p.Name)
}

func (f *fakeContract) RegisterVoter(ctx context.Context, eventID *big.Int, key string) (string, error) {
	return f.submit("voter:" + eventID.String())
}

func (f *fakeContract) RegisterCandidate(ctx context.Context, eventID *big.Int, name, key string) (string, error) {
	return f.submit("candidate:" + name)
}

func (f *fakeContract) WaitMined(ctx context.Context, txHash string) (*chain.TxReceipt, error) {
	if f.waitHook != nil {
		f.waitHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	return &chain.TxReceipt{Hash: txHash, Status: 1, BlockNumber: 7, GasUsed: 21000}, nil
}

func (f *fakeContract) submitted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.submits))
	copy(out, f.submits)
	return out
}

func (f *fakeContract) refreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countCalls
}

// scriptedProvider is a wallet.SigningProvider with per-method canned
// responses and a request log.
type scriptedProvider struct {
	mu        sync.Mutex
	chainHex  string
	accounts  []string
	errs      map[string]error
	requests  []string
	client    *chain.EVMClient
	signer    *wallet.Signer
	signerErr error
}

func (p *scriptedProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	p.mu.Lock()
	p.requests = append(p.requests, method)
	p.mu.Unlock()
	if err := p.errs[method]; err != nil {
		return nil, err
	}
	switch method {
	case "eth_chainId":
		return json.Marshal(p.chainHex)
	case "eth_accounts", "eth_requestAccounts":
		return json.Marshal(p.accounts)
	case "wallet_switchEthereumChain", "wallet_addEthereumChain":
		return json.RawMessage("null"), nil
	}
	return nil, fmt.Errorf("unexpected method %s", method)
}

func (p *scriptedProvider) Client() *chain.EVMClient { return p.client }

func (p *scriptedProvider) Signer() (*wallet.Signer, error) {
	if p.signerErr != nil {
		return nil, p.signerErr
	}
	return p.signer, nil
}

func (p *scriptedProvider) calls(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, m := range p.requests {
		if m == method {
			n++
		}
	}
	return n
}

// rpcMock serves canned JSON-RPC results keyed by method.
func rpcMock(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int    `json:"id"`
			Method string `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding rpc request: %v", err)
		}
		result, ok := results[req.Method]
		if !ok {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"method not found"}}`, req.ID)
			return
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
	}))
}

func sampleCampaigns(n int) []contract.Campaign {
	out := make([]contract.Campaign, n)
	for i := range out {
		out[i] = contract.Campaign{
			ID:            big.NewInt(int64(i)),
			Name:          fmt.Sprintf("Campaign %d", i),
			Purpose:       "test ballot",
			Key:           fmt.Sprintf("key-%d", i),
			StartTime:     big.NewInt(1700000000),
			Duration:      big.NewInt(86400),
			MaxCandidates: big.NewInt(5),
		}
	}
	return out
}

func newTestManager(t *testing.T, p wallet.Provider, fc *fakeContract) *Manager {
	t.Helper()
	return NewManager(testContract, p,
		WithLogf(t.Logf),
		withHandleFactory(func(signer *wallet.Signer) (contractAPI, error) {
			return fc, nil
		}),
	)
}

func signingWallet(t *testing.T) (*wallet.Wallet, wallet.KeystoreBackend) {
	t.Helper()
	ks := wallet.NewInMemoryKeystore()
	ref, err := ks.Store("alice", testKey)
	if err != nil {
		t.Fatalf("seeding keystore: %v", err)
	}
	w := &wallet.Wallet{
		Name:    "alice",
		Address: testAddr,
		Type:    wallet.TypeSigning,
		KeyRef:  ref,
	}
	return w, ks
}
