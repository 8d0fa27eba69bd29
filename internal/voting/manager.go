package voting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"sync"

	"github.com/voteflow/votecli/internal/chain"
	"github.com/voteflow/votecli/internal/contract"
	"github.com/voteflow/votecli/internal/wallet"
)

// ErrNoWallet is returned by Connect when no wallet is configured; callers
// show a setup prompt instead of failing hard.
var ErrNoWallet = errors.New("no wallet available")

// zeroBalance is the balance shown for a disconnected session.
const zeroBalance = "0.000"

// contractAPI is the slice of the contract handle the manager depends on.
// Tests substitute a fake; production uses *contract.Handle.
type contractAPI interface {
	EventCount(ctx context.Context) (*big.Int, error)
	VotingEvent(ctx context.Context, index *big.Int) (contract.Campaign, error)
	Candidates(ctx context.Context, eventID *big.Int) ([]contract.Candidate, error)
	CreateVotingEvent(ctx context.Context, p contract.CampaignParams) (string, error)
	RegisterVoter(ctx context.Context, eventID *big.Int, key string) (string, error)
	RegisterCandidate(ctx context.Context, eventID *big.Int, name, key string) (string, error)
	WaitMined(ctx context.Context, txHash string) (*chain.TxReceipt, error)
}

// handleFactory builds a contract handle bound to the current endpoint.
// A nil signer yields a read-only handle.
type handleFactory func(signer *wallet.Signer) (contractAPI, error)

// Manager owns the wallet session, the campaign read model, and the
// mutating action pipeline. It is safe for concurrent use.
type Manager struct {
	network      chain.Network
	contractAddr string
	provider     wallet.Provider // nil = no wallet injected
	newHandle    handleFactory
	logf         func(format string, args ...interface{})

	mu         sync.Mutex
	account    string
	balance    string
	connected  bool
	signing    wallet.SigningProvider
	handle     contractAPI // current read-only handle
	campaigns  []contract.Campaign
	loading    int // reference count; >0 means work in flight
	refreshGen uint64
	txPending  bool
	guard      GuardResult
}

// Option configures a Manager.
type Option func(*Manager)

// WithNetwork overrides the required network (AIA testnet by default).
func WithNetwork(n chain.Network) Option {
	return func(m *Manager) { m.network = n }
}

// WithLogf sets the diagnostic sink. Failures inside the manager are
// logged, not returned, so the sink is the only place they surface.
func WithLogf(logf func(string, ...interface{})) Option {
	return func(m *Manager) { m.logf = logf }
}

// withHandleFactory substitutes the contract handle constructor (tests).
func withHandleFactory(f handleFactory) Option {
	return func(m *Manager) { m.newHandle = f }
}

// NewManager creates a session manager for the given contract address.
// provider may be nil: the session then runs read-only against the public
// endpoint. The initial read-only handle is built immediately.
func NewManager(contractAddr string, provider wallet.Provider, opts ...Option) *Manager {
	m := &Manager{
		network:      chain.AIATestnet,
		contractAddr: contractAddr,
		provider:     provider,
		balance:      zeroBalance,
		logf:         log.Printf,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.newHandle == nil {
		m.newHandle = func(signer *wallet.Signer) (contractAPI, error) {
			client := ResolveEndpoint(m.provider, m.network)
			if signer == nil {
				return contract.NewReadHandle(m.contractAddr, client)
			}
			return contract.NewSigningHandle(m.contractAddr, client, signer, big.NewInt(m.network.ChainID))
		}
	}
	m.rebuildReadHandle()
	return m
}

// Connect establishes a signing session: network guard, account
// authorization, balance, handle rebuild, campaign refresh. Only wallet
// absence is reported as an error; everything else is best effort, logged,
// and leaves the session in whatever state was reached.
func (m *Manager) Connect(ctx context.Context) error {
	sp, ok := m.provider.(wallet.SigningProvider)
	if m.provider == nil || !ok {
		return ErrNoWallet
	}

	res := EnsureNetwork(ctx, m.provider, m.network, m.logf)
	m.mu.Lock()
	m.guard = res
	m.mu.Unlock()

	raw, err := m.provider.Request(ctx, "eth_requestAccounts")
	if err != nil {
		m.logf("connecting wallet: %v", err)
		return nil
	}
	var accounts []string
	if err := json.Unmarshal(raw, &accounts); err != nil || len(accounts) == 0 {
		m.logf("connecting wallet: no account authorized")
		return nil
	}
	account := accounts[0]

	balance := zeroBalance
	if wei, err := m.provider.Client().GetBalance(ctx, account); err != nil {
		m.logf("fetching balance for %s: %v", account, err)
	} else {
		balance = chain.FormatUnits(wei, m.network.Decimals)
	}

	m.mu.Lock()
	m.signing = sp
	m.balance = balance
	m.mu.Unlock()

	m.setAccount(ctx, account)
	return nil
}

// Resume re-attaches a previously authorized account (a cached session)
// without prompting. The network guard runs first: a fresh process boots
// the wallet on its default network, so the endpoint must be re-verified
// before any balance fetch or campaign read. The account observer then
// rebuilds the handle and refreshes the campaign list.
func (m *Manager) Resume(ctx context.Context, account string) {
	if m.provider != nil {
		res := EnsureNetwork(ctx, m.provider, m.network, m.logf)
		m.mu.Lock()
		m.guard = res
		m.mu.Unlock()
	}
	if sp, ok := m.provider.(wallet.SigningProvider); ok {
		m.mu.Lock()
		m.signing = sp
		m.mu.Unlock()
	}
	if account != "" && m.provider != nil {
		if client := m.provider.Client(); client != nil {
			if wei, err := client.GetBalance(ctx, account); err != nil {
				m.logf("fetching balance for %s: %v", account, err)
			} else {
				m.mu.Lock()
				m.balance = chain.FormatUnits(wei, m.network.Decimals)
				m.mu.Unlock()
			}
		}
	}
	m.setAccount(ctx, account)
}

// Disconnect resets the session to its defaults and rebuilds a fresh
// read-only handle.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.account = ""
	m.connected = false
	m.balance = zeroBalance
	m.signing = nil
	m.mu.Unlock()
	m.rebuildReadHandle()
}

// setAccount is the account-change observer: any account change re-resolves
// the contract handle and re-runs the campaign refresh.
func (m *Manager) setAccount(ctx context.Context, account string) {
	m.mu.Lock()
	changed := m.account != account
	m.account = account
	m.connected = account != ""
	m.mu.Unlock()

	if changed && account != "" {
		m.rebuildReadHandle()
		if err := m.Refresh(ctx); err != nil {
			m.logf("refreshing campaigns: %v", err)
		}
	}
}

func (m *Manager) rebuildReadHandle() {
	h, err := m.newHandle(nil)
	if err != nil {
		m.logf("binding voting contract: %v", err)
		return
	}
	m.mu.Lock()
	m.handle = h
	m.mu.Unlock()
}

// Refresh enumerates all campaigns by count-then-index-fetch and replaces
// the stored list wholesale. On any failure the previous list is kept. Only
// the most recently started refresh applies its result, so overlapping
// refreshes cannot clobber newer data with older.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	m.loading++
	m.refreshGen++
	gen := m.refreshGen
	h := m.handle
	m.mu.Unlock()
	defer m.endLoading()

	if h == nil {
		return errors.New("voting contract is not bound")
	}

	count, err := h.EventCount(ctx)
	if err != nil {
		return fmt.Errorf("counting campaigns: %w", err)
	}

	n := count.Int64()
	fresh := make([]contract.Campaign, 0, n)
	for i := int64(0); i < n; i++ {
		c, err := h.VotingEvent(ctx, big.NewInt(i))
		if err != nil {
			return fmt.Errorf("fetching campaign %d: %w", i, err)
		}
		fresh = append(fresh, c)
	}

	m.mu.Lock()
	if gen == m.refreshGen {
		m.campaigns = fresh
	}
	m.mu.Unlock()
	return nil
}

// CampaignByID fetches a single campaign directly, bypassing the cached
// list. Unlike the bulk enumeration, the fetch error propagates.
func (m *Manager) CampaignByID(ctx context.Context, id int64) (contract.Campaign, error) {
	m.mu.Lock()
	h := m.handle
	m.mu.Unlock()
	if h == nil {
		return contract.Campaign{}, errors.New("voting contract is not bound")
	}
	return h.VotingEvent(ctx, big.NewInt(id))
}

func (m *Manager) endLoading() {
	m.mu.Lock()
	if m.loading > 0 {
		m.loading--
	}
	m.mu.Unlock()
}

// --- session accessors ---

// Account returns the connected account, or "" when disconnected.
func (m *Manager) Account() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.account
}

// Balance returns the account's native balance as a decimal string.
func (m *Manager) Balance() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance
}

// IsConnected reports whether a session account is attached.
func (m *Manager) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Loading reports whether any refresh or mutating call is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading > 0
}

// Campaigns returns a copy of the cached campaign list, in contract index
// order.
func (m *Manager) Campaigns() []contract.Campaign {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]contract.Campaign, len(m.campaigns))
	copy(out, m.campaigns)
	return out
}

// ContractAddress returns the bound voting contract address.
func (m *Manager) ContractAddress() string { return m.contractAddr }

// Network returns the required network.
func (m *Manager) Network() chain.Network { return m.network }

// LastGuardResult returns the network guard outcome of the latest Connect
// or Resume.
func (m *Manager) LastGuardResult() GuardResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.guard
}
