package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/voteflow/votecli/internal/chain"
)

// EIP-1193 provider error codes.
const (
	CodeUserRejected = 4001 // user declined the request
	CodeUnknownChain = 4902 // wallet_switchEthereumChain target not registered
)

// ProviderError is the structured error a wallet provider returns for
// request-level failures, mirroring EIP-1193 semantics.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// Provider is the wallet capability object: an agent that reports the
// selected network and account on request, EIP-1193 style. When no wallet
// is configured the session degrades to a read-only public endpoint.
type Provider interface {
	// Request issues a wallet RPC request. Chain methods the wallet does
	// not handle itself are forwarded to the selected network's endpoint.
	Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)
	// Client returns a read endpoint bound to the currently selected network.
	Client() *chain.EVMClient
}

// SigningProvider is a Provider that can also yield a transaction signer.
type SigningProvider interface {
	Provider
	Signer() (*Signer, error)
}

// ApproveFunc is consulted before requests that need user authorization
// (account access, network switches). A nil hook auto-approves.
type ApproveFunc func(prompt string) bool

// LocalProvider is a keyring-backed wallet acting as the injected provider:
// it owns a selected network, a registry of networks it knows about, and the
// signing identity of one local wallet.
type LocalProvider struct {
	mu         sync.Mutex
	wallet     *Wallet
	ks         KeystoreBackend
	networks   map[int64]chain.Network
	selected   chain.Network
	client     *chain.EVMClient
	approve    ApproveFunc
	authorized bool
}

// NewLocalProvider creates a provider for the given wallet, booted on the
// boot network. The voting network is not pre-registered; callers teach it
// to the provider via wallet_addEthereumChain.
func NewLocalProvider(w *Wallet, ks KeystoreBackend, boot chain.Network, approve ApproveFunc) *LocalProvider {
	p := &LocalProvider{
		wallet:   w,
		ks:       ks,
		networks: map[int64]chain.Network{boot.ChainID: boot},
		selected: boot,
		approve:  approve,
	}
	p.client = chain.NewEVMClient(boot.PrimaryRPC())
	return p
}

// RegisterNetwork pre-registers a network without going through
// wallet_addEthereumChain (a wallet that already knows the chain).
func (p *LocalProvider) RegisterNetwork(n chain.Network) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.networks[n.ChainID] = n
}

// Client returns the read endpoint for the currently selected network.
func (p *LocalProvider) Client() *chain.EVMClient {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.client
}

// Signer returns a transaction signer for the provider's wallet.
func (p *LocalProvider) Signer() (*Signer, error) {
	if p.wallet == nil {
		return nil, fmt.Errorf("no wallet configured")
	}
	if p.wallet.Type != TypeSigning {
		return nil, fmt.Errorf("wallet %q is watch-only and cannot sign", p.wallet.Name)
	}
	return NewSigner(p.wallet, p.ks), nil
}

// Request dispatches a wallet RPC request.
func (p *LocalProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	switch method {
	case "eth_chainId":
		return p.chainID()
	case "eth_accounts":
		return p.accounts()
	case "eth_requestAccounts":
		return p.requestAccounts()
	case "wallet_switchEthereumChain":
		return p.switchChain(params)
	case "wallet_addEthereumChain":
		return p.addChain(params)
	default:
		return p.Client().Call(ctx, method, params...)
	}
}

func (p *LocalProvider) chainID() (json.RawMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return json.Marshal(p.selected.HexChainID())
}

func (p *LocalProvider) accounts() (json.RawMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.authorized || p.wallet == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string{p.wallet.Address})
}

func (p *LocalProvider) requestAccounts() (json.RawMessage, error) {
	if p.wallet == nil {
		return nil, &ProviderError{Code: CodeUserRejected, Message: "no account available"}
	}
	if p.approve != nil && !p.approve(fmt.Sprintf("Allow votecli to use account %s?", p.wallet.Address)) {
		return nil, &ProviderError{Code: CodeUserRejected, Message: "user rejected account access"}
	}
	p.mu.Lock()
	p.authorized = true
	addr := p.wallet.Address
	p.mu.Unlock()
	return json.Marshal([]string{addr})
}

// switchChainParam is the single parameter of wallet_switchEthereumChain.
type switchChainParam struct {
	ChainID string `json:"chainId"`
}

func (p *LocalProvider) switchChain(params []interface{}) (json.RawMessage, error) {
	var req switchChainParam
	if err := decodeParam(params, &req); err != nil {
		return nil, err
	}
	id, err := chain.ParseHexChainID(req.ChainID)
	if err != nil {
		return nil, &ProviderError{Code: CodeUserRejected, Message: err.Error()}
	}

	p.mu.Lock()
	target, known := p.networks[id]
	p.mu.Unlock()
	if !known {
		return nil, &ProviderError{
			Code:    CodeUnknownChain,
			Message: fmt.Sprintf("unrecognized chain id %s", req.ChainID),
		}
	}
	if p.approve != nil && !p.approve(fmt.Sprintf("Switch network to %s?", target.Name)) {
		return nil, &ProviderError{Code: CodeUserRejected, Message: "user rejected network switch"}
	}

	p.selectNetwork(target)
	return json.RawMessage("null"), nil
}

// addChainParam is the single parameter of wallet_addEthereumChain.
type addChainParam struct {
	ChainID        string   `json:"chainId"`
	ChainName      string   `json:"chainName"`
	RPCUrls        []string `json:"rpcUrls"`
	NativeCurrency struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	} `json:"nativeCurrency"`
	BlockExplorerUrls []string `json:"blockExplorerUrls"`
}

func (p *LocalProvider) addChain(params []interface{}) (json.RawMessage, error) {
	var req addChainParam
	if err := decodeParam(params, &req); err != nil {
		return nil, err
	}
	id, err := chain.ParseHexChainID(req.ChainID)
	if err != nil {
		return nil, &ProviderError{Code: CodeUserRejected, Message: err.Error()}
	}
	if len(req.RPCUrls) == 0 {
		return nil, &ProviderError{Code: CodeUserRejected, Message: "no rpc urls supplied"}
	}
	if p.approve != nil && !p.approve(fmt.Sprintf("Add network %s (chain id %s)?", req.ChainName, req.ChainID)) {
		return nil, &ProviderError{Code: CodeUserRejected, Message: "user rejected adding network"}
	}

	n := chain.Network{
		ChainID:  id,
		Name:     req.ChainName,
		Currency: req.NativeCurrency.Symbol,
		Decimals: req.NativeCurrency.Decimals,
		RPCURLs:  req.RPCUrls,
	}
	if len(req.BlockExplorerUrls) > 0 {
		n.ExplorerURL = req.BlockExplorerUrls[0]
	}

	p.mu.Lock()
	p.networks[id] = n
	p.mu.Unlock()

	// Wallets switch to a chain right after adding it.
	p.selectNetwork(n)
	return json.RawMessage("null"), nil
}

func (p *LocalProvider) selectNetwork(n chain.Network) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = n
	p.client = chain.NewEVMClient(n.PrimaryRPC())
}

// decodeParam re-marshals the first request parameter into out, so callers
// can pass maps, structs, or raw JSON interchangeably.
func decodeParam(params []interface{}, out interface{}) error {
	if len(params) == 0 {
		return &ProviderError{Code: CodeUserRejected, Message: "missing parameters"}
	}
	raw, err := json.Marshal(params[0])
	if err != nil {
		return &ProviderError{Code: CodeUserRejected, Message: "invalid parameters"}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ProviderError{Code: CodeUserRejected, Message: "invalid parameters"}
	}
	return nil
}
