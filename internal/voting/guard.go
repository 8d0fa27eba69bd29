package voting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/voteflow/votecli/internal/chain"
	"github.com/voteflow/votecli/internal/wallet"
)

// GuardStatus classifies how the network guard left the wallet.
type GuardStatus int

const (
	// GuardOK: the wallet was already on the required chain.
	GuardOK GuardStatus = iota
	// GuardSwitched: the wallet switched to the required chain.
	GuardSwitched
	// GuardAdded: the chain was unknown, got added, and the wallet is now
	// on it.
	GuardAdded
	// GuardManual: the guard could not bring the wallet onto the required
	// chain; Reason tells the user what to do.
	GuardManual
)

// GuardResult is the outcome of EnsureNetwork. It never carries an error:
// the guard degrades to GuardManual with a human-readable reason.
type GuardResult struct {
	Status GuardStatus
	Reason string
}

// Ok reports whether the wallet ended up on the required chain.
func (r GuardResult) Ok() bool { return r.Status != GuardManual }

func (r GuardResult) String() string {
	switch r.Status {
	case GuardOK:
		return "already on required network"
	case GuardSwitched:
		return "switched to required network"
	case GuardAdded:
		return "network added and selected"
	default:
		return r.Reason
	}
}

// EnsureNetwork checks the wallet's active chain and, if it differs from
// required, asks the wallet to switch. An unrecognized-chain rejection
// (code 4902) triggers an add-network request; wallets select a chain right
// after adding it. When the wallet is already on the required chain no
// switch or add request is issued.
func EnsureNetwork(ctx context.Context, p wallet.Provider, required chain.Network, logf func(string, ...interface{})) GuardResult {
	if logf == nil {
		logf = log.Printf
	}

	raw, err := p.Request(ctx, "eth_chainId")
	if err != nil {
		logf("reading wallet chain: %v", err)
		return GuardResult{Status: GuardManual, Reason: "wallet did not report its network"}
	}
	var hexID string
	if err := json.Unmarshal(raw, &hexID); err != nil {
		logf("reading wallet chain: %v", err)
		return GuardResult{Status: GuardManual, Reason: "wallet did not report its network"}
	}
	id, err := chain.ParseHexChainID(hexID)
	if err != nil {
		logf("reading wallet chain: %v", err)
		return GuardResult{Status: GuardManual, Reason: "wallet did not report its network"}
	}
	if id == required.ChainID {
		return GuardResult{Status: GuardOK}
	}

	_, err = p.Request(ctx, "wallet_switchEthereumChain", map[string]string{"chainId": required.HexChainID()})
	if err == nil {
		return GuardResult{Status: GuardSwitched}
	}

	var perr *wallet.ProviderError
	if errors.As(err, &perr) && perr.Code == wallet.CodeUnknownChain {
		if _, err := p.Request(ctx, "wallet_addEthereumChain", required.AddChainParams()); err != nil {
			logf("adding network: %v", err)
			return GuardResult{
				Status: GuardManual,
				Reason: fmt.Sprintf("add %s (chain %s) to your wallet manually", required.Name, required.HexChainID()),
			}
		}
		return GuardResult{Status: GuardAdded}
	}

	logf("switching network: %v", err)
	return GuardResult{
		Status: GuardManual,
		Reason: fmt.Sprintf("switch your wallet to %s (chain %s)", required.Name, required.HexChainID()),
	}
}
