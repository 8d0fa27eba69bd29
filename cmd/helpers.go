package cmd

import (
	"context"
	"fmt"

	"github.com/voteflow/votecli/internal/chain"
	"github.com/voteflow/votecli/internal/ui"
	"github.com/voteflow/votecli/internal/voting"
	"github.com/voteflow/votecli/internal/wallet"
)

// newWalletManager creates a Manager backed by the config-dir JSON store.
func newWalletManager() *wallet.Manager {
	return wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath())))
}

// requiredNetwork returns the voting network, with any configured custom
// RPC endpoints placed ahead of the public ones.
func requiredNetwork() chain.Network {
	n := chain.AIATestnet
	if len(cfg.CustomRPCs) > 0 {
		n.RPCURLs = append(append([]string{}, cfg.CustomRPCs...), n.RPCURLs...)
	}
	return n
}

// defaultWallet resolves the wallet to act as: the configured default first,
// then the manager's default. Nil when no wallet exists.
func defaultWallet(mgr *wallet.Manager) *wallet.Wallet {
	if cfg.DefaultWallet != "" {
		if w, err := mgr.Get(cfg.DefaultWallet); err == nil {
			return w
		}
	}
	return mgr.Default()
}

// newProvider builds the wallet provider, or nil when no wallet is
// configured (read-only mode).
func newProvider(mgr *wallet.Manager) wallet.Provider {
	w := defaultWallet(mgr)
	if w == nil {
		return nil
	}
	return wallet.NewLocalProvider(w, mgr.Keystore(), chain.EthereumMainnet, approveInTerminal)
}

// approveInTerminal asks for wallet-level approval unless --yes is set.
func approveInTerminal(prompt string) bool {
	if yes {
		return true
	}
	return ui.Confirm(prompt)
}

// newSession builds the voting session manager and, when auto-connect is
// enabled, re-attaches a cached session account.
func newSession(ctx context.Context) (*voting.Manager, error) {
	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("no voting contract configured\n  Set one with: votecli init --contract <address>\n  Or export VOTECLI_CONTRACT_ADDRESS")
	}
	if _, err := chain.NormalizeAddress(cfg.ContractAddress); err != nil {
		return nil, fmt.Errorf("configured contract address: %w", err)
	}

	mgr := newWalletManager()
	p := newProvider(mgr)
	m := voting.NewManager(cfg.ContractAddress, p,
		voting.WithNetwork(requiredNetwork()),
		voting.WithLogf(sessionLog),
	)

	if cfg.AutoConnect && p != nil {
		if st, ok := wallet.LoadSession(); ok && st.Account != "" {
			m.Resume(ctx, st.Account)
		}
	}
	return m, nil
}

// sessionLog routes the session manager's diagnostics to the terminal.
// Failures inside the session are logged, not returned, so this is where
// the user sees them.
func sessionLog(format string, args ...interface{}) {
	fmt.Println(ui.Meta("  " + fmt.Sprintf(format, args...)))
}
