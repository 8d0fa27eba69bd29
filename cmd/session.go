package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voteflow/votecli/internal/ui"
	"github.com/voteflow/votecli/internal/voting"
	"github.com/voteflow/votecli/internal/wallet"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the default wallet to the voting contract",
	Long: `Run the full connection flow: verify the wallet network (switching or
adding the voting network when needed), authorize the account, fetch its
balance, and load the campaign list. The session is cached so later
commands reuse it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newSession(cmd.Context())
		if err != nil {
			return err
		}

		if err := m.Connect(cmd.Context()); err != nil {
			if err == voting.ErrNoWallet {
				fmt.Println(ui.Err("No wallet configured."))
				fmt.Println(ui.Hint("Create one with: votecli wallet new <name>"))
				return nil
			}
			return err
		}

		guard := m.LastGuardResult()
		if !guard.Ok() {
			fmt.Println(ui.Warn("Network: " + guard.Reason))
		} else {
			fmt.Println(ui.Info("Network: " + guard.String()))
		}

		if !m.IsConnected() {
			fmt.Println(ui.Err("Wallet did not authorize an account."))
			return nil
		}

		mgr := newWalletManager()
		walletName := ""
		if w := defaultWallet(mgr); w != nil {
			walletName = w.Name
		}
		wallet.SaveSession(wallet.SessionState{Account: m.Account(), Wallet: walletName})

		net := m.Network()
		fmt.Println(ui.SessionPanel(m.Account(), m.Balance(), net.Currency, net.Name, true))
		fmt.Println(ui.Meta(fmt.Sprintf("%d campaign(s) loaded", len(m.Campaigns()))))
		return nil
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Forget the cached session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wallet.ClearSession(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Println(ui.Success("Session cleared."))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newSession(cmd.Context())
		if err != nil {
			return err
		}

		net := m.Network()
		fmt.Println(ui.SessionPanel(m.Account(), m.Balance(), net.Currency, net.Name, m.IsConnected()))
		fmt.Println(ui.Meta("Contract: ") + ui.Addr(m.ContractAddress()))
		fmt.Println(ui.Meta("Chain:    ") + fmt.Sprintf("%d (%s)", net.ChainID, net.HexChainID()))
		if !m.IsConnected() {
			fmt.Println(ui.Hint("Connect with: votecli connect"))
		}
		return nil
	},
}
