package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voteflow/votecli/internal/chain"
	"github.com/voteflow/votecli/internal/ui"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show the native balance of an address",
	Long:  `Fetch the AIA balance of the given address, or of the default wallet.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var addr string
		if len(args) > 0 {
			var err error
			addr, err = chain.NormalizeAddress(args[0])
			if err != nil {
				return err
			}
		} else {
			w := defaultWallet(newWalletManager())
			if w == nil {
				return fmt.Errorf("no wallet configured and no address given\n  Usage: votecli balance <address>")
			}
			addr = w.Address
		}

		n := requiredNetwork()
		client := chain.NewEVMClient(n.PrimaryRPC())
		wei, err := client.GetBalance(cmd.Context(), addr)
		if err != nil {
			return fmt.Errorf("fetching balance: %w", err)
		}

		fmt.Printf("  %s  %s\n", ui.Addr(addr), ui.Val(chain.FormatUnits(wei, n.Decimals)+" "+n.Currency))
		return nil
	},
}
