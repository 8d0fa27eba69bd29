package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/voteflow/votecli/internal/chain"
	"github.com/voteflow/votecli/internal/ui"
	"github.com/voteflow/votecli/internal/voting"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Show the voting network and probe its endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := requiredNetwork()

		fmt.Println(ui.KeyValueBlock(n.Name, [][2]string{
			{"Chain ID", fmt.Sprintf("%d (%s)", n.ChainID, n.HexChainID())},
			{"Currency", n.Currency},
			{"Explorer", n.ExplorerURL},
		}))

		for _, url := range n.RPCURLs {
			client := chain.NewEVMClient(url)
			latency, block, err := client.Ping(cmd.Context())
			if err != nil {
				fmt.Println(ui.Err(fmt.Sprintf("  %-50s unreachable", url)))
				if verbose {
					fmt.Println(ui.Meta("    " + err.Error()))
				}
				continue
			}
			fmt.Println(ui.Success(fmt.Sprintf("  %-50s %-8s block %d", url, latency.Round(time.Millisecond), block)))
		}

		// With a wallet configured, also check whether it is on the voting
		// network, switching or registering it when it is not.
		if p := newProvider(newWalletManager()); p != nil {
			res := voting.EnsureNetwork(cmd.Context(), p, n, sessionLog)
			if res.Ok() {
				fmt.Println(ui.Info("Wallet network: " + res.String()))
			} else {
				fmt.Println(ui.Warn("Wallet network: " + res.Reason))
			}
		}
		return nil
	},
}
