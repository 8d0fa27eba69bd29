package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voteflow/votecli/internal/chain"
	"github.com/voteflow/votecli/internal/ui"
)

var (
	initContract string
	initRPC      string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Point votecli at a voting contract",
	Long: `Store the voting contract address (and optionally a custom RPC endpoint)
in the config directory. Every other command uses this contract.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if initContract == "" && initRPC == "" {
			return fmt.Errorf("nothing to do — pass --contract and/or --rpc")
		}

		if initContract != "" {
			addr, err := chain.NormalizeAddress(initContract)
			if err != nil {
				return fmt.Errorf("contract address: %w", err)
			}
			cfg.ContractAddress = addr
		}
		if initRPC != "" {
			if err := cfg.AddRPC(initRPC); err != nil {
				return err
			}
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Println(ui.Banner())
		if cfg.ContractAddress != "" {
			fmt.Println(ui.Success("Voting contract: " + ui.Addr(cfg.ContractAddress)))
		}
		if len(cfg.CustomRPCs) > 0 {
			fmt.Println(ui.Success("Custom RPC: " + cfg.CustomRPCs[0]))
		}
		fmt.Println(ui.Hint("Add a wallet next: votecli wallet new <name>"))
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initContract, "contract", "", "voting contract address")
	initCmd.Flags().StringVar(&initRPC, "rpc", "", "custom RPC endpoint for the voting network")
}
