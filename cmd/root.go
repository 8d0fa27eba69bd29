package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voteflow/votecli/internal/config"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/voteflow/votecli/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
	yes     bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "votecli",
	Short: "On-chain voting from your terminal",
	Long: `votecli — run voting campaigns on the AIA Testnet from your terminal.

  Browse campaigns without a wallet, or connect a local signing wallet to
  create campaigns, register voters and candidates, and list who is on
  the ballot. Keys live in your OS keychain; transactions are confirmed
  on-chain before anything is reported as done.

Point the tool at a voting contract once:
  votecli init --contract 0xYourVotingContract`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default: ~/.votecli)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "auto-approve wallet prompts")

	rootCmd.AddCommand(
		initCmd,
		walletCmd,
		connectCmd,
		disconnectCmd,
		statusCmd,
		networkCmd,
		balanceCmd,
		campaignsCmd,
		campaignCmd,
		createCmd,
		registerCmd,
		candidatesCmd,
		signCmd,
		verifyCmd,
	)
}
