package cmd

import (
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"

	"github.com/voteflow/votecli/internal/contract"
	"github.com/voteflow/votecli/internal/ui"
)

var (
	createName     string
	createPurpose  string
	createKey      string
	createStart    string
	createDuration time.Duration
	createMax      int64
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a voting campaign",
	Long: `Submit a createVotingEvent transaction with the connected wallet and wait
for it to confirm. --start takes RFC 3339 ("2026-09-01T12:00:00Z") or
"now".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if createName == "" || createKey == "" {
			return fmt.Errorf("--name and --key are required")
		}
		start := time.Now()
		if createStart != "now" {
			var err error
			start, err = time.Parse(time.RFC3339, createStart)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
		}
		if createMax <= 0 {
			return fmt.Errorf("--max-candidates must be positive")
		}

		m, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		if !m.IsConnected() {
			fmt.Println(ui.Err("Not connected — run: votecli connect"))
			return nil
		}

		params := contract.CampaignParams{
			Name:          createName,
			Purpose:       createPurpose,
			Key:           createKey,
			StartTime:     big.NewInt(start.Unix()),
			Duration:      big.NewInt(int64(createDuration.Seconds())),
			MaxCandidates: big.NewInt(createMax),
		}

		sp := ui.NewSpinner("Submitting transaction…")
		sp.Start()
		ok := m.CreateCampaign(cmd.Context(), params)
		sp.Stop()

		if !ok {
			fmt.Println(ui.Err("Campaign was not created."))
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("Campaign %q created and confirmed.", createName)))
		fmt.Println(ui.Meta(fmt.Sprintf("%d campaign(s) on the contract now", len(m.Campaigns()))))
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "campaign name")
	createCmd.Flags().StringVar(&createPurpose, "purpose", "", "what is being decided")
	createCmd.Flags().StringVar(&createKey, "key", "", "campaign key")
	createCmd.Flags().StringVar(&createStart, "start", "now", `voting start, RFC 3339 or "now"`)
	createCmd.Flags().DurationVar(&createDuration, "duration", 24*time.Hour, "voting window length")
	createCmd.Flags().Int64Var(&createMax, "max-candidates", 5, "maximum number of candidates")
}
