package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voteflow/votecli/internal/ui"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates <campaign-id>",
	Short: "List a campaign's registered candidates",
	Long: `Show everyone on the ballot for a campaign, skipping entries whose
registration flag is unset. Requires a connected wallet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCampaignID(args[0])
		if err != nil {
			return err
		}

		m, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		if !m.IsConnected() {
			fmt.Println(ui.Err("Not connected — run: votecli connect"))
			return nil
		}

		candidates := m.RegisteredCandidates(cmd.Context(), id)
		if len(candidates) == 0 {
			fmt.Println(ui.Info("No registered candidates in this campaign."))
			fmt.Println(ui.Hint("Add one with: votecli register candidate " + args[0] + " <name> <key>"))
			return nil
		}

		rows := make([]ui.CandidateRow, len(candidates))
		for i, c := range candidates {
			rows[i] = ui.CandidateRow{Name: c.Name, Key: c.Key}
		}
		fmt.Println(ui.CandidateTable(rows))
		fmt.Println(ui.Meta(fmt.Sprintf("%d candidate(s) on the ballot", len(candidates))))
		return nil
	},
}
