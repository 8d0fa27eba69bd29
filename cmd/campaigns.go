package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/voteflow/votecli/internal/contract"
	"github.com/voteflow/votecli/internal/ui"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List all voting campaigns",
	Long:  `Enumerate every campaign on the voting contract. Works without a wallet.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newSession(cmd.Context())
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Loading campaigns…")
		sp.Start()
		err = m.Refresh(cmd.Context())
		sp.Stop()
		if err != nil {
			return fmt.Errorf("loading campaigns: %w", err)
		}

		campaigns := m.Campaigns()
		if len(campaigns) == 0 {
			fmt.Println(ui.Info("No campaigns on this contract yet."))
			fmt.Println(ui.Hint("Create the first one with: votecli create"))
			return nil
		}

		rows := make([]ui.CampaignRow, len(campaigns))
		for i, c := range campaigns {
			rows[i] = campaignRow(c)
		}
		fmt.Println(ui.CampaignTable(rows))
		fmt.Println(ui.Meta(fmt.Sprintf("%d campaign(s)", len(campaigns))))
		return nil
	},
}

var campaignCmd = &cobra.Command{
	Use:   "campaign <id>",
	Short: "Show one campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("campaign id must be a number, got %q", args[0])
		}

		m, err := newSession(cmd.Context())
		if err != nil {
			return err
		}

		c, err := m.CampaignByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("fetching campaign %d: %w", id, err)
		}

		fmt.Println(ui.KeyValueBlock("Campaign "+c.ID.String(), [][2]string{
			{"Name", c.Name},
			{"Purpose", c.Purpose},
			{"Key", c.Key},
			{"Window", ui.FormatWindow(c.StartTime.Int64(), c.Duration.Int64())},
			{"Max candidates", c.MaxCandidates.String()},
		}))
		return nil
	},
}

func campaignRow(c contract.Campaign) ui.CampaignRow {
	return ui.CampaignRow{
		ID:            c.ID.String(),
		Name:          c.Name,
		Purpose:       c.Purpose,
		Window:        ui.FormatWindow(c.StartTime.Int64(), c.Duration.Int64()),
		MaxCandidates: c.MaxCandidates.String(),
	}
}
