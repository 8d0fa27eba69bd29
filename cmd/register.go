package cmd

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/voteflow/votecli/internal/contract"
	"github.com/voteflow/votecli/internal/ui"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register for a campaign",
}

var registerVoterCmd = &cobra.Command{
	Use:   "voter [campaign-id] <voter-key>",
	Short: "Register as a voter",
	Long: `Register the connected account as a voter. With one argument the
campaign is chosen from an interactive picker.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		if !m.IsConnected() {
			fmt.Println(ui.Err("Not connected — run: votecli connect"))
			return nil
		}

		id, rest, err := campaignArg(m.Campaigns(), args, 1)
		if errors.Is(err, errPickCancelled) {
			fmt.Println(ui.Meta("Cancelled — no campaign selected."))
			return nil
		}
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Submitting transaction…")
		sp.Start()
		ok := m.RegisterAsVoter(cmd.Context(), id, rest[0])
		sp.Stop()

		if !ok {
			fmt.Println(ui.Err("Voter registration failed."))
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("Registered as a voter in campaign %s.", id)))
		return nil
	},
}

var registerCandidateCmd = &cobra.Command{
	Use:   "candidate [campaign-id] <name> <candidate-key>",
	Short: "Register a candidate",
	Long: `Register a candidate in a campaign. With two arguments the campaign
is chosen from an interactive picker.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		if !m.IsConnected() {
			fmt.Println(ui.Err("Not connected — run: votecli connect"))
			return nil
		}

		id, rest, err := campaignArg(m.Campaigns(), args, 2)
		if errors.Is(err, errPickCancelled) {
			fmt.Println(ui.Meta("Cancelled — no campaign selected."))
			return nil
		}
		if err != nil {
			return err
		}

		sp := ui.NewSpinner("Submitting transaction…")
		sp.Start()
		ok := m.RegisterAsCandidate(cmd.Context(), id, rest[0], rest[1])
		sp.Stop()

		if !ok {
			fmt.Println(ui.Err("Candidate registration failed."))
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("Candidate %q registered in campaign %s.", rest[0], id)))
		return nil
	},
}

// errPickCancelled distinguishes a dismissed picker from a selection, so
// the command can say so instead of exiting silently.
var errPickCancelled = errors.New("campaign selection cancelled")

// pickItem is swapped out in tests.
var pickItem = ui.PickItem

// campaignArg splits args into a campaign id and the trailing arguments.
// When only `tail` arguments are given the id comes from the picker.
func campaignArg(campaigns []contract.Campaign, args []string, tail int) (*big.Int, []string, error) {
	if len(args) > tail {
		id, err := parseCampaignID(args[0])
		return id, args[1:], err
	}
	id, err := pickCampaign(campaigns)
	return id, args, err
}

func pickCampaign(campaigns []contract.Campaign) (*big.Int, error) {
	if len(campaigns) == 0 {
		return nil, fmt.Errorf("no campaigns on the contract yet")
	}
	items := make([]ui.PickerItem, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, ui.PickerItem{
			Label:    c.Name,
			SubLabel: c.Purpose,
			Value:    c.ID.String(),
		})
	}
	picked, err := pickItem("Select a campaign", items)
	if err != nil {
		return nil, err
	}
	if picked == "" {
		return nil, errPickCancelled
	}
	return parseCampaignID(picked)
}

func parseCampaignID(s string) (*big.Int, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return nil, fmt.Errorf("campaign id must be a non-negative number, got %q", s)
	}
	return big.NewInt(id), nil
}

func init() {
	registerCmd.AddCommand(registerVoterCmd, registerCandidateCmd)
}
