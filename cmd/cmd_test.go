package cmd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voteflow/votecli/internal/config"
	"github.com/voteflow/votecli/internal/contract"
	"github.com/voteflow/votecli/internal/ui"
)

func TestParseCampaignID(t *testing.T) {
	id, err := parseCampaignID("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.Int64())

	_, err = parseCampaignID("-1")
	assert.Error(t, err)
	_, err = parseCampaignID("abc")
	assert.Error(t, err)
}

func TestCampaignRowFormatting(t *testing.T) {
	row := campaignRow(contract.Campaign{
		ID:            big.NewInt(3),
		Name:          "Board",
		Purpose:       "elect the board",
		StartTime:     big.NewInt(1700000000),
		Duration:      big.NewInt(3600),
		MaxCandidates: big.NewInt(5),
	})
	assert.Equal(t, "3", row.ID)
	assert.Equal(t, "Board", row.Name)
	assert.Contains(t, row.Window, "2023-11-14")
	assert.Equal(t, "5", row.MaxCandidates)
}

func stubPicker(t *testing.T, value string) {
	t.Helper()
	orig := pickItem
	pickItem = func(string, []ui.PickerItem) (string, error) { return value, nil }
	t.Cleanup(func() { pickItem = orig })
}

func TestCampaignArgExplicitID(t *testing.T) {
	id, rest, err := campaignArg(nil, []string{"2", "voter-key"}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id.Int64())
	assert.Equal(t, []string{"voter-key"}, rest)
}

func TestCampaignArgPickerSelects(t *testing.T) {
	stubPicker(t, "1")
	campaigns := []contract.Campaign{
		{ID: big.NewInt(0), Name: "Board"},
		{ID: big.NewInt(1), Name: "Budget"},
	}

	id, rest, err := campaignArg(campaigns, []string{"voter-key"}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Int64())
	assert.Equal(t, []string{"voter-key"}, rest)
}

// A dismissed picker must be distinguishable from a selection so the
// command can report the cancellation.
func TestCampaignArgPickerCancelled(t *testing.T) {
	stubPicker(t, "")
	campaigns := []contract.Campaign{{ID: big.NewInt(0), Name: "Board"}}

	_, _, err := campaignArg(campaigns, []string{"voter-key"}, 1)
	assert.ErrorIs(t, err, errPickCancelled)
}

func TestCampaignArgNoCampaigns(t *testing.T) {
	_, _, err := campaignArg(nil, []string{"voter-key"}, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errPickCancelled)
}

func TestRequiredNetworkPrefersCustomRPCs(t *testing.T) {
	dir := t.TempDir()
	var err error
	cfg, err = config.Load(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.AddRPC("http://localhost:8545"))

	n := requiredNetwork()
	assert.Equal(t, int64(1320), n.ChainID)
	assert.Equal(t, "http://localhost:8545", n.PrimaryRPC())
	assert.Contains(t, n.RPCURLs, "https://aia-dataseed1-testnet.aiachain.org/")
}
