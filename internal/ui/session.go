package ui

import (
	"fmt"
	"time"
)

// SessionPanel renders the connected-session summary box.
func SessionPanel(account, balance, currency, network string, connected bool) string {
	status := StyleError.Render("disconnected")
	if connected {
		status = StyleSuccess.Render("connected")
	}
	acct := Meta("none")
	if account != "" {
		acct = Addr(account)
	}
	return KeyValueBlock("Session", [][2]string{
		{"Status", status},
		{"Account", acct},
		{"Balance", Val(balance + " " + currency)},
		{"Network", ChainName(network)},
	})
}

// CampaignRow is one campaign as shown in the campaign list.
type CampaignRow struct {
	ID            string
	Name          string
	Purpose       string
	Window        string
	MaxCandidates string
}

// CampaignTable renders the campaign list.
func CampaignTable(rows []CampaignRow) string {
	t := NewTable([]Column{
		{Title: "ID", Width: 4},
		{Title: "NAME", Width: 24},
		{Title: "PURPOSE", Width: 32},
		{Title: "WINDOW", Width: 28},
		{Title: "MAX", Width: 4},
	})
	for _, r := range rows {
		t.AddRow(Row{r.ID, r.Name, r.Purpose, r.Window, r.MaxCandidates})
	}
	return t.Render()
}

// CandidateRow is one candidate as shown in the candidate list.
type CandidateRow struct {
	Name string
	Key  string
}

// CandidateTable renders registered candidates of a campaign.
func CandidateTable(rows []CandidateRow) string {
	t := NewTable([]Column{
		{Title: "CANDIDATE", Width: 24},
		{Title: "KEY", Width: 44},
	})
	for _, r := range rows {
		t.AddRow(Row{r.Name, r.Key})
	}
	return t.Render()
}

// FormatWindow renders a campaign's voting window from its start time and
// duration, both in seconds.
func FormatWindow(start, duration int64) string {
	if start == 0 {
		return "not scheduled"
	}
	from := time.Unix(start, 0).UTC()
	return fmt.Sprintf("%s +%s", from.Format("2006-01-02 15:04"), time.Duration(duration)*time.Second)
}
