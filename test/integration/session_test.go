package integration_test

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voteflow/votecli/internal/chain"
	"github.com/voteflow/votecli/internal/contract"
	"github.com/voteflow/votecli/internal/voting"
	"github.com/voteflow/votecli/internal/wallet"
)

// Full-stack session flow against a mock node: local wallet provider, real
// ABI encoding and decoding, real transaction signing.

const (
	testKey      = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddr     = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	contractAddr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
)

// mockNode serves JSON-RPC with ABI-encoded eth_call results dispatched by
// four-byte selector.
func mockNode(t *testing.T) *httptest.Server {
	t.Helper()
	parsed, err := contract.VotingABI()
	require.NoError(t, err)

	packOut := func(method string, vals ...interface{}) string {
		out, err := parsed.Methods[method].Outputs.Pack(vals...)
		require.NoError(t, err)
		return "0x" + hex.EncodeToString(out)
	}

	calls := map[string]string{
		hex.EncodeToString(parsed.Methods["eventCount"].ID): packOut("eventCount", big.NewInt(2)),
		hex.EncodeToString(parsed.Methods["getVotingEvent"].ID): packOut("getVotingEvent",
			big.NewInt(0), "Board Election", "elect the board", "board-key",
			big.NewInt(1700000000), big.NewInt(86400), big.NewInt(5)),
		hex.EncodeToString(parsed.Methods["getCandidates"].ID): packOut("getCandidates",
			[]contract.Candidate{
				{Name: "alice", Key: "a-key", Registered: true},
				{Name: "bob", Key: "b-key", Registered: false},
			}),
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int               `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		reply := func(result string) {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
		}

		switch req.Method {
		case "eth_getBalance":
			reply(`"0xde0b6b3a7640000"`) // 1 AIA
		case "eth_blockNumber":
			reply(`"0x10"`)
		case "eth_estimateGas":
			reply(`"0x186a0"`)
		case "eth_gasPrice":
			reply(`"0x3b9aca00"`)
		case "eth_getTransactionCount":
			reply(`"0x0"`)
		case "eth_sendRawTransaction":
			reply(`"0xfeedbeef"`)
		case "eth_getTransactionReceipt":
			reply(`{"status":"0x1","blockNumber":"0x11","gasUsed":"0x5208"}`)
		case "eth_call":
			var callObj struct {
				Data string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(req.Params[0], &callObj))
			selector := strings.TrimPrefix(callObj.Data, "0x")[:8]
			result, ok := calls[selector]
			if !ok {
				fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":3,"message":"execution reverted"}}`, req.ID)
				return
			}
			reply(fmt.Sprintf("%q", result))
		default:
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"method not found"}}`, req.ID)
		}
	}))
}

func newConnectedSession(t *testing.T, srv *httptest.Server) *voting.Manager {
	t.Helper()

	ks := wallet.NewInMemoryKeystore()
	ref, err := ks.Store("alice", testKey)
	require.NoError(t, err)
	w := &wallet.Wallet{Name: "alice", Address: testAddr, Type: wallet.TypeSigning, KeyRef: ref}

	boot := chain.Network{ChainID: 1, Name: "Ethereum", Currency: "ETH", Decimals: 18, RPCURLs: []string{srv.URL}}
	required := chain.Network{ChainID: 1320, Name: "AIA Testnet", Currency: "AIA", Decimals: 18, RPCURLs: []string{srv.URL}}

	p := wallet.NewLocalProvider(w, ks, boot, nil)
	m := voting.NewManager(contractAddr, p,
		voting.WithNetwork(required),
		voting.WithLogf(t.Logf),
	)

	require.NoError(t, m.Connect(context.Background()))
	return m
}

func TestConnectLoadsSessionAndCampaigns(t *testing.T) {
	srv := mockNode(t)
	defer srv.Close()

	m := newConnectedSession(t, srv)

	assert.True(t, m.IsConnected())
	assert.Equal(t, testAddr, m.Account())
	assert.Equal(t, "1.000", m.Balance())
	assert.Equal(t, voting.GuardAdded, m.LastGuardResult().Status)

	campaigns := m.Campaigns()
	require.Len(t, campaigns, 2)
	assert.Equal(t, "Board Election", campaigns[0].Name)
	assert.Equal(t, "board-key", campaigns[0].Key)
	assert.Equal(t, int64(86400), campaigns[0].Duration.Int64())
}

func TestCreateCampaignSignsAndConfirms(t *testing.T) {
	srv := mockNode(t)
	defer srv.Close()

	m := newConnectedSession(t, srv)

	ok := m.CreateCampaign(context.Background(), contract.CampaignParams{
		Name:          "Budget Vote",
		Purpose:       "approve the budget",
		Key:           "budget-key",
		StartTime:     big.NewInt(1700000000),
		Duration:      big.NewInt(3600),
		MaxCandidates: big.NewInt(3),
	})

	assert.True(t, ok)
	assert.Len(t, m.Campaigns(), 2)
}

func TestRegisteredCandidatesDecodeThroughABI(t *testing.T) {
	srv := mockNode(t)
	defer srv.Close()

	m := newConnectedSession(t, srv)

	got := m.RegisteredCandidates(context.Background(), big.NewInt(0))
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Name)
	assert.Equal(t, "a-key", got[0].Key)
}

// A resumed session starts from a freshly booted wallet that only knows its
// default network. The campaign reads must come through the voting network's
// endpoint, not the boot endpoint.
func TestResumeReadsThroughRequiredNetwork(t *testing.T) {
	srv := mockNode(t)
	defer srv.Close()

	ks := wallet.NewInMemoryKeystore()
	ref, err := ks.Store("alice", testKey)
	require.NoError(t, err)
	w := &wallet.Wallet{Name: "alice", Address: testAddr, Type: wallet.TypeSigning, KeyRef: ref}

	boot := chain.Network{ChainID: 1, Name: "Ethereum", Currency: "ETH", Decimals: 18, RPCURLs: []string{"http://localhost:0"}}
	required := chain.Network{ChainID: 1320, Name: "AIA Testnet", Currency: "AIA", Decimals: 18, RPCURLs: []string{srv.URL}}

	p := wallet.NewLocalProvider(w, ks, boot, nil)
	m := voting.NewManager(contractAddr, p,
		voting.WithNetwork(required),
		voting.WithLogf(t.Logf),
	)

	m.Resume(context.Background(), testAddr)

	assert.Equal(t, voting.GuardAdded, m.LastGuardResult().Status)
	assert.Equal(t, "1.000", m.Balance())
	assert.Len(t, m.Campaigns(), 2)

	// Mutations go through the same verified endpoint.
	assert.True(t, m.RegisterAsVoter(context.Background(), big.NewInt(0), "voter-key"))
}

func TestReadOnlySessionStillListsCampaigns(t *testing.T) {
	srv := mockNode(t)
	defer srv.Close()

	required := chain.Network{ChainID: 1320, Name: "AIA Testnet", Currency: "AIA", Decimals: 18, RPCURLs: []string{srv.URL}}
	m := voting.NewManager(contractAddr, nil,
		voting.WithNetwork(required),
		voting.WithLogf(t.Logf),
	)

	require.NoError(t, m.Refresh(context.Background()))
	assert.Len(t, m.Campaigns(), 2)
	assert.False(t, m.IsConnected())

	// Writes stay off-limits without a wallet.
	assert.False(t, m.RegisterAsVoter(context.Background(), big.NewInt(0), "k"))
}
