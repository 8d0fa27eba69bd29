package wallet

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voteflow/votecli/internal/chain"
)

var bootNet = chain.Network{
	ChainID:  1,
	Name:     "Ethereum",
	Currency: "ETH",
	Decimals: 18,
	RPCURLs:  []string{"http://localhost:0"},
}

func testProvider(t *testing.T, approve ApproveFunc) *LocalProvider {
	t.Helper()
	w, ks := signingFixture(t)
	return NewLocalProvider(w, ks, bootNet, approve)
}

func requestStrings(t *testing.T, p *LocalProvider, method string, params ...interface{}) []string {
	t.Helper()
	raw, err := p.Request(context.Background(), method, params...)
	require.NoError(t, err)
	var out []string
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestChainIDReportsBootNetwork(t *testing.T) {
	p := testProvider(t, nil)
	raw, err := p.Request(context.Background(), "eth_chainId")
	require.NoError(t, err)
	var id string
	require.NoError(t, json.Unmarshal(raw, &id))
	assert.Equal(t, "0x1", id)
}

func TestRequestAccountsApproved(t *testing.T) {
	p := testProvider(t, func(string) bool { return true })
	accounts := requestStrings(t, p, "eth_requestAccounts")
	assert.Equal(t, []string{testAddr}, accounts)

	// Once authorized, eth_accounts reports the account too.
	accounts = requestStrings(t, p, "eth_accounts")
	assert.Equal(t, []string{testAddr}, accounts)
}

func TestRequestAccountsRejected(t *testing.T) {
	p := testProvider(t, func(string) bool { return false })
	_, err := p.Request(context.Background(), "eth_requestAccounts")
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeUserRejected, perr.Code)

	// Unauthorized eth_accounts stays empty.
	assert.Empty(t, requestStrings(t, p, "eth_accounts"))
}

func TestSwitchUnknownChainIs4902(t *testing.T) {
	p := testProvider(t, nil)
	_, err := p.Request(context.Background(), "wallet_switchEthereumChain",
		map[string]string{"chainId": chain.AIATestnet.HexChainID()})
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeUnknownChain, perr.Code)
}

func TestSwitchKnownChain(t *testing.T) {
	p := testProvider(t, nil)
	p.RegisterNetwork(chain.AIATestnet)

	_, err := p.Request(context.Background(), "wallet_switchEthereumChain",
		map[string]string{"chainId": "0x528"})
	require.NoError(t, err)

	raw, err := p.Request(context.Background(), "eth_chainId")
	require.NoError(t, err)
	assert.Equal(t, `"0x528"`, string(raw))
	assert.Equal(t, chain.AIATestnet.PrimaryRPC(), p.Client().URL())
}

func TestAddChainSwitchesToIt(t *testing.T) {
	p := testProvider(t, nil)
	_, err := p.Request(context.Background(), "wallet_addEthereumChain", chain.AIATestnet.AddChainParams())
	require.NoError(t, err)

	raw, err := p.Request(context.Background(), "eth_chainId")
	require.NoError(t, err)
	assert.Equal(t, `"0x528"`, string(raw))

	// The chain is now registered: a later switch succeeds.
	_, err = p.Request(context.Background(), "wallet_switchEthereumChain",
		map[string]string{"chainId": "0x528"})
	assert.NoError(t, err)
}

func TestAddChainRejected(t *testing.T) {
	p := testProvider(t, func(string) bool { return false })
	_, err := p.Request(context.Background(), "wallet_addEthereumChain", chain.AIATestnet.AddChainParams())
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, CodeUserRejected, perr.Code)
}

func TestSwitchMissingParams(t *testing.T) {
	p := testProvider(t, nil)
	_, err := p.Request(context.Background(), "wallet_switchEthereumChain")
	assert.Error(t, err)
}

func TestSignerFromProvider(t *testing.T) {
	p := testProvider(t, nil)
	s, err := p.Signer()
	require.NoError(t, err)
	assert.Equal(t, testAddr, s.Address())
}

func TestSignerWatchOnlyProvider(t *testing.T) {
	w := &Wallet{Name: "watch", Address: testAddr, Type: TypeWatchOnly}
	p := NewLocalProvider(w, NewInMemoryKeystore(), bootNet, nil)
	_, err := p.Signer()
	assert.Error(t, err)
}
