package chain

import (
	"fmt"
	"math/big"
	"strings"
)

// Network describes one EVM network the voting app can talk to.
type Network struct {
	ChainID     int64    `json:"chain_id"`
	Name        string   `json:"name"`         // display name, e.g. "AIA Testnet"
	Currency    string   `json:"currency"`     // native currency symbol
	Decimals    int      `json:"decimals"`     // native currency decimals
	RPCURLs     []string `json:"rpc_urls"`     // ordered by preference
	ExplorerURL string   `json:"explorer_url"`
}

// AIATestnet is the required network for the voting contract.
var AIATestnet = Network{
	ChainID:     1320, // 0x528
	Name:        "AIA Testnet",
	Currency:    "AIA",
	Decimals:    18,
	RPCURLs:     []string{"https://aia-dataseed1-testnet.aiachain.org/"},
	ExplorerURL: "https://testnet.aiascan.com/",
}

// EthereumMainnet is the boot network of a freshly created local wallet,
// which then learns the voting network via wallet_addEthereumChain.
var EthereumMainnet = Network{
	ChainID:     1,
	Name:        "Ethereum",
	Currency:    "ETH",
	Decimals:    18,
	RPCURLs:     []string{"https://eth.llamarpc.com"},
	ExplorerURL: "https://etherscan.io",
}

// HexChainID returns the chain id in 0x-prefixed hex, the form wallet RPC
// methods (eth_chainId, wallet_switchEthereumChain) exchange.
func (n Network) HexChainID() string {
	return fmt.Sprintf("0x%x", n.ChainID)
}

// PrimaryRPC returns the first RPC URL, or "" when none is configured.
func (n Network) PrimaryRPC() string {
	if len(n.RPCURLs) == 0 {
		return ""
	}
	return n.RPCURLs[0]
}

// AddChainParams returns the parameter object for wallet_addEthereumChain.
func (n Network) AddChainParams() map[string]interface{} {
	return map[string]interface{}{
		"chainId":   n.HexChainID(),
		"chainName": n.Name,
		"rpcUrls":   n.RPCURLs,
		"nativeCurrency": map[string]interface{}{
			"name":     n.Name,
			"symbol":   n.Currency,
			"decimals": n.Decimals,
		},
		"blockExplorerUrls": []string{n.ExplorerURL},
	}
}

// ParseHexChainID parses a 0x-prefixed hex chain id.
func ParseHexChainID(s string) (int64, error) {
	n, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	if !ok {
		return 0, fmt.Errorf("invalid chain id: %q", s)
	}
	return n.Int64(), nil
}
