package voting

import (
	"github.com/voteflow/votecli/internal/chain"
	"github.com/voteflow/votecli/internal/wallet"
)

// ResolveEndpoint picks the RPC endpoint for contract reads. A configured
// provider wins; without one the public endpoint of the required network is
// used, so browsing stays available with no wallet at all.
func ResolveEndpoint(p wallet.Provider, network chain.Network) *chain.EVMClient {
	if p != nil {
		return p.Client()
	}
	return chain.NewEVMClient(network.PrimaryRPC())
}
