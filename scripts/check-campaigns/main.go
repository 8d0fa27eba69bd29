// check-campaigns: dumps every campaign on a voting contract, probing each
// configured RPC endpoint of the voting network in parallel first.
//
// Run from the module root:
//
//	go run ./scripts/check-campaigns 0xYourVotingContract
package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/voteflow/votecli/internal/chain"
	"github.com/voteflow/votecli/internal/contract"
	"github.com/voteflow/votecli/internal/ui"
)

const rpcTimeout = 12 * time.Second

type probe struct {
	url     string
	latency time.Duration
	block   uint64
	err     error
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: check-campaigns <contract-address>")
		os.Exit(2)
	}
	addr := os.Args[1]
	network := chain.AIATestnet

	// Probe every endpoint in parallel; read campaigns from the fastest
	// healthy one.
	probes := make([]probe, len(network.RPCURLs))
	var wg sync.WaitGroup
	for i, url := range network.RPCURLs {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
			defer cancel()
			latency, block, err := chain.NewEVMClient(url).Ping(ctx)
			probes[i] = probe{url: url, latency: latency, block: block, err: err}
		}(i, url)
	}
	wg.Wait()

	var best *probe
	for i := range probes {
		p := &probes[i]
		if p.err != nil {
			fmt.Println(ui.Err(fmt.Sprintf("%-50s unreachable", p.url)))
			continue
		}
		fmt.Println(ui.Success(fmt.Sprintf("%-50s %-8s block %d", p.url, p.latency.Round(time.Millisecond), p.block)))
		if best == nil || p.latency < best.latency {
			best = p
		}
	}
	if best == nil {
		fmt.Fprintln(os.Stderr, "no reachable endpoint")
		os.Exit(1)
	}

	handle, err := contract.NewReadHandle(addr, chain.NewEVMClient(best.url))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	count, err := handle.EventCount(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tNAME\tKEY\tWINDOW\tMAX")
	for i := int64(0); i < count.Int64(); i++ {
		c, err := handle.VotingEvent(ctx, big.NewInt(i))
		if err != nil {
			fmt.Fprintf(w, "%d\t(error: %v)\t\t\t\n", i, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Key,
			ui.FormatWindow(c.StartTime.Int64(), c.Duration.Int64()),
			c.MaxCandidates)
	}
	w.Flush()
	fmt.Printf("\n%d campaign(s) on %s\n", count.Int64(), addr)
}
