package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mrosati/positions"
	"github.com/mrosati/positions/eodhd"
	"github.com/mrosati/positions/renderer"
)

// positionsCmd holds the flags for the 'positions' subcommand.
type positionsCmd struct {
	dust     float64
	offline  bool
	workers  int
	currency string
}

func (*positionsCmd) Name() string { return "positions" }
func (*positionsCmd) Synopsis() string {
	return "display the per-security positions derived from the broker ledger"
}
func (*positionsCmd) Usage() string {
	return `pos positions [-dust <shares>] [-offline] [-j <n>] [-c <currency>]

  Aggregates the transactions of the ledger file into one position per
  security and displays them with the portfolio total value.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.dust, "dust", 0.001, "drop positions whose absolute share count is below this threshold")
	f.BoolVar(&c.offline, "offline", false, "do not fetch quotes, value open positions at their average buy price")
	f.IntVar(&c.workers, "j", 4, "number of parallel quote downloads")
	f.StringVar(&c.currency, "c", positions.DefaultCurrency, "currency of the ledger amounts")
}

func (c *positionsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, status := buildPortfolio(c.currency, c.dust, c.workers, c.offline)
	if status != subcommands.ExitSuccess {
		return status
	}

	printMarkdown(renderer.PositionsMarkdown(report))
	return subcommands.ExitSuccess
}

// buildPortfolio loads the ledger and the directory and assembles the
// portfolio. It is shared with the 'assist' subcommand.
func buildPortfolio(currency string, dust float64, workers int, offline bool) (*positions.Portfolio, subcommands.ExitStatus) {
	txs, err := DecodeLedger(currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return nil, subcommands.ExitFailure
	}

	directory, err := DecodeDirectory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading securities: %v\n", err)
		return nil, subcommands.ExitFailure
	}

	var source positions.LastPriceSource
	if !offline {
		source = &eodhd.QuoteSource{Client: eodhd.FromEnv(), Resolve: directory.ISIN}
	}

	opts := positions.DefaultBuildOptions()
	opts.DustThreshold = positions.Q(dust)
	opts.Workers = workers
	opts.Currency = currency

	report, err := positions.Build(txs, directory, source, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building positions: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return report, subcommands.ExitSuccess
}
