package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"
	"github.com/mrosati/positions/eodhd"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct{}

func (*fetchCmd) Name() string { return "fetch" }
func (*fetchCmd) Synopsis() string {
	return "refresh the historical price cache for every ticker of the directory"
}
func (*fetchCmd) Usage() string {
	return `pos fetch

  Downloads the end-of-day series of every ticker in the securities file,
  fetching only the days missing from the local cache.
`
}

func (*fetchCmd) SetFlags(_ *flag.FlagSet) {}

func (c *fetchCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	directory, err := DecodeDirectory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading securities: %v\n", err)
		return subcommands.ExitFailure
	}

	db, err := OpenPriceDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening price cache: %v\n", err)
		return subcommands.ExitFailure
	}

	client := eodhd.FromEnv()
	tickers := directory.Tickers()
	sort.Strings(tickers)

	// One bad ticker does not stop the others, but the run reports failure.
	failed := 0
	for _, ticker := range tickers {
		added, err := eodhd.Update(db, client, ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error updating %s: %v\n", ticker, err)
			failed++
			continue
		}
		fmt.Printf("%s: %d new days\n", ticker, added)
	}

	if err := db.Persist(); err != nil {
		fmt.Fprintf(os.Stderr, "Error persisting price cache: %v\n", err)
		return subcommands.ExitFailure
	}
	if failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
