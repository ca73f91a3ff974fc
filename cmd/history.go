package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mrosati/positions/eodhd"
	"github.com/mrosati/positions/renderer"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	update bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the cached price series of one ticker" }
func (*historyCmd) Usage() string {
	return `pos history [-u] <ticker>

  Prints the cached end-of-day series of a ticker in EODHD format
  ("SYMBOL.EXCHANGECODE"), e.g. 'pos history AAPL.US'.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "u", false, "refresh the cache before displaying")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one ticker")
		return subcommands.ExitUsageError
	}
	ticker := f.Arg(0)

	db, err := OpenPriceDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening price cache: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.update {
		if _, err := eodhd.Update(db, eodhd.FromEnv(), ticker); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating %s: %v\n", ticker, err)
			return subcommands.ExitFailure
		}
		if err := db.Persist(); err != nil {
			fmt.Fprintf(os.Stderr, "Error persisting price cache: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	h := db.Series(ticker, eodhd.DefaultInterval)
	if h.Len() == 0 {
		fmt.Fprintf(os.Stderr, "No cached series for %s, run 'pos history -u %s' to fetch it\n", ticker, ticker)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SeriesMarkdown(ticker, eodhd.DefaultInterval, h))
	return subcommands.ExitSuccess
}
