// Package cmd implements the CLI application to report brokerage positions.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mrosati/positions"
	"github.com/mrosati/positions/pricedb"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&positionsCmd{}, "reports")
	c.Register(&assistCmd{}, "reports")

	c.Register(&fetchCmd{}, "prices")
	c.Register(&historyCmd{}, "prices")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.csv", "Path to the broker transactions export (CSV)")
var securitiesFile = flag.String("securities-file", "securities.csv", "Path to the ISIN to ticker directory (CSV)")
var priceCacheDir = flag.String("price-cache", ".prices", "Path to the historical price cache folder")

// DecodeLedger loads the broker transactions from the app ledger file.
func DecodeLedger(currency string) ([]positions.Transaction, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return positions.DecodeTransactions(f, currency)
}

// DecodeDirectory loads the securities directory from the app securities file.
// A missing file degrades to an empty directory so the report still runs,
// without tickers.
func DecodeDirectory() (*positions.Directory, error) {
	f, err := os.Open(*securitiesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, securities file does not exist, using an empty directory instead")
		return positions.NewDirectory(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return positions.DecodeDirectory(f)
}

// OpenPriceDB opens the app historical price cache folder.
func OpenPriceDB() (*pricedb.DB, error) {
	return pricedb.Open(*priceCacheDir)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when styling fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
