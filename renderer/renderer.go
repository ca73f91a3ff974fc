// Package renderer turns reports into markdown, leaving terminal styling to
// the caller.
package renderer

import (
	"fmt"
	"strings"

	"github.com/mrosati/positions"
	"github.com/mrosati/positions/date"
)

// PositionsMarkdown renders the portfolio as a markdown table, one row per
// security in ledger order, followed by the portfolio total.
func PositionsMarkdown(p *positions.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Positions\n\n")
	fmt.Fprintln(&b, "| ISIN | Description | Ticker | Shares | Avg Buy | Avg Sell | Last | Status | Profit |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|:---:|---:|")

	for _, pos := range p.Positions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			pos.ISIN,
			pos.Description,
			pos.Ticker,
			pos.TotalShares.Display(),
			pos.AvgBuyPrice,
			pos.AvgSellPrice,
			pos.LastPrice,
			pos.Status,
			pos.Profit,
		)
	}
	fmt.Fprintf(&b, "\nTotal value: %s\n", p.TotalValue)
	return b.String()
}

// SeriesMarkdown renders one cached price series as a markdown table.
func SeriesMarkdown(ticker, interval string, h *date.History[float64]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n\n", ticker, interval)
	fmt.Fprintln(&b, "| Date | Close |")
	fmt.Fprintln(&b, "|:---|---:|")
	for on, close := range h.Values() {
		fmt.Fprintf(&b, "| %s | %.4f |\n", on, close)
	}
	return b.String()
}
