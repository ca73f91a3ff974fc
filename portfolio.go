package positions

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// LastPriceSource resolves the most recent market price for a ticker.
// Unavailability is a first-class result, not an error: implementations must
// catch their transport failures and report ok=false instead.
type LastPriceSource interface {
	LastPrice(ticker string) (price decimal.Decimal, ok bool)
}

// Portfolio is the ordered collection of positions derived from one ledger,
// plus the derived total value. Nothing here survives the process: it is
// recomputed from scratch on every run.
type Portfolio struct {
	Positions  []Position
	TotalValue Money
}

// BuildOptions tunes the portfolio assembly.
type BuildOptions struct {
	// DustThreshold drops positions whose absolute net share count is below
	// it, suppressing rounding artifacts left over by fully sold savings
	// plans. Zero keeps everything.
	DustThreshold Quantity
	// Workers bounds the parallel last-price fetches. Values below 1 mean 1.
	Workers int
	// Currency of the ledger amounts.
	Currency string
}

// DefaultBuildOptions returns the options used by the CLI: the historical
// 0.001 dust threshold, four quote workers, euro amounts.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{DustThreshold: Q(0.001), Workers: 4, Currency: DefaultCurrency}
}

// group is one security's slice of the ledger.
type group struct {
	isin        string
	description string // first non-empty broker description, directory fallback
	txs         []Transaction
}

// groupByISIN partitions transactions per security, preserving the order in
// which distinct ISINs first appear. Rows without an ISIN (cash movements,
// fees) are dropped.
func groupByISIN(txs []Transaction) []group {
	index := make(map[string]int)
	groups := make([]group, 0)
	for _, tx := range txs {
		if tx.ISIN == "" {
			continue
		}
		i, ok := index[tx.ISIN]
		if !ok {
			i = len(groups)
			index[tx.ISIN] = i
			groups = append(groups, group{isin: tx.ISIN})
		}
		groups[i].txs = append(groups[i].txs, tx)
		if groups[i].description == "" {
			groups[i].description = tx.Description
		}
	}
	return groups
}

// Build assembles a portfolio from a full transaction set.
//
// directory may be nil (no ticker resolution, sentinel descriptions) and
// source may be nil (no market prices, open positions valued at cost).
// A single malformed security aborts the whole build: a partial report would
// silently misstate the total.
func Build(txs []Transaction, directory *Directory, source LastPriceSource, opts BuildOptions) (*Portfolio, error) {
	groups := groupByISIN(txs)

	// Resolve tickers first so all the last prices can be fetched in one
	// parallel pass before the sequential fold.
	tickers := make([]string, 0, len(groups))
	for _, g := range groups {
		if directory == nil {
			continue
		}
		if ticker, ok := directory.Ticker(g.isin); ok {
			tickers = append(tickers, ticker)
		}
	}
	prices := fetchLastPrices(source, tickers, opts.Workers)

	p := &Portfolio{}
	total := M(0, opts.Currency)
	for _, g := range groups {
		var ticker string
		if directory != nil {
			ticker, _ = directory.Ticker(g.isin)
		}

		lastPrice := M(0, opts.Currency)
		if price, ok := prices[ticker]; ok {
			lastPrice = M(price, opts.Currency)
		} else if ticker != "" && source != nil {
			log.Printf("warning: no last price for %s (%s), valuing at 0", ticker, g.isin)
		}

		pos, err := NewPosition(g.isin, g.txs, lastPrice)
		if err != nil {
			return nil, fmt.Errorf("cannot aggregate position: %w", err)
		}
		pos.Ticker = ticker
		pos.Description = describe(directory, g)

		if !opts.DustThreshold.IsZero() && pos.TotalShares.Abs().LessThan(opts.DustThreshold) {
			continue
		}
		p.Positions = append(p.Positions, pos)
		total = total.Add(pos.MarketValue())
	}
	p.TotalValue = total
	return p, nil
}

// describe picks the position description: the directory entry wins, then the
// broker's own label from the ledger, then the sentinel.
func describe(directory *Directory, g group) string {
	if directory != nil {
		if desc, ok := directory.lookupDescription(g.isin); ok {
			return desc
		}
	}
	if g.description != "" {
		return g.description
	}
	return UnknownDescription
}

// fetchLastPrices resolves last prices for all tickers through a bounded
// worker pool. Each ticker is independent: a failed fetch degrades only that
// ticker, and results are merged after the join so no locking is needed.
func fetchLastPrices(source LastPriceSource, tickers []string, workers int) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(tickers))
	if source == nil || len(tickers) == 0 {
		return prices
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(tickers) {
		workers = len(tickers)
	}

	type quote struct {
		ticker string
		price  decimal.Decimal
		ok     bool
	}
	jobs := make(chan string)
	results := make(chan quote)

	for range workers {
		go func() {
			for ticker := range jobs {
				price, ok := source.LastPrice(ticker)
				results <- quote{ticker, price, ok}
			}
		}()
	}
	go func() {
		for _, ticker := range tickers {
			jobs <- ticker
		}
		close(jobs)
	}()

	for range tickers {
		q := <-results
		if q.ok {
			prices[q.ticker] = q.price
		}
	}
	return prices
}
