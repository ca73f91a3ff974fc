package positions

// UnknownDescription is the sentinel used when a security cannot be resolved
// in the directory and the ledger carries no label either.
const UnknownDescription = "ISIN not found"

// Directory is a bidirectional ISIN and ticker index with optional
// descriptions. It is a pure convenience lookup: it owns nothing and the two
// maps are kept in sync by construction.
type Directory struct {
	tickerByISIN map[string]string
	isinByTicker map[string]string
	descriptions map[string]string // by ISIN
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		tickerByISIN: make(map[string]string),
		isinByTicker: make(map[string]string),
		descriptions: make(map[string]string),
	}
}

// Add registers a security. The ticker and description may be empty; the last
// entry for an ISIN wins.
func (d *Directory) Add(isin, ticker, description string) {
	if isin == "" {
		return
	}
	if ticker != "" {
		d.tickerByISIN[isin] = ticker
		d.isinByTicker[ticker] = isin
	}
	if description != "" {
		d.descriptions[isin] = description
	}
}

// Ticker returns the ticker for an ISIN.
func (d *Directory) Ticker(isin string) (string, bool) {
	t, ok := d.tickerByISIN[isin]
	return t, ok
}

// ISIN returns the ISIN for a ticker.
func (d *Directory) ISIN(ticker string) (string, bool) {
	i, ok := d.isinByTicker[ticker]
	return i, ok
}

// Resolve maps an ISIN to its ticker or a ticker to its ISIN, whichever way
// the key matches first.
func (d *Directory) Resolve(key string) (string, bool) {
	if t, ok := d.tickerByISIN[key]; ok {
		return t, true
	}
	if i, ok := d.isinByTicker[key]; ok {
		return i, true
	}
	return "", false
}

// Description returns the description for an ISIN, or the sentinel when the
// directory has none.
func (d *Directory) Description(isin string) string {
	if desc, ok := d.descriptions[isin]; ok {
		return desc
	}
	return UnknownDescription
}

// Len returns the number of known ISINs.
func (d *Directory) Len() int { return len(d.tickerByISIN) }

// Tickers returns all known tickers, in no particular order.
func (d *Directory) Tickers() []string {
	tickers := make([]string, 0, len(d.isinByTicker))
	for t := range d.isinByTicker {
		tickers = append(tickers, t)
	}
	return tickers
}

func (d *Directory) lookupDescription(isin string) (string, bool) {
	desc, ok := d.descriptions[isin]
	return desc, ok
}
