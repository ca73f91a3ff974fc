package positions

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// fakeSource serves canned last prices; tickers not in the map are
// unavailable, like a provider outage for that one security.
type fakeSource map[string]float64

func (s fakeSource) LastPrice(ticker string) (decimal.Decimal, bool) {
	p, ok := s[ticker]
	return decimal.NewFromFloat(p), ok
}

func testDirectory() *Directory {
	d := NewDirectory()
	d.Add("IE00B4L5Y983", "IWDA.AS", "iShares Core MSCI World")
	d.Add("LU1681043599", "CW8.PA", "Amundi MSCI World")
	return d
}

func TestBuild(t *testing.T) {
	txs := []Transaction{
		tx("IE00B4L5Y983", Buy, 10, -1000),
		tx("LU1681043599", Buy, 2, -800),
		tx("IE00B4L5Y983", Sell, 4, 480),
	}
	source := fakeSource{"IWDA.AS": 110, "CW8.PA": 450}

	p, err := Build(txs, testDirectory(), source, DefaultBuildOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(p.Positions) != 2 {
		t.Fatalf("len(Positions) = %d, want 2", len(p.Positions))
	}
	// First-appearance order of the ledger, not map order.
	if p.Positions[0].ISIN != "IE00B4L5Y983" || p.Positions[1].ISIN != "LU1681043599" {
		t.Errorf("positions out of ledger order: %s, %s", p.Positions[0].ISIN, p.Positions[1].ISIN)
	}
	if p.Positions[0].Ticker != "IWDA.AS" {
		t.Errorf("Ticker = %q, want IWDA.AS", p.Positions[0].Ticker)
	}
	if p.Positions[0].Description != "iShares Core MSCI World" {
		t.Errorf("Description = %q", p.Positions[0].Description)
	}
	// 6 shares at 110 plus 2 shares at 450.
	if !p.TotalValue.Equal(M(1560, "EUR")) {
		t.Errorf("TotalValue = %s, want 1560", p.TotalValue)
	}
}

func TestBuildUnknownISIN(t *testing.T) {
	txs := []Transaction{tx("XX0000000000", Buy, 1, -100)}

	p, err := Build(txs, testDirectory(), nil, DefaultBuildOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := p.Positions[0].Description; got != UnknownDescription {
		t.Errorf("Description = %q, want %q", got, UnknownDescription)
	}
	if p.Positions[0].Ticker != "" {
		t.Errorf("Ticker = %q, want empty", p.Positions[0].Ticker)
	}
}

func TestBuildLedgerDescriptionFallback(t *testing.T) {
	txs := []Transaction{tx("XX0000000000", Buy, 1, -100)}
	txs[0].Description = "Some Obscure Fund"

	p, err := Build(txs, testDirectory(), nil, DefaultBuildOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := p.Positions[0].Description; got != "Some Obscure Fund" {
		t.Errorf("Description = %q, want the broker label", got)
	}
}

func TestBuildDropsCashRows(t *testing.T) {
	txs := []Transaction{
		{Kind: Buy, Amount: M(-50, "EUR")}, // a fee row, no ISIN
		tx("IE00B4L5Y983", Buy, 10, -1000),
	}

	p, err := Build(txs, testDirectory(), nil, DefaultBuildOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(p.Positions) != 1 {
		t.Errorf("len(Positions) = %d, want 1", len(p.Positions))
	}
}

func TestBuildDustFilter(t *testing.T) {
	txs := []Transaction{
		tx("IE00B4L5Y983", Buy, 10, -1000),
		tx("LU1681043599", Buy, 10.0005, -1000),
		tx("LU1681043599", Sell, 10, 1010),
	}

	p, err := Build(txs, testDirectory(), nil, DefaultBuildOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(p.Positions) != 1 {
		t.Fatalf("len(Positions) = %d, want the dust position dropped", len(p.Positions))
	}
	if p.Positions[0].ISIN != "IE00B4L5Y983" {
		t.Errorf("kept %s, want IE00B4L5Y983", p.Positions[0].ISIN)
	}

	// A zero threshold keeps everything.
	opts := DefaultBuildOptions()
	opts.DustThreshold = Q(0)
	p, err = Build(txs, testDirectory(), nil, opts)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(p.Positions) != 2 {
		t.Errorf("len(Positions) = %d, want 2 with no dust filter", len(p.Positions))
	}
}

func TestBuildAbortsOnMalformedKind(t *testing.T) {
	txs := []Transaction{
		tx("IE00B4L5Y983", Buy, 10, -1000),
		tx("LU1681043599", Kind("Dividend"), 0, 12),
	}

	_, err := Build(txs, testDirectory(), nil, DefaultBuildOptions())
	if !errors.Is(err, ErrMalformedKind) {
		t.Errorf("Build() error = %v, want ErrMalformedKind", err)
	}
}

func TestBuildOfflineValuesAtCost(t *testing.T) {
	txs := []Transaction{tx("IE00B4L5Y983", Buy, 10, -1000)}

	p, err := Build(txs, testDirectory(), nil, DefaultBuildOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !p.Positions[0].LastPrice.IsZero() {
		t.Errorf("LastPrice = %s, want 0 without a source", p.Positions[0].LastPrice)
	}
	// Valued at the average buy price: 10 shares at 100.
	if !p.TotalValue.Equal(M(1000, "EUR")) {
		t.Errorf("TotalValue = %s, want 1000", p.TotalValue)
	}
}

func TestFetchLastPrices(t *testing.T) {
	source := fakeSource{"AAA.US": 1, "BBB.US": 2, "CCC.US": 3}
	tickers := []string{"AAA.US", "BBB.US", "CCC.US", "DOWN.US"}

	for _, workers := range []int{0, 1, 2, 8} {
		prices := fetchLastPrices(source, tickers, workers)
		if len(prices) != 3 {
			t.Errorf("workers=%d: len(prices) = %d, want 3", workers, len(prices))
		}
		if _, ok := prices["DOWN.US"]; ok {
			t.Errorf("workers=%d: got a price for the unavailable ticker", workers)
		}
		if !prices["BBB.US"].Equal(decimal.NewFromInt(2)) {
			t.Errorf("workers=%d: BBB.US = %s, want 2", workers, prices["BBB.US"])
		}
	}
}

func TestFetchLastPricesNilSource(t *testing.T) {
	if prices := fetchLastPrices(nil, []string{"AAA.US"}, 4); len(prices) != 0 {
		t.Errorf("len(prices) = %d, want 0 with no source", len(prices))
	}
}
