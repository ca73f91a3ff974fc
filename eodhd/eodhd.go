// Package eodhd is the gateway to the EODHD market data API, with a
// Tradegate fallback for intraday quotes. All transport failures are caught
// at this boundary and reported as unavailability, never as a crash of the
// caller.
package eodhd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mrosati/positions/date"
	"github.com/shopspring/decimal"
)

// EnvAPIToken is the environment variable holding the EODHD API key.
const EnvAPIToken = "EODHD_API_TOKEN"

// Client talks to the EODHD endpoints. The zero key falls back to the "demo"
// key, which covers a handful of tickers like AAPL.US and MCD.US.
type Client struct {
	apiKey string
}

// NewClient returns a client with an explicit API key.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		apiKey = "demo"
	}
	return &Client{apiKey: apiKey}
}

// FromEnv returns a client keyed from the EODHD_API_TOKEN environment
// variable.
func FromEnv() *Client { return NewClient(os.Getenv(EnvAPIToken)) }

// Sample is one day of an end-of-day price series.
type Sample struct {
	Date  date.Date `json:"date"`
	Close float64   `json:"close"`
}

// Daily returns the end-of-day close series for a ticker in EODHD format
// ("SYMBOL.EXCHANGECODE"), both bounds included.
func (c *Client) Daily(ticker string, from, to date.Date) ([]Sample, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", ticker, c.apiKey, from, to)

	content := make([]Sample, 0)
	if err := jwget(newDailyCachingClient(), addr, &content); err != nil {
		return nil, fmt.Errorf("cannot fetch eod series for %s: %w", ticker, err)
	}
	return content, nil
}

// LastPrice returns the most recent market price for a ticker. It implements
// the assembler's price source contract: unavailability is a result, so any
// network, HTTP or payload problem logs a warning and reports ok=false.
func (c *Client) LastPrice(ticker string) (price decimal.Decimal, ok bool) {
	// https://eodhd.com/api/real-time/MCD.US?api_token=demo&fmt=json
	// { "code": "MCD.US", "timestamp": 1739577600, ..., "close": 314.89, ... }
	// Fields come back as the string "NA" outside trading coverage.
	addr := fmt.Sprintf("https://eodhd.com/api/real-time/%s?fmt=json&api_token=%s", ticker, c.apiKey)

	var content struct {
		Close         any `json:"close"`
		PreviousClose any `json:"previousClose"`
	}
	if err := jwget(newDailyCachingClient(), addr, &content); err != nil {
		log.Printf("warning: real-time quote for %s unavailable: %v", ticker, err)
		return decimal.Zero, false
	}

	for _, v := range []any{content.Close, content.PreviousClose} {
		if p, err := toDecimal(v); err == nil && !p.IsZero() {
			return p, true
		}
	}
	log.Printf("warning: real-time quote for %s has no usable close", ticker)
	return decimal.Zero, false
}

// toDecimal reads a price out of an untyped JSON value. The API sometimes
// returns numbers as strings, and "NA" when it has nothing.
func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", ".")
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return decimal.Zero, fmt.Errorf("not a number: %q", t)
		}
		return decimal.NewFromString(s)
	default:
		return decimal.Zero, fmt.Errorf("not a number: %v", v)
	}
}

// QuoteSource chains the EODHD real-time quote with the Tradegate intraday
// fallback. resolve maps a ticker back to its ISIN, which is what Tradegate
// keys on; it may be nil when no directory is available.
type QuoteSource struct {
	Client  *Client
	Resolve func(ticker string) (isin string, ok bool)
}

// LastPrice tries EODHD first and Tradegate second. A failure of both only
// degrades this ticker: the caller values the position at zero.
func (s *QuoteSource) LastPrice(ticker string) (decimal.Decimal, bool) {
	if price, ok := s.Client.LastPrice(ticker); ok {
		return price, true
	}
	if s.Resolve == nil {
		return decimal.Zero, false
	}
	isin, ok := s.Resolve(ticker)
	if !ok {
		return decimal.Zero, false
	}
	price, err := tradegateLatest(ticker, isin)
	if err != nil {
		log.Printf("warning: tradegate fallback for %s failed: %v", ticker, err)
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(price), true
}
