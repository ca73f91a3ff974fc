package eodhd

import (
	"fmt"

	"github.com/mrosati/positions/date"
	"github.com/mrosati/positions/pricedb"
)

// DefaultInterval is the only interval the EOD endpoint serves directly.
const DefaultInterval = "1d"

// seriesInception bounds a full-history fetch for tickers with no cache yet.
var seriesInception = date.New(1970, 1, 1)

// Update refreshes the cached daily series of one ticker. When the cached
// last day is behind today it fetches only the gap, sizing the request
// window to the gap, and appends strictly newer rows. It returns the number
// of rows added.
func Update(db *pricedb.DB, c *Client, ticker string) (added int, err error) {
	today := date.Today()
	last, _ := db.Latest(ticker, DefaultInterval)
	if !last.IsZero() && !today.After(last) {
		return 0, nil // cache is current
	}

	from := fetchWindow(last, today)
	samples, err := c.Daily(ticker, from, today)
	if err != nil {
		return 0, fmt.Errorf("cannot update %s: %w", ticker, err)
	}

	// The EOD endpoint returns ascending days; Append rejects anything not
	// strictly newer than the cached last day, so history is never rewritten.
	for _, s := range samples {
		if db.Append(ticker, DefaultInterval, s.Date, s.Close) {
			added++
		}
	}
	return added, nil
}

// fetchWindow returns the start of the request window for a cache whose last
// day is 'last'. Small gaps request a year of data, stale caches a decade,
// and an empty cache the full history; the append step discards whatever the
// cache already has.
func fetchWindow(last, today date.Date) date.Date {
	if last.IsZero() {
		return seriesInception
	}
	switch gap := today.Sub(last); {
	case gap <= 31:
		return date.New(today.Year()-1, today.Month(), today.Day())
	case gap <= 366:
		return date.New(today.Year()-10, today.Month(), today.Day())
	default:
		return seriesInception
	}
}
