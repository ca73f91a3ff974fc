package positions

import (
	"errors"
	"fmt"
)

// Status tells whether a security is still held or fully divested.
type Status string

const (
	// Open means the security is still held ("Hodl").
	Open Status = "Hodl"
	// Closed means the security is fully divested ("Sold").
	Closed Status = "Sold"
)

// closeEpsilon is the net share count at or below which a position counts as
// closed. Fractional savings-plan shares rarely net out to exactly zero.
var closeEpsilon = Q(0.1)

// ErrNoBuyHistory is returned when a security has sell transactions but no
// buys, which would make the average buy price undefined.
var ErrNoBuyHistory = errors.New("no buy history")

// ErrMalformedKind is returned when a transaction kind is neither Buy nor
// Sell after savings-plan normalization.
var ErrMalformedKind = errors.New("malformed transaction kind")

// Position is the summarized holding of a single security, derived from all
// its ledger transactions. It is recomputed on every run and never mutated
// after construction.
type Position struct {
	ISIN        string
	Description string
	Ticker      string // empty when the security directory has no mapping

	TotalShares  Quantity
	AvgBuyPrice  Money
	AvgSellPrice Money // zero when nothing was ever sold
	LastPrice    Money // zero when no quote source could resolve one

	Status Status
	Profit Money
}

// sums holds the four running accumulators of the aggregation fold.
type sums struct {
	buyShares, sellShares Quantity
	buyAmount, sellAmount Money
}

// accumulate folds all transactions of one security into the four sums.
// The fold is commutative and associative: any input order yields identical
// sums, decimal arithmetic makes that exact.
func accumulate(isin string, txs []Transaction) (s sums, err error) {
	for _, tx := range txs {
		switch tx.Kind {
		case Buy:
			s.buyShares = s.buyShares.Add(tx.Shares)
			s.buyAmount = s.buyAmount.Add(tx.Amount)
		case Sell:
			s.sellShares = s.sellShares.Add(tx.Shares)
			s.sellAmount = s.sellAmount.Add(tx.Amount)
		default:
			return s, fmt.Errorf("security %s: %w: %q", isin, ErrMalformedKind, tx.Kind)
		}
	}
	return s, nil
}

// NewPosition aggregates all transactions of one security into a Position.
//
// All transactions must share the same ISIN. lastPrice is the most recent
// market price, or zero money when unavailable; it only matters for open
// positions, whose profit is then marked to market.
//
// Cash amounts are tolerated in either sign convention as long as it is
// consistent per kind: only the magnitudes of the buy and sell totals enter
// the derived values.
func NewPosition(isin string, txs []Transaction, lastPrice Money) (Position, error) {
	s, err := accumulate(isin, txs)
	if err != nil {
		return Position{}, err
	}

	if s.buyShares.IsZero() {
		// Without buys the average buy price is undefined. The reference
		// ledger cannot produce this, but a hand-edited one can.
		return Position{}, fmt.Errorf("security %s: %w", isin, ErrNoBuyHistory)
	}

	cost := s.buyAmount.Abs()      // total cash out on buys
	proceeds := s.sellAmount.Abs() // total cash in on sells

	p := Position{
		ISIN:        isin,
		TotalShares: s.buyShares.Sub(s.sellShares),
		AvgBuyPrice: cost.Div(s.buyShares),
		LastPrice:   lastPrice,
	}
	if !s.sellShares.IsZero() {
		p.AvgSellPrice = proceeds.Div(s.sellShares)
	}

	// Net realized cash flow; its magnitude is the realized profit of a
	// closed position and the outstanding cost basis of an open one.
	net := proceeds.Sub(cost)

	if p.TotalShares.Abs().LessThanOrEqual(closeEpsilon) {
		p.Status = Closed
		p.Profit = net.Abs()
	} else {
		p.Status = Open
		p.Profit = lastPrice.Mul(p.TotalShares).Sub(net.Abs())
	}
	return p, nil
}

// ReferencePrice is the price used to value the position in portfolio totals:
// the last market price when one was resolved, the average buy price otherwise.
func (p Position) ReferencePrice() Money {
	if !p.LastPrice.IsZero() {
		return p.LastPrice
	}
	return p.AvgBuyPrice
}

// MarketValue values the position at its reference price.
func (p Position) MarketValue() Money {
	return p.ReferencePrice().Mul(p.TotalShares)
}
