// Package positions derives per-security portfolio positions from a personal
// brokerage transaction ledger.
//
// The ledger is a CSV export of executed buy and sell orders; a companion
// security directory maps each ISIN to a ticker and a description. From those
// two inputs the package computes, per security, the net share count, average
// buy and sell prices, the holding status and the realized or mark-to-market
// profit, and folds everything into a portfolio with a total value.
//
// Market prices are optional: when a quote source is available the open
// positions are marked to the last known price, otherwise the last price
// defaults to zero with a logged warning and the portfolio total falls back
// to the average buy price.
package positions
