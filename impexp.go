package positions

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// this file contains functions to ingest the broker CSV exports: the
// transaction ledger and the security directory. Both are semicolon or comma
// separated files with a header row, and numbers may come in a continental
// locale (period thousands separator, comma decimal separator).

// DecodeTransactions reads a broker transaction ledger in CSV form.
//
// Expected columns, located by header name (case-insensitive): isin, type,
// shares, price, amount, status; optionally description. A reference column,
// when present, is ignored. Only rows with status "Executed" are kept, and
// the raw "Savings plan" type is normalized to Buy. Rows without an ISIN are
// kept: the assembler drops them, but other consumers may want them.
func DecodeTransactions(r io.Reader, currency string) ([]Transaction, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read transactions: %w", err)
	}

	col, err := indexColumns(header, "isin", "type", "shares", "price", "amount", "status")
	if err != nil {
		return nil, fmt.Errorf("invalid transactions header: %w", err)
	}
	descCol := optionalColumn(header, "description")

	txs := make([]Transaction, 0, len(records))
	for i, rec := range records {
		if rec[col["status"]] != statusExecuted {
			continue
		}

		shares, err := parseLocalizedDecimal(rec[col["shares"]])
		if err != nil {
			return nil, fmt.Errorf("transactions line %d: invalid shares: %w", i+2, err)
		}
		price, err := parseLocalizedDecimal(rec[col["price"]])
		if err != nil {
			return nil, fmt.Errorf("transactions line %d: invalid price: %w", i+2, err)
		}
		amount, err := parseLocalizedDecimal(rec[col["amount"]])
		if err != nil {
			return nil, fmt.Errorf("transactions line %d: invalid amount: %w", i+2, err)
		}

		tx := Transaction{
			ISIN:   strings.TrimSpace(rec[col["isin"]]),
			Kind:   NormalizeKind(strings.TrimSpace(rec[col["type"]])),
			Shares: Q(shares),
			Price:  M(price, currency),
			Amount: M(amount, currency),
		}
		if descCol >= 0 {
			tx.Description = strings.TrimSpace(rec[descCol])
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// DecodeDirectory reads a security directory CSV mapping ISINs to tickers.
//
// The ticker column header varies by data source: both "Mnemonic" (exchange
// instrument lists) and "ticker" are accepted. A description column is
// optional.
func DecodeDirectory(r io.Reader) (*Directory, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read security directory: %w", err)
	}

	col, err := indexColumns(header, "isin")
	if err != nil {
		return nil, fmt.Errorf("invalid security directory header: %w", err)
	}
	tickerCol := optionalColumn(header, "mnemonic")
	if tickerCol < 0 {
		tickerCol = optionalColumn(header, "ticker")
	}
	if tickerCol < 0 {
		return nil, fmt.Errorf("invalid security directory header: no %q or %q column", "Mnemonic", "ticker")
	}
	descCol := optionalColumn(header, "description")

	d := NewDirectory()
	for _, rec := range records {
		desc := ""
		if descCol >= 0 {
			desc = strings.TrimSpace(rec[descCol])
		}
		d.Add(strings.TrimSpace(rec[col["isin"]]), strings.TrimSpace(rec[tickerCol]), desc)
	}
	return d, nil
}

// readCSV parses a whole CSV stream, sniffing the separator from the header
// line: broker exports use ';', most instrument lists use ','.
func readCSV(r io.Reader) (records [][]string, header []string, err error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	comma := ','
	if i := strings.IndexByte(string(content), '\n'); i >= 0 {
		if strings.Contains(string(content[:i]), ";") {
			comma = ';'
		}
	} else if strings.Contains(string(content), ";") {
		comma = ';'
	}

	cr := csv.NewReader(strings.NewReader(string(content)))
	cr.Comma = comma
	cr.TrimLeadingSpace = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}
	return all[1:], all[0], nil
}

// indexColumns locates required columns by case-insensitive header name.
func indexColumns(header []string, names ...string) (map[string]int, error) {
	col := make(map[string]int, len(names))
	for _, name := range names {
		i := optionalColumn(header, name)
		if i < 0 {
			return nil, fmt.Errorf("missing column %q", name)
		}
		col[name] = i
	}
	return col, nil
}

// optionalColumn returns the index of a column or -1.
func optionalColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// parseLocalizedDecimal parses a number that may use a continental locale:
// "1.234,56" becomes 1234.56. Plain "1234.56" is accepted as-is, and an empty
// field counts as zero (the broker leaves shares blank on cash rows).
func parseLocalizedDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		// The comma is the decimal separator, any period is a thousands one.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
