package eodhd

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// tradegateLatest returns the price of the latest trade of an ISIN on the
// Tradegate exchange. Quotes there are in EUR, which matches the ledgers this
// tool ingests.
//
// The payload is loosely typed: prices come as numbers or as localized
// strings, and an empty 'last' shows up as "./.". jsonpath keeps the
// extraction tolerant to that shape.
func tradegateLatest(name, isin string) (float64, error) {
	addr := "https://www.tradegate.de/refresh.php?isin=" + isin

	var jobj any
	if err := jwget(new(http.Client), addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error retrieving %q: %w", name, err)
	}

	// last is the latest transaction, moves slower than the bid, but the bid can be 0.
	jval, err := jsonpath.Get("$.last", jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("cannot read 'last' for %q: %w", name, err)
	}
	if s, ok := jval.(string); ok && s == "./." {
		// Tradegate shows an empty last this way, use the bid instead.
		jval, err = jsonpath.Get("$.bid", jobj)
		if err != nil {
			return math.NaN(), fmt.Errorf("cannot read 'bid' for %q: %w", name, err)
		}
	}

	val, err := tradegateValue(jval)
	if err != nil {
		return math.NaN(), fmt.Errorf("cannot read value for %q: %w", name, err)
	}
	if val == 0 {
		// Sometimes the bid is empty and returns 0.
		return math.NaN(), fmt.Errorf("empty quote for %s, no value to return", name)
	}
	return val, nil
}

// tradegateValue converts a loosely typed payload value into a float.
func tradegateValue(jval any) (float64, error) {
	if val, ok := jval.(float64); ok {
		return val, nil
	}
	// Sometimes this weird API returns the value as a localized string.
	sval, ok := jval.(string)
	if !ok {
		return 0, fmt.Errorf("neither a float nor a string: %v", jval)
	}
	sval = strings.ReplaceAll(sval, ",", ".")
	sval = strings.ReplaceAll(sval, " ", "")
	val, err := strconv.ParseFloat(sval, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid string value %q: %w", sval, err)
	}
	return val, nil
}
