// Package pricedb persists historical price series on disk, one JSONL file
// per (ticker, interval) pair, in a layout that stays human readable and git
// friendly.
package pricedb

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mrosati/positions/date"
)

// seriesFilesGlob matches the per-ticker series files inside an interval folder.
const seriesFilesGlob = "*.jsonl"

// Key identifies one stored series.
type Key struct {
	Ticker   string
	Interval string // e.g. "1d", "1wk"
}

// DB is an in-memory view of the cache folder. The layout is
// <dir>/<interval>/<ticker>.jsonl, so each (ticker, interval) pair owns
// exactly one file.
type DB struct {
	dir    string
	series map[Key]*date.History[float64]
}

// Open loads every series found under dir. A missing folder yields an empty
// database, not an error: the first Persist creates it.
func Open(dir string) (*DB, error) {
	db := &DB{dir: dir, series: make(map[Key]*date.History[float64])}

	intervals, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open price cache %q: %w", dir, err)
	}

	for _, entry := range intervals {
		if !entry.IsDir() {
			continue
		}
		interval := entry.Name()
		filenames, err := filepath.Glob(filepath.Join(dir, interval, seriesFilesGlob))
		if err != nil {
			return nil, fmt.Errorf("cannot scan price cache %q: %w", dir, err)
		}
		for _, filename := range filenames {
			ticker := strings.TrimSuffix(filepath.Base(filename), ".jsonl")
			f, err := os.Open(filename)
			if err != nil {
				return nil, fmt.Errorf("cannot open series file %q: %w", filename, err)
			}
			h, err := readSeries(filename, f)
			f.Close()
			if err != nil {
				return nil, err
			}
			db.series[Key{ticker, interval}] = h
		}
	}
	return db, nil
}

// point is the line format of a series file.
type point struct {
	On    date.Date `json:"on"`
	Close float64   `json:"close"`
}

// readSeries parses a single series file. filename is for error messages only.
func readSeries(filename string, r io.Reader) (*date.History[float64], error) {
	h := new(date.History[float64])
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" {
			continue
		}
		var p point
		if err := json.Unmarshal([]byte(txt), &p); err != nil {
			return nil, fmt.Errorf("parse error %s:%d: %w", filename, i, err)
		}
		h.Append(p.On, p.Close)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error %s: %w", filename, err)
	}
	return h, nil
}

// Series returns the stored history for a (ticker, interval), creating an
// empty one on first use.
func (db *DB) Series(ticker, interval string) *date.History[float64] {
	k := Key{ticker, interval}
	h, ok := db.series[k]
	if !ok {
		h = new(date.History[float64])
		db.series[k] = h
	}
	return h
}

// Latest returns the last cached day and price for a (ticker, interval).
// The zero date means the series is empty.
func (db *DB) Latest(ticker, interval string) (date.Date, float64) {
	h, ok := db.series[Key{ticker, interval}]
	if !ok {
		return date.Date{}, 0
	}
	return h.Latest()
}

// Append records a price only when it is strictly newer than the cached last
// day, so refreshing a cache never rewrites history. It reports whether the
// point was kept.
func (db *DB) Append(ticker, interval string, on date.Date, close float64) bool {
	return db.Series(ticker, interval).AppendAfter(on, close)
}

// Keys returns all stored series keys, sorted for deterministic output.
func (db *DB) Keys() []Key {
	keys := make([]Key, 0, len(db.series))
	for k := range db.series {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if c := strings.Compare(a.Interval, b.Interval); c != 0 {
			return c
		}
		return strings.Compare(a.Ticker, b.Ticker)
	})
	return keys
}

// Persist writes every series back to its file, creating folders as needed.
func (db *DB) Persist() error {
	for _, k := range db.Keys() {
		folder := filepath.Join(db.dir, k.Interval)
		if err := os.MkdirAll(folder, 0755); err != nil {
			return fmt.Errorf("persist error: cannot create folder %q: %w", folder, err)
		}

		filename := filepath.Join(folder, k.Ticker+".jsonl")
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("persist error: cannot create file %q: %w", filename, err)
		}
		if err := writeSeries(f, db.series[k]); err != nil {
			f.Close()
			return fmt.Errorf("persist error: write error on file %q: %w", filename, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("persist error: cannot close file %q: %w", filename, err)
		}
	}
	return nil
}

func writeSeries(w io.Writer, h *date.History[float64]) error {
	for on, close := range h.Values() {
		data, err := json.Marshal(point{On: on, Close: close})
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}
