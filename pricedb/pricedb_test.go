package pricedb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mrosati/positions/date"
)

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() on empty folder unexpected error = %v", err)
	}

	db.Append("AAPL.US", "1d", date.New(2025, 1, 2), 191.5)
	db.Append("AAPL.US", "1d", date.New(2025, 1, 3), 192.25)
	db.Append("MC.PA", "1d", date.New(2025, 1, 2), 640)
	db.Append("AAPL.US", "1wk", date.New(2025, 1, 3), 192.25)

	if err := db.Persist(); err != nil {
		t.Fatalf("Persist() unexpected error = %v", err)
	}

	// One file per (ticker, interval) pair.
	for _, want := range []string{
		filepath.Join(dir, "1d", "AAPL.US.jsonl"),
		filepath.Join(dir, "1d", "MC.PA.jsonl"),
		filepath.Join(dir, "1wk", "AAPL.US.jsonl"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("Persist() did not create %q: %v", want, err)
		}
	}

	reloaded, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() unexpected error = %v", err)
	}
	if got := len(reloaded.Keys()); got != 3 {
		t.Fatalf("reloaded Keys() = %d series, want 3", got)
	}

	day, price := reloaded.Latest("AAPL.US", "1d")
	if day != date.New(2025, 1, 3) || price != 192.25 {
		t.Errorf("Latest(AAPL.US, 1d) = %v, %v want %v, 192.25", day, price, date.New(2025, 1, 3))
	}
}

func TestAppendStrictlyNewer(t *testing.T) {
	db := &DB{series: map[Key]*date.History[float64]{}}

	if !db.Append("NVD.F", "1d", date.New(2025, 3, 10), 80) {
		t.Error("Append() rejected the first point")
	}
	if db.Append("NVD.F", "1d", date.New(2025, 3, 10), 81) {
		t.Error("Append() rewrote an existing day")
	}
	if db.Append("NVD.F", "1d", date.New(2025, 3, 7), 79) {
		t.Error("Append() accepted a point older than the cached last day")
	}
	if !db.Append("NVD.F", "1d", date.New(2025, 3, 11), 82) {
		t.Error("Append() rejected a strictly newer point")
	}

	if _, price := db.Latest("NVD.F", "1d"); price != 82 {
		t.Errorf("Latest() price = %v, want 82", price)
	}
}

func TestLatestUnknownSeries(t *testing.T) {
	db := &DB{series: map[Key]*date.History[float64]{}}
	day, price := db.Latest("GOOG.US", "1d")
	if !day.IsZero() || price != 0 {
		t.Errorf("Latest() on unknown series = %v, %v want zero date, 0", day, price)
	}
}
