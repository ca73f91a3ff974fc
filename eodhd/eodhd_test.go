package eodhd

import (
	"testing"

	"github.com/mrosati/positions/date"
)

func TestToDecimal(t *testing.T) {
	testCases := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{"number", 314.89, "314.89", false},
		{"string number", "314.89", "314.89", false},
		{"localized string", "314,89", "314.89", false},
		{"not available", "NA", "", true},
		{"nil", nil, "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := toDecimal(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("toDecimal(%v) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err == nil && got.String() != tc.want {
				t.Errorf("toDecimal(%v) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestTradegateValue(t *testing.T) {
	if v, err := tradegateValue(12.5); err != nil || v != 12.5 {
		t.Errorf("tradegateValue(12.5) = %v, %v want 12.5, nil", v, err)
	}
	if v, err := tradegateValue("1 234,5"); err != nil || v != 1234.5 {
		t.Errorf("tradegateValue(\"1 234,5\") = %v, %v want 1234.5, nil", v, err)
	}
	if _, err := tradegateValue(nil); err == nil {
		t.Error("tradegateValue(nil) expected an error")
	}
}

func TestFetchWindow(t *testing.T) {
	today := date.New(2026, 8, 30)

	testCases := []struct {
		name string
		last date.Date
		want date.Date
	}{
		{"empty cache", date.Date{}, seriesInception},
		{"fresh cache", today.Add(-5), date.New(2025, 8, 30)},
		{"one month behind", today.Add(-31), date.New(2025, 8, 30)},
		{"six months behind", today.Add(-180), date.New(2016, 8, 30)},
		{"one year behind", today.Add(-366), date.New(2016, 8, 30)},
		{"ancient cache", today.Add(-400), seriesInception},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := fetchWindow(tc.last, today); got != tc.want {
				t.Errorf("fetchWindow(%v, %v) = %v, want %v", tc.last, today, got, tc.want)
			}
		})
	}
}
