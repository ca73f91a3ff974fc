package date

import "testing"

// TestTime assert that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestSub(t *testing.T) {
	testCases := []struct {
		name string
		a, b Date
		want int
	}{
		{"same day", New(2025, 3, 1), New(2025, 3, 1), 0},
		{"next day", New(2025, 3, 2), New(2025, 3, 1), 1},
		{"across month", New(2025, 3, 1), New(2025, 2, 1), 28},
		{"across year", New(2025, 1, 1), New(2024, 1, 1), 366}, // 2024 is a leap year
		{"negative", New(2025, 3, 1), New(2025, 3, 8), -7},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Sub(tc.b); got != tc.want {
				t.Errorf("%v.Sub(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse() unexpected error = %v", err)
	}
	if d != New(2025, 7, 1) {
		t.Errorf("Parse() = %v, want %v", d, New(2025, 7, 1))
	}
	if d.String() != "2025-07-01" {
		t.Errorf("String() = %q, want %q", d.String(), "2025-07-01")
	}

	if _, err := Parse("first of july"); err == nil {
		t.Error("Parse() expected an error for garbage input")
	}
}
