package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}
}

func TestAppendAfter(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2025, 1, 2), 100)
	h.Append(New(2025, 1, 3), 101)

	if h.AppendAfter(New(2025, 1, 3), 999) {
		t.Error("AppendAfter() accepted a value on the latest day")
	}
	if h.AppendAfter(New(2025, 1, 1), 999) {
		t.Error("AppendAfter() accepted a value before the latest day")
	}
	if !h.AppendAfter(New(2025, 1, 4), 102) {
		t.Error("AppendAfter() rejected a strictly newer value")
	}

	day, value := h.Latest()
	if day != New(2025, 1, 4) || value != 102 {
		t.Errorf("Latest() = %v, %v want %v, 102", day, value, New(2025, 1, 4))
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2025, 1, 2), 100)
	h.Append(New(2025, 1, 10), 110)

	testCases := []struct {
		name   string
		day    Date
		want   float64
		wantOk bool
	}{
		{"before first", New(2025, 1, 1), 0, false},
		{"on first", New(2025, 1, 2), 100, true},
		{"between", New(2025, 1, 5), 100, true},
		{"on last", New(2025, 1, 10), 110, true},
		{"after last", New(2025, 2, 1), 110, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := h.ValueAsOf(tc.day)
			if got != tc.want || ok != tc.wantOk {
				t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tc.day, got, ok, tc.want, tc.wantOk)
			}
		})
	}
}
