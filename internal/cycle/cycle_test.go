package cycle

import (
	"testing"
	"time"
)

func TestKeyFor(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), "2024-03"},
		{time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), "2024-12"},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2025-01"},
		{time.Date(999, 6, 1, 0, 0, 0, 0, time.UTC), "0999-06"},
	}
	for _, c := range cases {
		if got := KeyFor(c.date); got != c.want {
			t.Errorf("KeyFor(%v) = %q, want %q", c.date, got, c.want)
		}
	}
}

func TestKeyForMonotonic(t *testing.T) {
	prev := ""
	d := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		key := KeyFor(d)
		if key <= prev {
			t.Fatalf("keys not monotonic: %q after %q", key, prev)
		}
		prev = key
		d = d.AddDate(0, 1, 0)
	}
}

func TestIsCurrent(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	if !IsCurrent(KeyFor(now), now) {
		t.Error("key for now should be current")
	}
	if IsCurrent(KeyFor(now.AddDate(0, -1, 0)), now) {
		t.Error("last month's key should not be current")
	}
	if IsCurrent("", now) {
		t.Error("empty key should never be current")
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, c := range cases {
		d := time.Date(c.year, c.month, 10, 0, 0, 0, 0, time.UTC)
		if got := DaysInMonth(d); got != c.want {
			t.Errorf("DaysInMonth(%d-%02d) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestClampDueDayGrid(t *testing.T) {
	for month := 1; month <= 12; month++ {
		ref := time.Date(2023, time.Month(month), 5, 0, 0, 0, 0, time.UTC)
		max := DaysInMonth(ref)
		for day := 1; day <= 31; day++ {
			want := day
			if want > max {
				want = max
			}
			if got := ClampDueDay(day, ref); got != want {
				t.Fatalf("ClampDueDay(%d, month %d) = %d, want %d", day, month, got, want)
			}
		}
	}

	ref := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	if got := ClampDueDay(0, ref); got != 1 {
		t.Errorf("ClampDueDay(0) = %d, want 1", got)
	}
	if got := ClampDueDay(-5, ref); got != 1 {
		t.Errorf("ClampDueDay(-5) = %d, want 1", got)
	}
}

func TestSuggestOccurrenceFebruaryClamp(t *testing.T) {
	// dueDay 31 evaluated in February of a non-leap year suggests Feb 28.
	now := time.Date(2023, 2, 10, 9, 0, 0, 0, time.UTC)
	got := SuggestOccurrence(31, now)
	want := time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("SuggestOccurrence(31, feb) = %v, want %v", got, want)
	}
}
