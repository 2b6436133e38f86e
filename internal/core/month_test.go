package core

import (
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	cases := []struct {
		month MonthKey
		first string
		last  string
	}{
		{"2024-03", "2024-03-01", "2024-03-31"},
		{"2024-02", "2024-02-01", "2024-02-29"}, // leap year
		{"2023-02", "2023-02-01", "2023-02-28"},
		{"2024-12", "2024-12-01", "2024-12-31"},
	}
	for _, tc := range cases {
		first, last := tc.month.Range()
		if first != tc.first || last != tc.last {
			t.Fatalf("%s range = (%s, %s), want (%s, %s)", tc.month, first, last, tc.first, tc.last)
		}
	}
}

func TestMonthContains(t *testing.T) {
	m := MonthKey("2024-03")
	for _, d := range []string{"2024-03-01", "2024-03-15", "2024-03-31"} {
		if !m.Contains(d) {
			t.Fatalf("%s should contain %s", m, d)
		}
	}
	for _, d := range []string{"2024-02-29", "2024-04-01"} {
		if m.Contains(d) {
			t.Fatalf("%s should not contain %s", m, d)
		}
	}
}

func TestLookbackRollsOverYears(t *testing.T) {
	got := MonthKey("2024-01").Lookback(3)
	want := []MonthKey{"2023-12", "2023-11", "2023-10"}
	if len(got) != len(want) {
		t.Fatalf("lookback = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lookback[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestValidDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-03-01", true},
		{"2024-3-1", false},
		{"2024-13-01", false},
		{"2024-02-30", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidDate(tc.in); got != tc.ok {
			t.Fatalf("ValidDate(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestMonthOfAndLabels(t *testing.T) {
	if MonthOf("2024-03-15") != "2024-03" {
		t.Fatalf("MonthOf failed")
	}
	if MonthOf("bad") != "" {
		t.Fatalf("MonthOf should be empty for short input")
	}
	day := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	if DayLabel(day) != "3/5" {
		t.Fatalf("DayLabel = %q", DayLabel(day))
	}
	if MonthKeyOf(day) != "2024-03" {
		t.Fatalf("MonthKeyOf = %q", MonthKeyOf(day))
	}
	if DateOf(day) != "2024-03-05" {
		t.Fatalf("DateOf = %q", DateOf(day))
	}
}
