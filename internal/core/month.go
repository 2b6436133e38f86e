package core

import (
	"fmt"
	"time"
)

// MonthKey is the YYYY-MM grouping unit for monthly aggregates and the
// auto-budget lookback window.
type MonthKey string

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// ValidDate reports whether s is a canonical YYYY-MM-DD date. Only canonical
// strings keep lexicographic range comparison correct, so the boundary
// rejects anything else.
func ValidDate(s string) bool {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(dateLayout) == s
}

func ValidMonthKey(s string) bool {
	t, err := time.Parse(monthLayout, string(s))
	if err != nil {
		return false
	}
	return t.Format(monthLayout) == s
}

// MonthOf derives the month key from a canonical date string.
func MonthOf(date string) MonthKey {
	if len(date) < 7 {
		return ""
	}
	return MonthKey(date[:7])
}

// MonthKeyOf derives the month key for a point in time.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format(monthLayout))
}

// DateOf formats a point in time as a canonical date string.
func DateOf(t time.Time) string {
	return t.Format(dateLayout)
}

// Range returns the first and last calendar day of the month, both inclusive,
// as canonical date strings.
func (m MonthKey) Range() (first, last string) {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return "", ""
	}
	first = t.Format(dateLayout)
	last = t.AddDate(0, 1, -1).Format(dateLayout)
	return first, last
}

// Contains reports whether the canonical date falls within the month.
func (m MonthKey) Contains(date string) bool {
	first, last := m.Range()
	if first == "" {
		return false
	}
	return date >= first && date <= last
}

// Lookback returns the count months strictly preceding m, most recent first.
// Month arithmetic rolls over year boundaries.
func (m MonthKey) Lookback(count int) []MonthKey {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return nil
	}
	keys := make([]MonthKey, 0, count)
	for i := 1; i <= count; i++ {
		keys = append(keys, MonthKey(t.AddDate(0, -i, 0).Format(monthLayout)))
	}
	return keys
}

// DayLabel renders a date as the short M/D trend label.
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}
