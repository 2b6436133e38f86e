// Package analytics is the derived-computation layer of the ledger: pure
// functions that turn a flat transaction log plus settings into monthly and
// category aggregates, threshold alerts, a spending-pattern classification
// and an auto-generated budget baseline.
//
// Nothing here mutates its inputs or touches storage. Absent or empty input
// yields zero totals or empty mappings, never an error.
package analytics

import (
	"time"

	"gagyebu/internal/core"
)

// Totals holds the expense/income sums for one month.
type Totals struct {
	Expense int64 `json:"totalExpense"`
	Income  int64 `json:"totalIncome"`
}

// TrendPoint is one day of the spending trend series.
type TrendPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// MonthlyTotals sums amounts over all transactions dated within the month,
// first and last calendar day inclusive, split by type. Dates compare
// lexicographically; the entry boundary guarantees canonical form.
func MonthlyTotals(txs []core.Transaction, month core.MonthKey) Totals {
	first, last := month.Range()
	var t Totals
	if first == "" {
		return t
	}
	for _, tx := range txs {
		if tx.Date < first || tx.Date > last {
			continue
		}
		if tx.Type == core.TypeExpense {
			t.Expense += tx.Amount
		} else {
			t.Income += tx.Amount
		}
	}
	return t
}

// MonthlyCategoryTotals sums expense amounts per category for the month.
// Categories with no matching transactions are absent, never present with 0.
func MonthlyCategoryTotals(txs []core.Transaction, month core.MonthKey) map[string]int64 {
	first, last := month.Range()
	totals := map[string]int64{}
	if first == "" {
		return totals
	}
	for _, tx := range txs {
		if tx.Type != core.TypeExpense {
			continue
		}
		if tx.Date < first || tx.Date > last {
			continue
		}
		totals[tx.Category] += tx.Amount
	}
	return totals
}

// OverallCategoryTotals sums expense amounts per category over the whole log,
// used for lifetime category ranking.
func OverallCategoryTotals(txs []core.Transaction) map[string]int64 {
	totals := map[string]int64{}
	for _, tx := range txs {
		if tx.Type != core.TypeExpense {
			continue
		}
		totals[tx.Category] += tx.Amount
	}
	return totals
}

// LastSevenDays returns the expense sums for the 7 calendar days ending at
// today inclusive, oldest first. Matching is exact string equality on the
// day, not a range scan.
func LastSevenDays(txs []core.Transaction, today time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		iso := core.DateOf(day)
		var sum int64
		for _, tx := range txs {
			if tx.Type == core.TypeExpense && tx.Date == iso {
				sum += tx.Amount
			}
		}
		points = append(points, TrendPoint{Label: core.DayLabel(day), Value: sum})
	}
	return points
}
