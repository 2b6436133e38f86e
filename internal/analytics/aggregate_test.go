package analytics

import (
	"testing"
	"time"

	"gagyebu/internal/core"
)

func tx(id string, typ core.TransactionType, cat string, amount int64, date string) core.Transaction {
	return core.Transaction{ID: id, Type: typ, Category: cat, Amount: amount, Date: date}
}

func TestMonthlyTotalsBoundaries(t *testing.T) {
	txs := []core.Transaction{
		tx("a", core.TypeExpense, "food", 100, "2024-03-01"),  // first day, in
		tx("b", core.TypeExpense, "food", 200, "2024-03-31"),  // last day, in
		tx("c", core.TypeExpense, "food", 400, "2024-02-29"),  // out
		tx("d", core.TypeExpense, "food", 800, "2024-04-01"),  // out
		tx("e", core.TypeIncome, "salary", 1600, "2024-03-15"), // in
	}
	got := MonthlyTotals(txs, "2024-03")
	if got.Expense != 300 || got.Income != 1600 {
		t.Fatalf("totals = %+v, want expense 300 income 1600", got)
	}
}

func TestMonthlyTotalsSumProperty(t *testing.T) {
	txs := []core.Transaction{
		tx("a", core.TypeExpense, "food", 100, "2024-03-02"),
		tx("b", core.TypeIncome, "salary", 250, "2024-03-05"),
		tx("c", core.TypeExpense, "etc", 70, "2024-03-30"),
	}
	got := MonthlyTotals(txs, "2024-03")
	var inRange int64
	for _, tr := range txs {
		if core.MonthKey("2024-03").Contains(tr.Date) {
			inRange += tr.Amount
		}
	}
	if got.Expense+got.Income != inRange {
		t.Fatalf("expense+income = %d, want %d", got.Expense+got.Income, inRange)
	}
}

func TestMonthlyTotalsEmptyInput(t *testing.T) {
	got := MonthlyTotals(nil, "2024-03")
	if got.Expense != 0 || got.Income != 0 {
		t.Fatalf("empty input must yield zero totals, got %+v", got)
	}
}

func TestMonthlyCategoryTotals(t *testing.T) {
	txs := []core.Transaction{
		tx("a", core.TypeExpense, "food", 100, "2024-03-01"),
		tx("b", core.TypeExpense, "food", 50, "2024-03-10"),
		tx("c", core.TypeExpense, "transport", 30, "2024-03-12"),
		tx("d", core.TypeIncome, "salary", 999, "2024-03-12"), // income excluded
		tx("e", core.TypeExpense, "food", 77, "2024-04-01"),   // other month
	}
	totals := MonthlyCategoryTotals(txs, "2024-03")
	if totals["food"] != 150 || totals["transport"] != 30 {
		t.Fatalf("totals = %v", totals)
	}
	if _, ok := totals["salary"]; ok {
		t.Fatalf("income category must be absent")
	}

	// No key may carry value 0, and values must sum to the expense total.
	var sum int64
	for id, v := range totals {
		if v == 0 {
			t.Fatalf("category %s present with 0", id)
		}
		sum += v
	}
	if exp := MonthlyTotals(txs, "2024-03").Expense; sum != exp {
		t.Fatalf("category sum %d != monthly expense %d", sum, exp)
	}
}

func TestOverallCategoryTotals(t *testing.T) {
	txs := []core.Transaction{
		tx("a", core.TypeExpense, "food", 100, "2024-01-01"),
		tx("b", core.TypeExpense, "food", 200, "2024-06-01"),
		tx("c", core.TypeIncome, "salary", 500, "2024-06-01"),
	}
	totals := OverallCategoryTotals(txs)
	if len(totals) != 1 || totals["food"] != 300 {
		t.Fatalf("totals = %v", totals)
	}
}

func TestLastSevenDays(t *testing.T) {
	today := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx("a", core.TypeExpense, "food", 100, "2024-03-04"), // oldest day of window
		tx("b", core.TypeExpense, "food", 50, "2024-03-10"),  // today
		tx("c", core.TypeExpense, "food", 70, "2024-03-03"),  // outside window
		tx("d", core.TypeIncome, "salary", 900, "2024-03-10"), // income ignored
	}
	points := LastSevenDays(txs, today)
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}
	if points[0].Label != "3/4" || points[0].Value != 100 {
		t.Fatalf("oldest point = %+v", points[0])
	}
	if points[6].Label != "3/10" || points[6].Value != 50 {
		t.Fatalf("newest point = %+v", points[6])
	}
	for i := 1; i < 6; i++ {
		if points[i].Value != 0 {
			t.Fatalf("day %s should be 0, got %d", points[i].Label, points[i].Value)
		}
	}
}
