package analytics

import (
	"testing"

	"gagyebu/internal/core"
)

func TestGenerateAutoBudgetAverageWithMarkup(t *testing.T) {
	txs := []core.Transaction{
		tx("a", core.TypeExpense, "food", 100, "2024-01-10"),
		tx("b", core.TypeExpense, "food", 200, "2024-02-10"),
		tx("c", core.TypeExpense, "food", 300, "2024-03-10"),
	}
	budgets := GenerateAutoBudget(txs, "2024-04", DefaultLookback)
	// mean(100, 200, 300) = 200, * 1.1 = 220
	if budgets["food"] != 220 {
		t.Fatalf("food budget = %d, want 220", budgets["food"])
	}
}

func TestGenerateAutoBudgetSkipsInactiveMonths(t *testing.T) {
	// Activity in only one of the three lookback months: the average is over
	// months-with-activity, not all three.
	txs := []core.Transaction{
		tx("a", core.TypeExpense, "food", 300, "2024-02-05"),
		tx("b", core.TypeExpense, "food", 300, "2024-02-20"),
	}
	budgets := GenerateAutoBudget(txs, "2024-04", DefaultLookback)
	// single active month total 600, * 1.1 = 660
	if budgets["food"] != 660 {
		t.Fatalf("food budget = %d, want 660", budgets["food"])
	}
}

func TestGenerateAutoBudgetAbsentWithoutHistory(t *testing.T) {
	txs := []core.Transaction{
		tx("a", core.TypeExpense, "food", 100, "2023-11-10"),  // before window
		tx("b", core.TypeExpense, "food", 100, "2024-04-10"),  // target month itself
		tx("c", core.TypeIncome, "salary", 100, "2024-03-10"), // income ignored
	}
	budgets := GenerateAutoBudget(txs, "2024-04", DefaultLookback)
	if _, ok := budgets["food"]; ok {
		t.Fatalf("food must be absent, got %v", budgets)
	}
	if _, ok := budgets["salary"]; ok {
		t.Fatalf("salary must be absent, got %v", budgets)
	}
	if len(budgets) != 0 {
		t.Fatalf("budgets = %v, want empty", budgets)
	}
}

func TestGenerateAutoBudgetYearRollover(t *testing.T) {
	txs := []core.Transaction{
		tx("a", core.TypeExpense, "food", 100, "2023-10-15"),
		tx("b", core.TypeExpense, "food", 200, "2023-11-15"),
		tx("c", core.TypeExpense, "food", 300, "2023-12-15"),
	}
	budgets := GenerateAutoBudget(txs, "2024-01", DefaultLookback)
	if budgets["food"] != 220 {
		t.Fatalf("food budget = %d, want 220", budgets["food"])
	}
}

func TestGenerateAutoBudgetRounding(t *testing.T) {
	// mean(100, 101) = 100.5, * 1.1 = 110.55 -> 111
	txs := []core.Transaction{
		tx("a", core.TypeExpense, "food", 100, "2024-01-10"),
		tx("b", core.TypeExpense, "food", 101, "2024-02-10"),
	}
	budgets := GenerateAutoBudget(txs, "2024-04", DefaultLookback)
	if budgets["food"] != 111 {
		t.Fatalf("food budget = %d, want 111", budgets["food"])
	}
}
