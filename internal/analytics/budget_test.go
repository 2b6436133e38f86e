package analytics

import "testing"

func TestBudgetStatuses(t *testing.T) {
	budgets := map[string]int64{"food": 1000, "transport": 500, "etc": 0}
	totals := map[string]int64{"food": 790, "transport": 500}

	entries := BudgetStatuses(budgets, totals, rawID)
	if len(entries) != 3 {
		t.Fatalf("entries = %d", len(entries))
	}

	byID := map[string]BudgetEntry{}
	for _, e := range entries {
		byID[e.CategoryID] = e
	}

	if e := byID["food"]; e.Percent != 79 || e.Status != BudgetSafe {
		t.Fatalf("food = %+v", e)
	}
	if e := byID["transport"]; e.Percent != 100 || e.Status != BudgetDanger {
		t.Fatalf("transport = %+v", e)
	}
	// Zero limit renders as 0% safe rather than dividing by zero.
	if e := byID["etc"]; e.Percent != 0 || e.Status != BudgetSafe {
		t.Fatalf("etc = %+v", e)
	}
}

func TestBudgetStatusWarnBand(t *testing.T) {
	entries := BudgetStatuses(map[string]int64{"food": 100}, map[string]int64{"food": 80}, rawID)
	if entries[0].Percent != 80 || entries[0].Status != BudgetWarn {
		t.Fatalf("entry = %+v", entries[0])
	}
	// Percent caps at 100 even when spending is far above the limit.
	entries = BudgetStatuses(map[string]int64{"food": 100}, map[string]int64{"food": 950}, rawID)
	if entries[0].Percent != 100 || entries[0].Status != BudgetDanger {
		t.Fatalf("entry = %+v", entries[0])
	}
}
