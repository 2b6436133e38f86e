package ledger

import (
	"context"
	"testing"

	"gagyebu/internal/core"
)

func seedFilterFixture(t *testing.T) *Store {
	t.Helper()
	s, _ := openTestStore(t)
	ctx := context.Background()
	fixture := []core.Transaction{
		{ID: "t1", Type: core.TypeExpense, Category: "food", Amount: 12000, Date: "2024-04-01"},
		{ID: "t2", Type: core.TypeExpense, Category: "transport", Amount: 3000, Date: "2024-04-03"},
		{ID: "t3", Type: core.TypeIncome, Category: "salary", Amount: 3000000, Date: "2024-04-25"},
		{ID: "t4", Type: core.TypeExpense, Category: "food", Amount: 45000, Date: "2024-03-28"},
		{ID: "t5", Type: core.TypeExpense, Category: "culture", Amount: 12000, Date: "2024-04-03"},
	}
	for _, tx := range fixture {
		if _, err := s.UpsertTransaction(ctx, tx); err != nil {
			t.Fatalf("seed %s: %v", tx.ID, err)
		}
	}
	return s
}

func ids(txs []core.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterTransactions(t *testing.T) {
	s := seedFilterFixture(t)
	min := int64(10000)
	max := int64(50000)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no constraints newest first", Filter{}, []string{"t3", "t2", "t5", "t1", "t4"}},
		{"date range inclusive", Filter{Start: "2024-04-01", End: "2024-04-03"}, []string{"t2", "t5", "t1"}},
		{"type expense", Filter{Type: core.TypeExpense}, []string{"t2", "t5", "t1", "t4"}},
		{"category", Filter{Category: "food"}, []string{"t1", "t4"}},
		{"amount bounds", Filter{Min: &min, Max: &max}, []string{"t5", "t1", "t4"}},
		{"date asc", Filter{Sort: SortDateAsc}, []string{"t4", "t1", "t2", "t5", "t3"}},
		{"amount desc", Filter{Sort: SortAmountDesc}, []string{"t3", "t4", "t1", "t5", "t2"}},
		{"amount asc", Filter{Sort: SortAmountAsc}, []string{"t2", "t1", "t5", "t4", "t3"}},
		{"category order", Filter{Sort: SortCategory}, []string{"t5", "t1", "t4", "t3", "t2"}},
		{"unknown sort falls back", Filter{Sort: "shuffle"}, []string{"t3", "t2", "t5", "t1", "t4"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(s.FilterTransactions(tc.filter))
			if !equalIDs(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterDoesNotMutateLog(t *testing.T) {
	s := seedFilterFixture(t)
	_ = s.FilterTransactions(Filter{Sort: SortAmountAsc})
	got := s.Transactions()
	if len(got) != 5 {
		t.Fatalf("log length = %d", len(got))
	}
	// Insertion order must survive filtering.
	if got[0].ID != "t1" || got[4].ID != "t5" {
		t.Fatalf("log reordered: %v", ids(got))
	}
}
