package analytics

import "math"

// Budget status tiers, keyed off percent-of-limit.
const (
	BudgetSafe   = "safe"   // below 80%
	BudgetWarn   = "warn"   // 80-99%
	BudgetDanger = "danger" // 100% and above
)

// BudgetEntry is one category's budget consumption, ready for display.
type BudgetEntry struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Limit      int64  `json:"limit"`
	Spent      int64  `json:"spent"`
	Percent    int    `json:"percent"`
	Status     string `json:"status"`
}

// BudgetStatuses joins the generated budgets with the month's category
// spending, computing percent-of-limit (capped at 100) and the status tier.
// Entries come back ordered by category id for stable rendering.
func BudgetStatuses(budgets, categoryTotals map[string]int64, resolve func(string) string) []BudgetEntry {
	entries := make([]BudgetEntry, 0, len(budgets))
	for _, id := range sortedKeys(budgets) {
		limit := budgets[id]
		spent := categoryTotals[id]
		percent := 0
		if limit > 0 {
			percent = int(math.Round(float64(spent) / float64(limit) * 100))
			if percent > 100 {
				percent = 100
			}
		}
		status := BudgetSafe
		switch {
		case percent >= 100:
			status = BudgetDanger
		case percent >= 80:
			status = BudgetWarn
		}
		entries = append(entries, BudgetEntry{
			CategoryID: id,
			Name:       resolve(id),
			Limit:      limit,
			Spent:      spent,
			Percent:    percent,
			Status:     status,
		})
	}
	return entries
}
