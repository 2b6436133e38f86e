package analytics

import (
	"fmt"
	"math"
	"sort"
)

// Pattern is the qualitative spending classification for a month.
type Pattern struct {
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// The six pattern labels. Classification is total: every (expense ≥ 0,
// income ≥ 0) pair maps to exactly one label.
const (
	PatternNoData           = "no data"
	PatternIncomeUnrecorded = "income unrecorded"
	PatternFrugal           = "frugal"
	PatternBalanced         = "balanced"
	PatternCaution          = "caution"
	PatternOverspending     = "overspending"
)

// ClassifyPattern maps the month's totals to a label using expense/income
// ratio thresholds, then prefixes the detail with the dominant category's
// share of spending when there is any.
func ClassifyPattern(totals Totals, categoryTotals map[string]int64, resolve func(string) string) Pattern {
	var p Pattern
	switch {
	case totals.Expense == 0 && totals.Income == 0:
		p = Pattern{PatternNoData, "no records this month."}
	case totals.Income == 0:
		p = Pattern{PatternIncomeUnrecorded, "only expenses are recorded; add income as well."}
	default:
		ratio := float64(totals.Expense) / float64(totals.Income)
		switch {
		case ratio <= 0.6:
			p = Pattern{PatternFrugal, "spending is well under control relative to income."}
		case ratio <= 0.9:
			p = Pattern{PatternBalanced, "income and spending are in balance."}
		case ratio <= 1.1:
			p = Pattern{PatternCaution, "spending is approaching income; keep monitoring."}
		default:
			p = Pattern{PatternOverspending, "spending exceeds income; review your limits."}
		}
	}

	if totals.Expense > 0 {
		if id, amount, ok := dominantCategory(categoryTotals); ok {
			percent := int(math.Round(float64(amount) / float64(totals.Expense) * 100))
			p.Detail = fmt.Sprintf("%s share %d%% · %s", resolve(id), percent, p.Detail)
		}
	}
	return p
}

// dominantCategory picks the category with the largest total. Ties break by
// category id ascending so the result is deterministic.
func dominantCategory(totals map[string]int64) (id string, amount int64, ok bool) {
	ids := make([]string, 0, len(totals))
	for k, v := range totals {
		if v != 0 {
			ids = append(ids, k)
		}
	}
	if len(ids) == 0 {
		return "", 0, false
	}
	sort.Slice(ids, func(i, j int) bool {
		if totals[ids[i]] != totals[ids[j]] {
			return totals[ids[i]] > totals[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids[0], totals[ids[0]], true
}
