package analytics

import (
	"math"

	"gagyebu/internal/core"
)

// Auto-budget constants. The lookback window and markup mirror the original
// tracker and are deliberately not configurable.
const (
	DefaultLookback  = 3
	autoBudgetMarkup = 1.1
)

// GenerateAutoBudget projects a per-category budget for the target month from
// the lookback months strictly preceding it. For each category the mean is
// taken over months with activity only — a month with no spending contributes
// no entry, not a zero — then marked up 10% and rounded to the nearest whole
// unit. Categories with no active lookback months are absent from the result.
func GenerateAutoBudget(txs []core.Transaction, target core.MonthKey, lookback int) map[string]int64 {
	window := map[core.MonthKey]bool{}
	for _, key := range target.Lookback(lookback) {
		window[key] = true
	}

	// category -> month -> summed expense
	history := map[string]map[core.MonthKey]int64{}
	for _, tx := range txs {
		if tx.Type != core.TypeExpense {
			continue
		}
		key := core.MonthOf(tx.Date)
		if !window[key] {
			continue
		}
		months := history[tx.Category]
		if months == nil {
			months = map[core.MonthKey]int64{}
			history[tx.Category] = months
		}
		months[key] += tx.Amount
	}

	budgets := map[string]int64{}
	for category, months := range history {
		if len(months) == 0 {
			continue
		}
		var sum int64
		for _, v := range months {
			sum += v
		}
		mean := float64(sum) / float64(len(months))
		budgets[category] = int64(math.Round(mean * autoBudgetMarkup))
	}
	return budgets
}
