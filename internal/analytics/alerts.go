package analytics

import (
	"fmt"
	"sort"
	"time"

	"gagyebu/internal/core"
)

// Alert is a single threshold or reminder notification.
type Alert struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Report is the full alert evaluation for one instant. Alerts are recomputed
// fresh on every call from current state; nothing is deduplicated, snoozed or
// acknowledged, so an alert reappears whenever its condition holds.
type Report struct {
	Alerts      []Alert   `json:"alerts"`
	Count       int       `json:"count"`
	Headline    string    `json:"headline"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// HeadlineStable is the report headline when no alert fires.
const HeadlineStable = "Spending is stable."

// ReminderFallback is the fixed-expense reminder detail when no memo is set.
const ReminderFallback = "Check your fixed expenses."

// EvaluateAlerts builds the alert list for the month in fixed priority order:
// global monthly limit, per-category user limits, auto-budget overages, then
// the fixed-expense-date reminder. All limit checks are strict greater-than.
// resolve maps category ids to display names; now is the evaluation instant.
func EvaluateAlerts(totals Totals, categoryTotals map[string]int64, settings core.Settings, resolve func(string) string, now time.Time) Report {
	var alerts []Alert

	if settings.MonthlyExpenseLimit > 0 && totals.Expense > settings.MonthlyExpenseLimit {
		alerts = append(alerts, Alert{
			Title:  "Monthly spending limit exceeded",
			Detail: fmt.Sprintf("%s / %s", core.FormatAmount(totals.Expense), core.FormatAmount(settings.MonthlyExpenseLimit)),
		})
	}

	// Map iteration order is not stable in Go; limits are evaluated by
	// category id ascending so the report order is deterministic.
	for _, id := range sortedKeys(settings.CategoryLimits) {
		limit := settings.CategoryLimits[id]
		spent, ok := categoryTotals[id]
		if !ok || spent <= limit {
			continue
		}
		alerts = append(alerts, Alert{
			Title:  fmt.Sprintf("%s category limit exceeded", resolve(id)),
			Detail: fmt.Sprintf("%s / %s", core.FormatAmount(spent), core.FormatAmount(limit)),
		})
	}

	for _, id := range sortedKeys(settings.AutoBudgets.CategoryBudgets) {
		limit := settings.AutoBudgets.CategoryBudgets[id]
		// A zero or absent budget means "not tracked", never "zero tolerance".
		if limit == 0 {
			continue
		}
		spent, ok := categoryTotals[id]
		if !ok || spent == 0 || spent <= limit {
			continue
		}
		alerts = append(alerts, Alert{
			Title:  fmt.Sprintf("%s auto budget exceeded", resolve(id)),
			Detail: fmt.Sprintf("%s / %s", core.FormatAmount(spent), core.FormatAmount(limit)),
		})
	}

	if settings.FixedExpenseDate != "" && settings.FixedExpenseDate == core.DateOf(now) {
		detail := settings.FixedExpenseMemo
		if detail == "" {
			detail = ReminderFallback
		}
		alerts = append(alerts, Alert{Title: "Fixed expense reminder", Detail: detail})
	}

	headline := HeadlineStable
	if len(alerts) > 0 {
		headline = alerts[0].Title
	}
	return Report{
		Alerts:      alerts,
		Count:       len(alerts),
		Headline:    headline,
		GeneratedAt: now,
	}
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
