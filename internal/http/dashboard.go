package http

import (
	"context"

	"gagyebu/internal/analytics"
	"gagyebu/internal/core"
	applog "gagyebu/internal/log"
)

// DashboardView is the derived snapshot for one month. Everything here is
// recomputed from the transaction log; nothing is stored.
type DashboardView struct {
	Month          core.MonthKey           `json:"month"`
	Totals         analytics.Totals        `json:"totals"`
	CategoryTotals map[string]int64        `json:"categoryTotals"`
	Budgets        []analytics.BudgetEntry `json:"budgets"`
	Report         analytics.Report        `json:"report"`
	Pattern        analytics.Pattern       `json:"pattern"`
	Trend          []analytics.TrendPoint  `json:"trend"`
}

func (s *Server) dashboard(ctx context.Context, month core.MonthKey) DashboardView {
	key := string(month)
	if view, found := s.dashboards.Get(key); found {
		applog.FromContext(ctx).DebugContext(ctx, "Dashboard cache hit", applog.FieldMonth, key)
		return view
	}

	txs := s.store.Transactions()
	settings := s.store.Settings()
	resolve := s.store.ResolveName

	totals := analytics.MonthlyTotals(txs, month)
	categoryTotals := analytics.MonthlyCategoryTotals(txs, month)

	view := DashboardView{
		Month:          month,
		Totals:         totals,
		CategoryTotals: categoryTotals,
		Budgets:        analytics.BudgetStatuses(settings.AutoBudgets.CategoryBudgets, categoryTotals, resolve),
		Report:         analytics.EvaluateAlerts(totals, categoryTotals, settings, resolve, s.now()),
		Pattern:        analytics.ClassifyPattern(totals, categoryTotals, resolve),
		Trend:          analytics.LastSevenDays(txs, s.now()),
	}

	s.dashboards.Set(key, view)
	return view
}

// invalidateDashboards drops every cached snapshot. Any mutation can move
// totals, alerts and budgets across months, so selective eviction is not
// worth the bookkeeping.
func (s *Server) invalidateDashboards() {
	s.dashboards.Purge()
}
