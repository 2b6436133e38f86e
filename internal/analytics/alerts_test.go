package analytics

import (
	"strings"
	"testing"
	"time"

	"gagyebu/internal/core"
)

var noon = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func rawID(id string) string { return id }

func TestGlobalLimitStrictlyGreater(t *testing.T) {
	settings := core.DefaultSettings()
	settings.MonthlyExpenseLimit = 1000

	report := EvaluateAlerts(Totals{Expense: 1001}, nil, settings, rawID, noon)
	if report.Count != 1 {
		t.Fatalf("expected exactly one alert, got %d", report.Count)
	}
	if report.Alerts[0].Title != "Monthly spending limit exceeded" {
		t.Fatalf("title = %q", report.Alerts[0].Title)
	}

	report = EvaluateAlerts(Totals{Expense: 1000}, nil, settings, rawID, noon)
	if report.Count != 0 {
		t.Fatalf("limit == spend must not alert, got %d", report.Count)
	}
	if report.Headline != HeadlineStable {
		t.Fatalf("headline = %q", report.Headline)
	}
}

func TestUnsetGlobalLimitNeverAlerts(t *testing.T) {
	settings := core.DefaultSettings() // zero limit = unset
	report := EvaluateAlerts(Totals{Expense: 999999}, nil, settings, rawID, noon)
	if report.Count != 0 {
		t.Fatalf("unset limit produced %d alerts", report.Count)
	}
}

func TestCategoryLimitAlerts(t *testing.T) {
	settings := core.DefaultSettings()
	settings.CategoryLimits = map[string]int64{"food": 100, "transport": 500}
	totals := map[string]int64{"food": 150}

	report := EvaluateAlerts(Totals{Expense: 150}, totals, settings, rawID, noon)
	if report.Count != 1 {
		t.Fatalf("expected 1 alert, got %d: %+v", report.Count, report.Alerts)
	}
	if !strings.Contains(report.Alerts[0].Title, "food") {
		t.Fatalf("title = %q", report.Alerts[0].Title)
	}
	// A category with no spending this month is skipped entirely.
	if strings.Contains(report.Headline, "transport") {
		t.Fatalf("transport should not alert")
	}
}

func TestZeroAutoBudgetIsUntracked(t *testing.T) {
	settings := core.DefaultSettings()
	settings.AutoBudgets.CategoryBudgets = map[string]int64{"food": 0}
	totals := map[string]int64{"food": 500}

	report := EvaluateAlerts(Totals{Expense: 500}, totals, settings, rawID, noon)
	if report.Count != 0 {
		t.Fatalf("zero-limit budget must never alert, got %d", report.Count)
	}
}

func TestAutoBudgetOverage(t *testing.T) {
	settings := core.DefaultSettings()
	settings.AutoBudgets.CategoryBudgets = map[string]int64{"food": 100}
	report := EvaluateAlerts(Totals{Expense: 150}, map[string]int64{"food": 150}, settings, rawID, noon)
	if report.Count != 1 || !strings.Contains(report.Alerts[0].Title, "auto budget") {
		t.Fatalf("report = %+v", report)
	}
}

func TestFixedExpenseReminder(t *testing.T) {
	settings := core.DefaultSettings()
	settings.FixedExpenseDate = "2024-03-15"

	report := EvaluateAlerts(Totals{}, nil, settings, rawID, noon)
	if report.Count != 1 {
		t.Fatalf("expected reminder, got %d alerts", report.Count)
	}
	if report.Alerts[0].Detail != ReminderFallback {
		t.Fatalf("empty memo should use fallback, got %q", report.Alerts[0].Detail)
	}

	settings.FixedExpenseMemo = "rent day"
	report = EvaluateAlerts(Totals{}, nil, settings, rawID, noon)
	if report.Alerts[0].Detail != "rent day" {
		t.Fatalf("detail = %q", report.Alerts[0].Detail)
	}

	// Any other day: no reminder.
	report = EvaluateAlerts(Totals{}, nil, settings, rawID, noon.AddDate(0, 0, 1))
	if report.Count != 0 {
		t.Fatalf("reminder fired on wrong day")
	}
}

func TestAlertPriorityOrder(t *testing.T) {
	settings := core.DefaultSettings()
	settings.MonthlyExpenseLimit = 100
	settings.CategoryLimits = map[string]int64{"food": 10}
	settings.AutoBudgets.CategoryBudgets = map[string]int64{"food": 20}
	settings.FixedExpenseDate = "2024-03-15"
	totals := map[string]int64{"food": 200}

	report := EvaluateAlerts(Totals{Expense: 200}, totals, settings, rawID, noon)
	if report.Count != 4 {
		t.Fatalf("expected 4 alerts, got %d", report.Count)
	}
	wantOrder := []string{
		"Monthly spending limit exceeded",
		"food category limit exceeded",
		"food auto budget exceeded",
		"Fixed expense reminder",
	}
	for i, want := range wantOrder {
		if report.Alerts[i].Title != want {
			t.Fatalf("alert[%d] = %q, want %q", i, report.Alerts[i].Title, want)
		}
	}
	if report.Headline != wantOrder[0] {
		t.Fatalf("headline = %q", report.Headline)
	}
	if !report.GeneratedAt.Equal(noon) {
		t.Fatalf("generatedAt = %v", report.GeneratedAt)
	}
}
