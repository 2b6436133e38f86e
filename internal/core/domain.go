package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

type (
	TransactionType string

	// Transaction is a single ledger entry. Identity is ID; entries are
	// mutated only by full replace-by-id or delete.
	Transaction struct {
		ID       string          `json:"id"`
		Type     TransactionType `json:"type"`
		Category string          `json:"category"`
		Amount   int64           `json:"amount"`
		Memo     string          `json:"memo,omitempty"`
		Date     string          `json:"date"` // canonical YYYY-MM-DD
	}

	Category struct {
		ID   string          `json:"id"`
		Name string          `json:"name"`
		Type TransactionType `json:"type"`
	}

	// AutoBudgets holds the generated per-category budget baseline.
	AutoBudgets struct {
		Enabled         bool             `json:"enabled"`
		LastGenerated   *time.Time       `json:"lastGenerated"`
		TargetMonth     string           `json:"targetMonth"`
		CategoryBudgets map[string]int64 `json:"categoryBudgets"`
	}

	// Settings is the singleton configuration blob persisted alongside the
	// ledger. A zero MonthlyExpenseLimit means no global limit is set.
	Settings struct {
		MonthlyExpenseLimit int64            `json:"monthlyExpenseLimit"`
		CategoryLimits      map[string]int64 `json:"categoryLimits"`
		FixedExpenseDate    string           `json:"fixedExpenseDate"`
		FixedExpenseMemo    string           `json:"fixedExpenseMemo"`
		AutoBudgets         AutoBudgets      `json:"autoBudgets"`
	}
)

var (
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidDate     = errors.New("invalid date")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrEmptyCategory   = errors.New("empty category")
	ErrEmptyName       = errors.New("empty category name")
	ErrEmptyID        = errors.New("empty id")
)

// UnlabeledCategory is the display fallback for a transaction whose category
// no longer resolves.
const UnlabeledCategory = "unlabeled"

// DefaultCategories is the fixed seed set used when no categories are
// persisted yet.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food", Type: TypeExpense},
		{ID: "transport", Name: "Transport", Type: TypeExpense},
		{ID: "living", Name: "Housing & Utilities", Type: TypeExpense},
		{ID: "culture", Name: "Leisure", Type: TypeExpense},
		{ID: "etc", Name: "Miscellaneous", Type: TypeExpense},
		{ID: "salary", Name: "Salary", Type: TypeIncome},
		{ID: "freelance", Name: "Freelance", Type: TypeIncome},
		{ID: "gift", Name: "Gifts & Allowance", Type: TypeIncome},
	}
}

// DefaultSettings returns the baseline settings persisted values are merged
// over. Maps are non-nil so lookups never have to guard.
func DefaultSettings() Settings {
	return Settings{
		CategoryLimits: map[string]int64{},
		AutoBudgets: AutoBudgets{
			Enabled:         true,
			CategoryBudgets: map[string]int64{},
		},
	}
}

// Normalize repairs nil maps after a JSON round trip so the rest of the
// system can index without nil checks.
func (s *Settings) Normalize() {
	if s.CategoryLimits == nil {
		s.CategoryLimits = map[string]int64{}
	}
	if s.AutoBudgets.CategoryBudgets == nil {
		s.AutoBudgets.CategoryBudgets = map[string]int64{}
	}
}

func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount < 0 {
		return ErrNegativeAmount
	}
	if !ValidDate(t.Date) {
		return ErrInvalidDate
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// ParseAmount converts a raw numeric form value to a non-negative amount.
// Anything that fails to parse coerces to 0 rather than erroring; fractions
// are rounded half away from zero.
func ParseAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return 0
		}
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f + 0.5)
}

// ResolveName maps a category id to its display name, falling back to the raw
// id when the reference no longer resolves.
func ResolveName(categories []Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// CategoryInUse reports whether any transaction still references the category.
func CategoryInUse(transactions []Transaction, categoryID string) bool {
	for _, t := range transactions {
		if t.Category == categoryID {
			return true
		}
	}
	return false
}
