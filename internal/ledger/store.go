// Package ledger owns the in-memory ledger state: transactions, categories
// and settings, loaded from and saved back to the storage port in full after
// every mutation. There is exactly one logical writer; the store serializes
// access with a mutex so it can sit behind an HTTP host.
package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gagyebu/internal/analytics"
	"gagyebu/internal/core"
	"gagyebu/internal/storage"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category is referenced by transactions")
)

type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	events Publisher
	now    func() time.Time

	transactions  []core.Transaction
	categories    []core.Category
	settings      core.Settings
	analysisMonth core.MonthKey
}

type Option func(*Store)

// WithClock overrides the time source, which drives the analysis month
// default, alert timestamps and auto-budget bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithPublisher attaches an outbound event publisher to the write path.
func WithPublisher(p Publisher) Option {
	return func(s *Store) { s.events = p }
}

func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		now:      time.Now,
		settings: core.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the three persisted values, falling back to defaults on missing
// or malformed data (logged as a warning, never an error), seeds the default
// category set when none exist, and refreshes the auto budgets when they are
// empty or stale for the current analysis month.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var txs []core.Transaction
	if found, err := s.kv.Load(ctx, storage.KeyTransactions, &txs); err != nil {
		slog.WarnContext(ctx, "Malformed transactions in storage, starting empty", "error", err)
		txs = nil
	} else if !found {
		txs = nil
	}
	s.transactions = txs

	var cats []core.Category
	if found, err := s.kv.Load(ctx, storage.KeyCategories, &cats); err != nil {
		slog.WarnContext(ctx, "Malformed categories in storage, reseeding defaults", "error", err)
		cats = nil
	} else if !found {
		cats = nil
	}
	if len(cats) == 0 {
		cats = core.DefaultCategories()
		if err := s.kv.Save(ctx, storage.KeyCategories, cats); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	s.categories = cats

	settings := core.DefaultSettings()
	if _, err := s.kv.Load(ctx, storage.KeySettings, &settings); err != nil {
		slog.WarnContext(ctx, "Malformed settings in storage, using defaults", "error", err)
		settings = core.DefaultSettings()
	}
	settings.Normalize()
	s.settings = settings

	s.analysisMonth = core.MonthKeyOf(s.now())

	if len(s.settings.AutoBudgets.CategoryBudgets) == 0 ||
		s.settings.AutoBudgets.TargetMonth != string(s.analysisMonth) {
		if err := s.recomputeAutoBudgetsLocked(ctx, s.analysisMonth); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "Ledger loaded",
		"transactions", len(s.transactions),
		"categories", len(s.categories),
		"analysis_month", s.analysisMonth)
	return nil
}

// NewID returns a fresh opaque transaction/category id.
func NewID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("id%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// Transactions returns a copy of the transaction log.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// Categories returns a copy of the category set.
func (s *Store) Categories() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.categories...)
}

// Settings returns a copy of the settings, maps included.
func (s *Store) Settings() core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySettings(s.settings)
}

// AnalysisMonth returns the month the dashboard and budgets are evaluated
// against.
func (s *Store) AnalysisMonth() core.MonthKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysisMonth
}

// ResolveName maps a category id to its display name, falling back to the
// raw id when unresolved.
func (s *Store) ResolveName(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.ResolveName(s.categories, id)
}

// UpsertTransaction inserts the transaction or replaces the entry with the
// same id, persists the full log, silently refreshes the auto budgets and
// publishes a mutation event.
func (s *Store) UpsertTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = NewID()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.transactions {
		if s.transactions[i].ID == tx.ID {
			s.transactions[i] = tx
			replaced = true
			break
		}
	}
	if !replaced {
		s.transactions = append(s.transactions, tx)
	}
	if err := s.kv.Save(ctx, storage.KeyTransactions, s.transactions); err != nil {
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}

	if err := s.autoRefreshBudgetsLocked(ctx); err != nil {
		return core.Transaction{}, err
	}
	s.publish(ctx, Event{Kind: EventTransactionUpserted, Transaction: tx, OccurredAt: s.now()})

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID, "type", string(tx.Type), "category", tx.Category,
		"amount", tx.Amount, "date", tx.Date, "replaced", replaced)
	return tx, nil
}

// DeleteTransaction removes the entry by id, persists, refreshes budgets and
// publishes a mutation event.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrTransactionNotFound
	}
	removed := s.transactions[idx]
	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	if err := s.kv.Save(ctx, storage.KeyTransactions, s.transactions); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}

	if err := s.autoRefreshBudgetsLocked(ctx); err != nil {
		return err
	}
	s.publish(ctx, Event{Kind: EventTransactionDeleted, Transaction: removed, OccurredAt: s.now()})

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// UpsertCategory inserts or replaces a category and persists the set.
func (s *Store) UpsertCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if c.ID == "" {
		c.ID = NewID()
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			s.categories[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		s.categories = append(s.categories, c)
	}
	if err := s.kv.Save(ctx, storage.KeyCategories, s.categories); err != nil {
		return core.Category{}, fmt.Errorf("save categories: %w", err)
	}
	slog.InfoContext(ctx, "Category saved", "id", c.ID, "name", c.Name, "replaced", replaced)
	return c, nil
}

// DeleteCategory removes a category. Deletion is refused while any
// transaction still references it; the reference check is this boundary's
// job, aggregation downstream tolerates dangling ids regardless.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.categories {
		if s.categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCategoryNotFound
	}
	if core.CategoryInUse(s.transactions, id) {
		return ErrCategoryInUse
	}
	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)
	if err := s.kv.Save(ctx, storage.KeyCategories, s.categories); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	slog.InfoContext(ctx, "Category deleted", "id", id)
	return nil
}

// UpdateSettings replaces the user-editable settings fields and persists.
// The generated auto budgets are owned by the recompute path and survive the
// update untouched.
func (s *Store) UpdateSettings(ctx context.Context, upd core.Settings) error {
	if upd.FixedExpenseDate != "" && !core.ValidDate(upd.FixedExpenseDate) {
		return core.ErrInvalidDate
	}
	if upd.MonthlyExpenseLimit < 0 {
		return core.ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	upd.AutoBudgets = s.settings.AutoBudgets
	upd.Normalize()
	s.settings = upd
	if err := s.kv.Save(ctx, storage.KeySettings, s.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	slog.InfoContext(ctx, "Settings updated",
		"monthly_limit", upd.MonthlyExpenseLimit,
		"category_limits", len(upd.CategoryLimits))
	return nil
}

// SetAnalysisMonth switches the month under analysis and refreshes the auto
// budgets when the stored target no longer matches.
func (s *Store) SetAnalysisMonth(ctx context.Context, month core.MonthKey) error {
	if !core.ValidMonthKey(string(month)) {
		return core.ErrInvalidDate
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.analysisMonth = month
	if s.settings.AutoBudgets.TargetMonth != string(month) {
		return s.autoRefreshBudgetsLocked(ctx)
	}
	return nil
}

// RecomputeAutoBudgets regenerates the per-category budgets for the month
// and persists them, replacing the previous mapping wholesale. The returned
// mapping is empty when the lookback window holds no expense history, which
// is a valid state, not an error.
func (s *Store) RecomputeAutoBudgets(ctx context.Context, month core.MonthKey) (map[string]int64, error) {
	if !core.ValidMonthKey(string(month)) {
		return nil, core.ErrInvalidDate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.recomputeAutoBudgetsLocked(ctx, month); err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(s.settings.AutoBudgets.CategoryBudgets))
	for k, v := range s.settings.AutoBudgets.CategoryBudgets {
		out[k] = v
	}
	return out, nil
}

// autoRefreshBudgetsLocked is the silent recompute hook on the write path.
// It honors the enabled flag; the explicit RecomputeAutoBudgets trigger does
// not.
func (s *Store) autoRefreshBudgetsLocked(ctx context.Context) error {
	if !s.settings.AutoBudgets.Enabled {
		return nil
	}
	return s.recomputeAutoBudgetsLocked(ctx, s.analysisMonth)
}

func (s *Store) recomputeAutoBudgetsLocked(ctx context.Context, month core.MonthKey) error {
	budgets := analytics.GenerateAutoBudget(s.transactions, month, analytics.DefaultLookback)
	now := s.now()
	s.settings.AutoBudgets.CategoryBudgets = budgets
	s.settings.AutoBudgets.LastGenerated = &now
	s.settings.AutoBudgets.TargetMonth = string(month)
	if err := s.kv.Save(ctx, storage.KeySettings, s.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	slog.DebugContext(ctx, "Auto budgets regenerated", "month", month, "categories", len(budgets))
	return nil
}

func (s *Store) publish(ctx context.Context, ev Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, ev); err != nil {
		slog.WarnContext(ctx, "Ledger event publish failed",
			"kind", string(ev.Kind), "transaction_id", ev.Transaction.ID, "error", err)
	}
}

func copySettings(in core.Settings) core.Settings {
	out := in
	out.CategoryLimits = make(map[string]int64, len(in.CategoryLimits))
	for k, v := range in.CategoryLimits {
		out.CategoryLimits[k] = v
	}
	out.AutoBudgets.CategoryBudgets = make(map[string]int64, len(in.AutoBudgets.CategoryBudgets))
	for k, v := range in.AutoBudgets.CategoryBudgets {
		out.AutoBudgets.CategoryBudgets[k] = v
	}
	return out
}
