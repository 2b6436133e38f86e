package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gagyebu/internal/core"
	"gagyebu/internal/ledger"
	applog "gagyebu/internal/log"
)

type transactionRequest struct {
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Amount   json.RawMessage `json:"amount"`
	Memo     string          `json:"memo"`
	Date     string          `json:"date"`
}

func (req transactionRequest) toTransaction(id string) core.Transaction {
	return core.Transaction{
		ID:       id,
		Type:     core.TransactionType(strings.TrimSpace(req.Type)),
		Category: sanitizeInput(req.Category),
		Amount:   jsonAmount(req.Amount),
		Memo:     sanitizeInput(req.Memo),
		Date:     strings.TrimSpace(req.Date),
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r, s.store.AnalysisMonth())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.dashboard(r.Context(), month))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ledger.Filter{
		Start:    strings.TrimSpace(q.Get("start")),
		End:      strings.TrimSpace(q.Get("end")),
		Type:     core.TransactionType(strings.TrimSpace(q.Get("type"))),
		Category: strings.TrimSpace(q.Get("category")),
		Sort:     strings.TrimSpace(q.Get("sort")),
	}
	if v := strings.TrimSpace(q.Get("min")); v != "" {
		min := core.ParseAmount(v)
		filter.Min = &min
	}
	if v := strings.TrimSpace(q.Get("max")); v != "" {
		max := core.ParseAmount(v)
		filter.Max = &max
	}

	txs := s.store.FilterTransactions(filter)
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := s.store.UpsertTransaction(r.Context(), req.toTransaction(""))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.invalidateDashboards()
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := s.store.UpsertTransaction(r.Context(), req.toTransaction(id))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.invalidateDashboards()
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.invalidateDashboards()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Categories())
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req core.Category
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = sanitizeInput(req.Name)

	saved, err := s.store.UpsertCategory(r.Context(), req)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.invalidateDashboards()
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.invalidateDashboards()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Settings())
}

type settingsRequest struct {
	MonthlyExpenseLimit json.RawMessage            `json:"monthlyExpenseLimit"`
	CategoryLimits      map[string]json.RawMessage `json:"categoryLimits"`
	FixedExpenseDate    string                     `json:"fixedExpenseDate"`
	FixedExpenseMemo    string                     `json:"fixedExpenseMemo"`
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	upd := core.Settings{
		MonthlyExpenseLimit: jsonAmount(req.MonthlyExpenseLimit),
		CategoryLimits:      make(map[string]int64, len(req.CategoryLimits)),
		FixedExpenseDate:    strings.TrimSpace(req.FixedExpenseDate),
		FixedExpenseMemo:    sanitizeInput(req.FixedExpenseMemo),
	}
	for id, raw := range req.CategoryLimits {
		// A zero limit means untracked; drop it instead of storing noise.
		if limit := jsonAmount(raw); limit > 0 {
			upd.CategoryLimits[id] = limit
		}
	}

	if err := s.store.UpdateSettings(r.Context(), upd); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.invalidateDashboards()
	writeJSON(w, http.StatusOK, s.store.Settings())
}

func (s *Server) handleRefreshBudgets(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r, s.store.AnalysisMonth())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	budgets, err := s.store.RecomputeAutoBudgets(r.Context(), month)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.invalidateDashboards()
	writeJSON(w, http.StatusOK, struct {
		Month           core.MonthKey    `json:"month"`
		CategoryBudgets map[string]int64 `json:"categoryBudgets"`
	}{Month: month, CategoryBudgets: budgets})
}

type analysisMonthRequest struct {
	Month string `json:"month"`
}

func (s *Server) handleSetAnalysisMonth(w http.ResponseWriter, r *http.Request) {
	var req analysisMonthRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.SetAnalysisMonth(r.Context(), core.MonthKey(strings.TrimSpace(req.Month))); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.invalidateDashboards()
	writeJSON(w, http.StatusOK, struct {
		Month core.MonthKey `json:"month"`
	}{Month: s.store.AnalysisMonth()})
}

// writeStoreError maps store and validation errors onto HTTP statuses.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrCategoryInUse):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrNegativeAmount),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrEmptyID):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		applog.FromContext(ctx).ErrorContext(ctx, "Request failed",
			applog.FieldError, err.Error(),
			applog.FieldPath, r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
