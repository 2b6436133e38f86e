package ledger

import (
	"sort"

	"gagyebu/internal/core"
)

// Sort modes accepted by Filter. Anything unrecognized falls back to newest
// first.
const (
	SortDateDesc   = "date_desc"
	SortDateAsc    = "date_asc"
	SortAmountDesc = "amount_desc"
	SortAmountAsc  = "amount_asc"
	SortCategory   = "category"
)

// Filter narrows the transaction log for listing. Zero values mean "no
// constraint"; Min and Max are pointers so a zero amount bound stays
// expressible.
type Filter struct {
	Start    string
	End      string
	Type     core.TransactionType
	Category string
	Min      *int64
	Max      *int64
	Sort     string
}

func (f Filter) match(t core.Transaction) bool {
	if f.Start != "" && t.Date < f.Start {
		return false
	}
	if f.End != "" && t.Date > f.End {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Min != nil && t.Amount < *f.Min {
		return false
	}
	if f.Max != nil && t.Amount > *f.Max {
		return false
	}
	return true
}

// FilterTransactions returns the matching entries in the requested order.
func (s *Store) FilterTransactions(f Filter) []core.Transaction {
	s.mu.Lock()
	txs := append([]core.Transaction(nil), s.transactions...)
	s.mu.Unlock()

	out := txs[:0]
	for _, t := range txs {
		if f.match(t) {
			out = append(out, t)
		}
	}
	out = append([]core.Transaction(nil), out...)
	sortTransactions(out, f.Sort)
	return out
}

func sortTransactions(txs []core.Transaction, mode string) {
	switch mode {
	case SortDateAsc:
		sort.SliceStable(txs, func(i, j int) bool {
			if txs[i].Date != txs[j].Date {
				return txs[i].Date < txs[j].Date
			}
			return txs[i].ID < txs[j].ID
		})
	case SortAmountDesc:
		sort.SliceStable(txs, func(i, j int) bool {
			if txs[i].Amount != txs[j].Amount {
				return txs[i].Amount > txs[j].Amount
			}
			return txs[i].ID < txs[j].ID
		})
	case SortAmountAsc:
		sort.SliceStable(txs, func(i, j int) bool {
			if txs[i].Amount != txs[j].Amount {
				return txs[i].Amount < txs[j].Amount
			}
			return txs[i].ID < txs[j].ID
		})
	case SortCategory:
		sort.SliceStable(txs, func(i, j int) bool {
			if txs[i].Category != txs[j].Category {
				return txs[i].Category < txs[j].Category
			}
			if txs[i].Date != txs[j].Date {
				return txs[i].Date > txs[j].Date
			}
			return txs[i].ID < txs[j].ID
		})
	default: // SortDateDesc
		sort.SliceStable(txs, func(i, j int) bool {
			if txs[i].Date != txs[j].Date {
				return txs[i].Date > txs[j].Date
			}
			return txs[i].ID < txs[j].ID
		})
	}
}
