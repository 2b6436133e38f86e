// Package storage defines the persistence port for the ledger: a small
// key-value contract storing JSON-serializable blobs under fixed keys.
// Adapters live in the subpackages memory, file and sqlite.
package storage

import "context"

// Fixed keys for the three persisted root values.
const (
	KeyTransactions = "transactions"
	KeyCategories   = "categories"
	KeySettings     = "settings"
)

// KV is the outbound persistence port. Load reports found=false for a
// missing key and leaves dest untouched; a malformed stored value surfaces
// as an error so the caller can fall back to defaults. Save replaces the
// value wholesale.
type KV interface {
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, value any) error
}
