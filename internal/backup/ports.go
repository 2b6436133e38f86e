// Package backup defines the outbound ports for mirroring the ledger to an
// external copy. The mirror is one-way: the ledger is the source of truth
// and the copy is never read back.
package backup

import (
	"context"

	"gagyebu/internal/core"
)

type (
	// TransactionWriter mirrors single transaction mutations.
	TransactionWriter interface {
		AppendTransaction(ctx context.Context, tx core.Transaction) (rowRef string, err error)
		RemoveTransaction(ctx context.Context, id string) error
	}

	// SnapshotWriter replaces the whole mirrored copy with the current ledger.
	SnapshotWriter interface {
		WriteSnapshot(ctx context.Context, txs []core.Transaction) error
	}

	// Mirror is the full backup target surface.
	Mirror interface {
		TransactionWriter
		SnapshotWriter
	}
)
