// Package worker runs the ledger backup pipeline: mutation messages from the
// broker are applied to the mirror as they arrive, and a periodic sweep
// rewrites the full snapshot to recover from any missed messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"gagyebu/internal/amqp"
	"gagyebu/internal/backup"
	"gagyebu/internal/core"
	"gagyebu/internal/storage"
)

// MessageSource delivers ledger mutation messages until the context ends.
type MessageSource interface {
	ConsumeLedgerMessages(ctx context.Context, handler func(*amqp.LedgerMessage) error) error
}

// BackupWorker mirrors the ledger to an external copy.
type BackupWorker struct {
	kv     storage.KV
	mirror backup.Mirror
}

func NewBackupWorker(kv storage.KV, mirror backup.Mirror) *BackupWorker {
	return &BackupWorker{
		kv:     kv,
		mirror: mirror,
	}
}

// HandleLedgerMessage applies a single mutation message to the mirror.
func (w *BackupWorker) HandleLedgerMessage(ctx context.Context, msg *amqp.LedgerMessage) error {
	switch msg.Kind {
	case amqp.KindTransactionUpserted:
		// An upsert may replace an existing row; drop any stale copy first.
		if err := w.mirror.RemoveTransaction(ctx, msg.Transaction.ID); err != nil {
			return fmt.Errorf("remove stale row: %w", err)
		}
		ref, err := w.mirror.AppendTransaction(ctx, msg.Transaction)
		if err != nil {
			return fmt.Errorf("append to mirror: %w", err)
		}
		slog.InfoContext(ctx, "Transaction mirrored",
			"transaction_id", msg.Transaction.ID,
			"sheets_ref", ref,
			"amount", msg.Transaction.Amount)
		return nil

	case amqp.KindTransactionDeleted:
		if err := w.mirror.RemoveTransaction(ctx, msg.Transaction.ID); err != nil {
			return fmt.Errorf("remove from mirror: %w", err)
		}
		slog.InfoContext(ctx, "Transaction removed from mirror",
			"transaction_id", msg.Transaction.ID)
		return nil

	default:
		// Unknown kinds are dropped, not requeued.
		slog.WarnContext(ctx, "Unknown ledger message kind", "kind", msg.Kind)
		return nil
	}
}

// SnapshotSweep rewrites the full mirrored copy from storage. This recovers
// from missed broker messages and from mirror edits made out of band.
func (w *BackupWorker) SnapshotSweep(ctx context.Context) error {
	var txs []core.Transaction
	found, err := w.kv.Load(ctx, storage.KeyTransactions, &txs)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	if !found {
		txs = nil
	}

	if err := w.mirror.WriteSnapshot(ctx, txs); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot sweep completed", "transactions", len(txs))
	return nil
}

// Run consumes mutation messages and sweeps snapshots on the given interval
// until the context is cancelled. The consumer and the sweeper run
// concurrently; the first terminal error stops both.
func (w *BackupWorker) Run(ctx context.Context, source MessageSource, sweepInterval time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return source.ConsumeLedgerMessages(ctx, func(msg *amqp.LedgerMessage) error {
			return w.HandleLedgerMessage(ctx, msg)
		})
	})

	g.Go(func() error {
		// Full snapshot on startup so a fresh mirror catches up immediately.
		if err := w.SnapshotSweep(ctx); err != nil {
			slog.ErrorContext(ctx, "Startup snapshot sweep failed", "error", err)
		}

		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.SnapshotSweep(ctx); err != nil {
					slog.ErrorContext(ctx, "Snapshot sweep failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}
