package ledger

import (
	"context"
	"time"

	"gagyebu/internal/core"
)

const (
	EventTransactionUpserted EventKind = "transaction_upserted"
	EventTransactionDeleted  EventKind = "transaction_deleted"
)

type (
	EventKind string

	// Event describes one committed transaction mutation. Events carry the
	// full entry so consumers never have to read the ledger back.
	Event struct {
		Kind        EventKind        `json:"kind"`
		Transaction core.Transaction `json:"transaction"`
		OccurredAt  time.Time        `json:"occurredAt"`
	}

	// Publisher is the optional outbound port for mutation events. Publishing
	// is best effort: a failed publish never fails the mutation.
	Publisher interface {
		PublishLedgerEvent(ctx context.Context, ev Event) error
	}
)
