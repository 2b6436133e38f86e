package amqp

import (
	"encoding/json"
	"time"

	"gagyebu/internal/core"
)

// Message kinds understood by the backup worker.
const (
	KindTransactionUpserted = "transaction_upserted"
	KindTransactionDeleted  = "transaction_deleted"
)

// LedgerMessage carries one committed transaction mutation to the backup
// worker. The full entry rides along so the worker never has to read the
// ledger back.
type LedgerMessage struct {
	Kind        string           `json:"kind"`
	Transaction core.Transaction `json:"transaction"`
	Timestamp   time.Time        `json:"timestamp"`
}

// NewLedgerMessage creates a mutation message stamped with the current time
func NewLedgerMessage(kind string, tx core.Transaction) *LedgerMessage {
	return &LedgerMessage{
		Kind:        kind,
		Transaction: tx,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerMessageFromJSON creates a message from JSON bytes
func LedgerMessageFromJSON(data []byte) (*LedgerMessage, error) {
	var msg LedgerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
