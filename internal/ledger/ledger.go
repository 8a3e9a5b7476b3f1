// Package ledger implements the engine behind the store: balance
// derivation, validated mutations, aggregation reports and export. All
// monetary math is decimal; balances are always derived from the
// transaction log, never stored.
package ledger

import (
	"sync"

	"github.com/accrue-app/accrue/internal/service"
)

// Ledger coordinates validated access to the store.
//
// A single reader-writer lock serializes mutations against reads: every
// mutation (and Restore, which swaps the database file out from under the
// store) holds the write lock, while reads and multi-query aggregates hold
// the read lock for their full duration. An aggregate therefore never
// observes half of a transfer, and no query can run against a database
// mid-restore.
type Ledger struct {
	mu    sync.RWMutex
	store service.Storage
}

// New creates a ledger engine backed by the given store.
func New(store service.Storage) *Ledger {
	return &Ledger{store: store}
}

// Store exposes the underlying storage for setup that runs before the
// engine serves traffic, such as migration at startup. It bypasses the
// ledger's locking and must not be used concurrently with engine calls.
func (l *Ledger) Store() service.Storage {
	return l.store
}
