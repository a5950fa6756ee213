package exchange

import (
	"context"

	"github.com/rewearhq/rewear-backend/pkg/db"
	pkgerrors "github.com/rewearhq/rewear-backend/pkg/errors"
	"gorm.io/gorm"
)

const defaultMaxTxAttempts = 3

// Store runs exchange transactions with bounded retries on transient write
// conflicts. Non-retryable errors surface unchanged after rollback.
type Store struct {
	client      *db.Client
	maxAttempts int
}

// NewStore wraps the shared database client. maxAttempts <= 0 falls back to
// the default.
func NewStore(client *db.Client, maxAttempts int) (*Store, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxTxAttempts
	}
	return &Store{client: client, maxAttempts: maxAttempts}, nil
}

// DB exposes the underlying connection for read-side queries.
func (s *Store) DB() *gorm.DB {
	return s.client.DB()
}

// RunAtomic executes fn inside a transaction, retrying the whole transaction
// when the storage layer reports a serialization failure or deadlock. Once the
// attempt budget is exhausted the caller sees CONFLICT.
func (s *Store) RunAtomic(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = s.client.WithTx(ctx, fn)
		if lastErr == nil {
			return nil
		}
		if !db.IsSerializationFailure(lastErr) {
			return lastErr
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeConflict, lastErr, "transaction retries exhausted")
}
