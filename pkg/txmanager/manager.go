package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/dbmetrics"
)

var (
	// ErrTxBusy is returned when a transaction keeps losing serialization
	// conflicts after all retries. The request changed nothing and the caller
	// may retry with the same parameters.
	ErrTxBusy = errors.New("txmanager: transaction busy, retry")

	// ErrTxFailed wraps non-retryable transaction failures.
	ErrTxFailed = errors.New("txmanager: transaction failed")
)

const (
	defaultRetryAttempts = 3
	retryBackoff         = 25 * time.Millisecond
)

// Postgres class 40 errors that are safe to retry as a whole transaction.
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// TxBeginner begins transactions; *dbmetrics.DB satisfies it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager runs functions inside database transactions and stashes
// the open transaction in the context so repositories pick it up.
type TransactionManager struct {
	db       TxBeginner
	attempts int
}

// NewTransactionManager builds a manager with the default retry budget.
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db, attempts: defaultRetryAttempts}
}

// WithRetryAttempts overrides the serialization-failure retry budget.
func (m *TransactionManager) WithRetryAttempts(n int) *TransactionManager {
	if n > 0 {
		m.attempts = n
	}
	return m
}

// Do runs fn in a READ COMMITTED transaction.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly runs fn in a read-only transaction.
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: true}, fn)
}

// DoSerializable runs fn in a SERIALIZABLE transaction, retrying on
// serialization failures and deadlocks up to the retry budget. Exhaustion is
// surfaced as ErrTxBusy; no partial state survives any attempt.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < m.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}

		err := m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %v", ErrTxBusy, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTxFailed, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w: rollback after %v: %v", ErrTxFailed, err, rbErr)
		}
		return err
	}

	// Keep the driver error in the chain: serialization failures routinely
	// surface at COMMIT and must stay visible to isRetryable.
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTxFailed, err)
	}

	return nil
}

// isRetryable walks the chain looking for a retryable Postgres error code.
// Serialization failures can surface from any statement or from COMMIT.
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqSerializationFailure || string(pqErr.Code) == pqDeadlockDetected
	}
	return false
}
