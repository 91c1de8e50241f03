package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/dbmetrics"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/txmanager"
)

// Package simpletxmanager adapts a plain *sql.DB to the transaction manager
// when metrics are disabled and no instrumented wrapper is in play.

type plainBeginner struct {
	db *sql.DB
}

func (b plainBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx, err := b.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// NewTransactionManager builds a transaction manager over an uninstrumented
// database handle.
func NewTransactionManager(db *sql.DB) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(plainBeginner{db: db})
}
