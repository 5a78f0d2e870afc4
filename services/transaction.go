package services

import (
	"context"
	"fmt"

	"github.com/greysolve/outreach-console/repositories"
)

// TxFunc runs inside a transaction; repositories reach it through tx.Context()
type TxFunc[T any] func(ctx context.Context, tx repositories.Transaction) (T, error)

// InTx runs fn in a transaction and returns what it produced. The transaction
// commits only when fn succeeds and is rolled back if fn panics.
func InTx[T any](ctx context.Context, txMgr repositories.TransactionManager, fn TxFunc[T]) (result T, err error) {
	tx, err := txMgr.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	result, err = fn(ctx, tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return result, fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return result, err
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// WithTransaction is InTx for work that produces nothing
func WithTransaction(ctx context.Context, txMgr repositories.TransactionManager, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	_, err := InTx(ctx, txMgr, func(ctx context.Context, tx repositories.Transaction) (struct{}, error) {
		return struct{}{}, fn(ctx, tx)
	})
	return err
}
