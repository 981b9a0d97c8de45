package usecase

import (
	"context"
	"fmt"

	"RugGuard/internal/domain/models"
	drepo "RugGuard/internal/domain/repository"
)

// PoolBoard serves the pool overview table.
type PoolBoard struct {
	pools drepo.PoolSource
}

func NewPoolBoard(pools drepo.PoolSource) *PoolBoard {
	return &PoolBoard{pools: pools}
}

// Overview returns the overview pools in source order.
func (b *PoolBoard) Overview(ctx context.Context) ([]models.Pool, error) {
	pools, err := b.pools.ListPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pools: %w", err)
	}
	return pools, nil
}

// TxQueue serves the pending transaction table.
type TxQueue struct {
	txs drepo.TxSource
}

func NewTxQueue(txs drepo.TxSource) *TxQueue {
	return &TxQueue{txs: txs}
}

func (q *TxQueue) Pending(ctx context.Context) ([]models.PendingTx, error) {
	txs, err := q.txs.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending transactions: %w", err)
	}
	return txs, nil
}
