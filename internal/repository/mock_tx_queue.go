package repository

import (
	"context"
	"slices"

	"RugGuard/internal/domain/models"
	"RugGuard/internal/domain/repository"
)

// StaticTxSource serves a fixed pending transaction queue.
type StaticTxSource struct {
	txs []models.PendingTx
}

func NewStaticTxSource(txs []models.PendingTx) *StaticTxSource {
	return &StaticTxSource{txs: slices.Clone(txs)}
}

// NewPendingQueue is the queue shown on the pool tx queue page.
func NewPendingQueue() repository.TxSource {
	return NewStaticTxSource([]models.PendingTx{
		{ID: 1, Pool: "ETH/USDC", Amount: "1,000", Status: models.TxStatusPending},
		{ID: 2, Pool: "BTC/ETH", Amount: "0.5", Status: models.TxStatusPending},
	})
}

func (s *StaticTxSource) ListPending(ctx context.Context) ([]models.PendingTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.txs), nil
}
