package repository

import (
	"context"
	"slices"

	"RugGuard/internal/domain/models"
	"RugGuard/internal/domain/repository"
)

// StaticPoolSource serves a fixed pool list.
type StaticPoolSource struct {
	pools []models.Pool
}

// NewStaticPoolSource returns a source over pools. The slice is copied.
func NewStaticPoolSource(pools []models.Pool) *StaticPoolSource {
	return &StaticPoolSource{pools: slices.Clone(pools)}
}

// NewOverviewPools is the pool list shown on the overview page.
func NewOverviewPools() repository.PoolSource {
	return NewStaticPoolSource([]models.Pool{
		{ID: 1, Name: "ETH/USDC", RiskScore: 20, Liquidity: 1_000_000},
		{ID: 2, Name: "BTC/ETH", RiskScore: 35, Liquidity: 500_000},
	})
}

// NewAnalyticsPools is the pool list the analytics page aggregates.
func NewAnalyticsPools() repository.PoolSource {
	return NewStaticPoolSource([]models.Pool{
		{ID: 1, Name: "ETH/USDT", RiskScore: 20, Liquidity: 100_000},
		{ID: 2, Name: "BTC/ETH", RiskScore: 35, Liquidity: 500_000},
	})
}

func (s *StaticPoolSource) ListPools(ctx context.Context) ([]models.Pool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.pools), nil
}
