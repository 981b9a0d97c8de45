package usecase

import (
	"context"
	"fmt"

	"RugGuard/internal/domain/models"
	drepo "RugGuard/internal/domain/repository"
)

// Aggregate computes totals over pools. The average is not guarded, so an
// empty list yields NaN.
func Aggregate(pools []models.Pool) models.PoolMetrics {
	var liquidity, risk float64
	for _, p := range pools {
		liquidity += p.Liquidity
		risk += float64(p.RiskScore)
	}
	return models.PoolMetrics{
		TotalPools:       len(pools),
		TotalLiquidity:   liquidity,
		AverageRiskScore: risk / float64(len(pools)),
	}
}

// Analytics fetches the analytics pool list and aggregates it. Nothing is
// cached; every call reads the source again.
type Analytics struct {
	pools   drepo.PoolSource
	metrics drepo.Metrics
}

func NewAnalytics(pools drepo.PoolSource, metrics drepo.Metrics) *Analytics {
	return &Analytics{pools: pools, metrics: metrics}
}

func (a *Analytics) Snapshot(ctx context.Context) (models.AnalyticsSnapshot, error) {
	pools, err := a.pools.ListPools(ctx)
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("list analytics pools: %w", err)
	}
	m := Aggregate(pools)
	if a.metrics != nil {
		a.metrics.RecordAnalytics(m.TotalLiquidity, m.AverageRiskScore)
	}
	return models.AnalyticsSnapshot{Pools: pools, Metrics: m}, nil
}
