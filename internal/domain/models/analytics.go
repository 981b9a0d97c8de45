package models

import (
	"encoding/json"
	"math"
)

// PoolMetrics aggregates a pool list. AverageRiskScore is NaN for an empty list.
type PoolMetrics struct {
	TotalPools       int     `json:"total_pools"`
	TotalLiquidity   float64 `json:"total_liquidity"`
	AverageRiskScore float64 `json:"average_risk_score"`
}

// MarshalJSON encodes a NaN average as null; encoding/json rejects NaN.
func (m PoolMetrics) MarshalJSON() ([]byte, error) {
	var avg *float64
	if !math.IsNaN(m.AverageRiskScore) && !math.IsInf(m.AverageRiskScore, 0) {
		avg = &m.AverageRiskScore
	}
	return json.Marshal(struct {
		TotalPools       int      `json:"total_pools"`
		TotalLiquidity   float64  `json:"total_liquidity"`
		AverageRiskScore *float64 `json:"average_risk_score"`
	}{m.TotalPools, m.TotalLiquidity, avg})
}

// AnalyticsSnapshot is what one analytics mount displays.
type AnalyticsSnapshot struct {
	Pools   []Pool      `json:"pools"`
	Metrics PoolMetrics `json:"metrics"`
}
