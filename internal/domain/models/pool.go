package models

// Pool is a liquidity pair shown on the overview and analytics pages.
type Pool struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	RiskScore int     `json:"risk_score"`
	Liquidity float64 `json:"liquidity"`
}

// PendingTx is an entry in the pool transaction queue. Approve and reject
// never change it.
type PendingTx struct {
	ID     int    `json:"id"`
	Pool   string `json:"pool"`
	Amount string `json:"amount"`
	Status string `json:"status"`
}

const TxStatusPending = "Pending"
