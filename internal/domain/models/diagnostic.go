package models

import "time"

// Diagnostic kinds.
const (
	KindPoolView        = "pool.view"
	KindPoolManage      = "pool.manage"
	KindTxApprove       = "tx.approve"
	KindTxReject        = "tx.reject"
	KindSwapSubmit      = "swap.submit"
	KindLiquiditySubmit = "liquidity.submit"
	KindStakeSubmit     = "stake.submit"
)

// Diagnostic is a developer-facing message emitted in place of business logic.
// Session names the browser session whose action produced it.
type Diagnostic struct {
	ID      string            `json:"id"`
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Session string            `json:"session,omitempty"`
	At      time.Time         `json:"at"`
}
