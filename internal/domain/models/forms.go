package models

// Selector options, in display order.
var (
	SwapTokens          = []string{"ETH", "USDC"}
	LiquidityOperations = []string{"add", "remove"}
	StakeActions        = []string{"stake", "unstake"}
)

// Option is a value/label pair for a <select>.
type Option struct {
	Value string
	Label string
}

// SwapForm is the state of the swap page. Amounts are kept verbatim.
type SwapForm struct {
	FromAmount string `form:"fromAmount" json:"fromAmount"`
	FromToken  string `form:"fromToken" json:"fromToken" default:"ETH" validate:"oneof=ETH USDC"`
	ToAmount   string `form:"toAmount" json:"toAmount"`
	ToToken    string `form:"toToken" json:"toToken" default:"USDC" validate:"oneof=USDC ETH"`
}

// FromOptions lists the "from" selector, ETH first.
func (SwapForm) FromOptions() []Option {
	return []Option{{"ETH", "ETH"}, {"USDC", "USDC"}}
}

// ToOptions lists the "to" selector, USDC first.
func (SwapForm) ToOptions() []Option {
	return []Option{{"USDC", "USDC"}, {"ETH", "ETH"}}
}

// LiquidityForm is the state of the liquidity page.
type LiquidityForm struct {
	Operation string `form:"operation" json:"operation" default:"add" validate:"oneof=add remove"`
	Amount    string `form:"amount" json:"amount"`
}

func (LiquidityForm) Options() []Option {
	return []Option{{"add", "Add Liquidity"}, {"remove", "Remove Liquidity"}}
}

// SubmitLabel is the text of the submit button for the current operation.
func (f LiquidityForm) SubmitLabel() string {
	if f.Operation == "add" {
		return "Add Liquidity"
	}
	return "Remove Liquidity"
}

// StakeForm is the state of the earn page.
type StakeForm struct {
	Amount string `form:"amount" json:"amount"`
	Action string `form:"action" json:"action" default:"stake" validate:"oneof=stake unstake"`
}

func (StakeForm) Options() []Option {
	return []Option{{"stake", "Stake"}, {"unstake", "Unstake"}}
}

func (f StakeForm) SubmitLabel() string {
	if f.Action == "stake" {
		return "Stake Tokens"
	}
	return "Unstake Tokens"
}
