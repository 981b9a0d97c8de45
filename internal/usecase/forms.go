package usecase

import (
	"context"
	"fmt"

	"RugGuard/internal/domain/models"
)

// Forms handles submits of the swap, liquidity and stake forms. The state
// is returned unchanged; amounts are never parsed.
type Forms struct {
	diag *Diagnostics
}

func NewForms(diag *Diagnostics) *Forms {
	return &Forms{diag: diag}
}

func (f *Forms) SubmitSwap(ctx context.Context, form models.SwapForm) (models.SwapForm, models.Diagnostic) {
	d := f.diag.Emit(ctx, models.KindSwapSubmit,
		fmt.Sprintf("Swap %s %s for %s %s", form.FromAmount, form.FromToken, form.ToAmount, form.ToToken),
		map[string]string{
			"from_amount": form.FromAmount,
			"from_token":  form.FromToken,
			"to_amount":   form.ToAmount,
			"to_token":    form.ToToken,
		})
	return form, d
}

func (f *Forms) SubmitLiquidity(ctx context.Context, form models.LiquidityForm) (models.LiquidityForm, models.Diagnostic) {
	d := f.diag.Emit(ctx, models.KindLiquiditySubmit,
		fmt.Sprintf("%s liquidity: %s", form.Operation, form.Amount),
		map[string]string{"operation": form.Operation, "amount": form.Amount})
	return form, d
}

func (f *Forms) SubmitStake(ctx context.Context, form models.StakeForm) (models.StakeForm, models.Diagnostic) {
	d := f.diag.Emit(ctx, models.KindStakeSubmit,
		fmt.Sprintf("%s amount: %s", form.Action, form.Amount),
		map[string]string{"action": form.Action, "amount": form.Amount})
	return form, d
}
