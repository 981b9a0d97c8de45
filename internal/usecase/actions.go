package usecase

import (
	"context"
	"fmt"
	"strconv"

	"RugGuard/internal/domain/models"
)

// RowActions turns table button clicks into diagnostics. No record is
// looked up or changed; an unknown id is reported like a known one.
type RowActions struct {
	diag *Diagnostics
}

func NewRowActions(diag *Diagnostics) *RowActions {
	return &RowActions{diag: diag}
}

func (a *RowActions) ViewPool(ctx context.Context, id int) models.Diagnostic {
	return a.diag.Emit(ctx, models.KindPoolView,
		fmt.Sprintf("Viewing pool with ID: %d", id),
		map[string]string{"pool_id": strconv.Itoa(id)})
}

func (a *RowActions) ManagePool(ctx context.Context, id int) models.Diagnostic {
	return a.diag.Emit(ctx, models.KindPoolManage,
		fmt.Sprintf("Managing pool with ID: %d", id),
		map[string]string{"pool_id": strconv.Itoa(id)})
}

func (a *RowActions) ApproveTx(ctx context.Context, id int) models.Diagnostic {
	return a.diag.Emit(ctx, models.KindTxApprove,
		fmt.Sprintf("Approved transaction with ID: %d", id),
		map[string]string{"tx_id": strconv.Itoa(id)})
}

func (a *RowActions) RejectTx(ctx context.Context, id int) models.Diagnostic {
	return a.diag.Emit(ctx, models.KindTxReject,
		fmt.Sprintf("Rejected transaction with ID: %d", id),
		map[string]string{"tx_id": strconv.Itoa(id)})
}
