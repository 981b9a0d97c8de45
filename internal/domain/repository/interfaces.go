package repository

import (
	"context"
	"fmt"

	"RugGuard/internal/domain/models"
)

// PoolSource yields the pools a page displays. Implementations return a
// fresh slice per call.
type PoolSource interface {
	ListPools(ctx context.Context) ([]models.Pool, error)
}

// TxSource yields the pending transaction queue.
type TxSource interface {
	ListPending(ctx context.Context) ([]models.PendingTx, error)
}

// DiagnosticSink receives diagnostics. Name identifies the sink in logs and metrics.
type DiagnosticSink interface {
	Name() string
	Emit(ctx context.Context, d models.Diagnostic) error
	Close() error
}

// History is implemented by sinks that can read back what they stored.
type History interface {
	Recent(ctx context.Context, n int64) ([]models.Diagnostic, error)
}

// SinkError reports which sink failed.
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string { return fmt.Sprintf("sink %s: %v", e.Sink, e.Err) }

func (e *SinkError) Unwrap() error { return e.Err }

type Metrics interface {
	RecordDiagnostic(kind string)
	RecordSinkError(sink string)
	RecordPageRender(page string)
	RecordAnalytics(totalLiquidity, averageRisk float64)
}
