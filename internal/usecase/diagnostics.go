package usecase

import (
	"context"
	"errors"
	"time"

	"RugGuard/internal/domain/models"
	drepo "RugGuard/internal/domain/repository"
	applogger "RugGuard/pkg/logger"

	"github.com/google/uuid"
)

// Diagnostics stamps and delivers diagnostic messages. Delivery failures are
// logged and counted; callers never see them.
type Diagnostics struct {
	sink    drepo.DiagnosticSink
	metrics drepo.Metrics
	log     *applogger.Logger
	now     func() time.Time
}

func NewDiagnostics(sink drepo.DiagnosticSink, metrics drepo.Metrics, l *applogger.Logger) *Diagnostics {
	if l == nil {
		l = applogger.Nop()
	}
	return &Diagnostics{sink: sink, metrics: metrics, log: l, now: time.Now}
}

// Emit builds a diagnostic and hands it to the sink.
func (d *Diagnostics) Emit(ctx context.Context, kind, message string, fields map[string]string) models.Diagnostic {
	diag := models.Diagnostic{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
		Fields:  fields,
		Session: models.SessionFromContext(ctx),
		At:      d.now().UTC(),
	}
	if d.metrics != nil {
		d.metrics.RecordDiagnostic(kind)
	}
	if d.sink == nil {
		return diag
	}
	if err := d.sink.Emit(ctx, diag); err != nil {
		d.log.Warn("diagnostic delivery failed",
			applogger.String("kind", kind),
			applogger.String("diagnostic_id", diag.ID),
			applogger.Error(err),
		)
		for _, name := range failedSinks(err) {
			if d.metrics != nil {
				d.metrics.RecordSinkError(name)
			}
		}
	}
	return diag
}

// failedSinks names every sink in err, which may be joined.
func failedSinks(err error) []string {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		var se *drepo.SinkError
		if errors.As(e, &se) {
			names = append(names, se.Sink)
		} else {
			names = append(names, "unknown")
		}
	}
	return names
}
