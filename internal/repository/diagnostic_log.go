package repository

import (
	"context"

	"RugGuard/internal/domain/models"
	applogger "RugGuard/pkg/logger"
)

// LogSink writes diagnostics to the application log.
type LogSink struct {
	l *applogger.Logger
}

func NewLogSink(l *applogger.Logger) *LogSink {
	return &LogSink{l: l}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Emit(_ context.Context, d models.Diagnostic) error {
	fields := make([]applogger.Field, 0, len(d.Fields)+2)
	fields = append(fields,
		applogger.String("kind", d.Kind),
		applogger.String("diagnostic_id", d.ID),
	)
	for k, v := range d.Fields {
		fields = append(fields, applogger.String(k, v))
	}
	s.l.Info(d.Message, fields...)
	return nil
}

func (s *LogSink) Close() error { return nil }
