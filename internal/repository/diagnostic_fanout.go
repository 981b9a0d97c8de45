package repository

import (
	"context"
	"errors"

	"RugGuard/internal/domain/models"
	"RugGuard/internal/domain/repository"
)

// FanoutSink delivers every diagnostic to all sinks, in order. A failing
// sink does not stop delivery to the rest; failures are joined.
type FanoutSink struct {
	sinks []repository.DiagnosticSink
}

func NewFanoutSink(sinks ...repository.DiagnosticSink) *FanoutSink {
	return &FanoutSink{sinks: sinks}
}

func (f *FanoutSink) Name() string { return "fanout" }

// Sinks returns the configured sinks.
func (f *FanoutSink) Sinks() []repository.DiagnosticSink { return f.sinks }

func (f *FanoutSink) Emit(ctx context.Context, d models.Diagnostic) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Emit(ctx, d); err != nil {
			errs = append(errs, &repository.SinkError{Sink: s.Name(), Err: err})
		}
	}
	return errors.Join(errs...)
}

// History returns the first sink that can replay diagnostics.
func (f *FanoutSink) History() (repository.History, bool) {
	for _, s := range f.sinks {
		if h, ok := s.(repository.History); ok {
			return h, true
		}
	}
	return nil, false
}

func (f *FanoutSink) Close() error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, &repository.SinkError{Sink: s.Name(), Err: err})
		}
	}
	return errors.Join(errs...)
}
