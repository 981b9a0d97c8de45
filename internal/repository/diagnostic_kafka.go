package repository

import (
	"context"

	"RugGuard/internal/domain/models"
)

// Publisher is satisfied by *pkg/kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, key []byte, value interface{}) error
	Close() error
}

// KafkaSink publishes diagnostics keyed by kind, so one kind stays on one partition.
type KafkaSink struct {
	producer Publisher
}

func NewKafkaSink(producer Publisher) *KafkaSink {
	return &KafkaSink{producer: producer}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Emit(ctx context.Context, d models.Diagnostic) error {
	return s.producer.Publish(ctx, []byte(d.Kind), d)
}

func (s *KafkaSink) Close() error {
	if s.producer == nil {
		return nil
	}
	return s.producer.Close()
}
