package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"RugGuard/internal/domain/models"

	"github.com/redis/go-redis/v9"
)

// RedisSinkConfig configures RedisSink.
type RedisSinkConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	MaxLen   int64
}

// RedisSink keeps the most recent diagnostics in a capped Redis list,
// newest first.
type RedisSink struct {
	cli    redis.UniversalClient
	key    string
	maxLen int64
}

// NewRedisSink connects and pings Redis.
func NewRedisSink(cfg RedisSinkConfig) (*RedisSink, error) {
	cli := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisSinkWithClient(cli, cfg.Key, cfg.MaxLen), nil
}

// NewRedisSinkWithClient wraps an existing client.
func NewRedisSinkWithClient(cli redis.UniversalClient, key string, maxLen int64) *RedisSink {
	return &RedisSink{cli: cli, key: key, maxLen: maxLen}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Emit(ctx context.Context, d models.Diagnostic) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal diagnostic: %w", err)
	}

	pipe := s.cli.TxPipeline()
	pipe.LPush(ctx, s.key, b)
	if s.maxLen > 0 {
		pipe.LTrim(ctx, s.key, 0, s.maxLen-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis push %s: %w", s.key, err)
	}
	return nil
}

// Recent returns up to n stored diagnostics, newest first.
func (s *RedisSink) Recent(ctx context.Context, n int64) ([]models.Diagnostic, error) {
	raw, err := s.cli.LRange(ctx, s.key, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis range %s: %w", s.key, err)
	}
	out := make([]models.Diagnostic, 0, len(raw))
	for _, r := range raw {
		var d models.Diagnostic
		if err := json.Unmarshal([]byte(r), &d); err != nil {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *RedisSink) Close() error {
	return s.cli.Close()
}
