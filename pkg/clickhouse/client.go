package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2"
)

// Open returns a pooled *sql.DB on the clickhouse driver after a ping.
func Open(ctx context.Context, opts ...Option) (*sql.DB, error) {
	cfg := &Config{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     10 * time.Second,
		PingTimeout:     5 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	dsn, err := BuildDSN(*cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("clickhouse", dsn)
	if err != nil {
		return nil, fmt.Errorf("clickhouse open: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}
	return db, nil
}

// BuildDSN adds the client settings from cfg to cfg.DSN. Settings already
// present in the DSN are kept.
func BuildDSN(cfg Config) (string, error) {
	if cfg.DSN == "" {
		return "", fmt.Errorf("clickhouse dsn is required")
	}
	u, err := url.Parse(cfg.DSN)
	if err != nil {
		return "", fmt.Errorf("clickhouse dsn: %w", err)
	}
	if u.Scheme != "clickhouse" && u.Scheme != "tcp" && u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("clickhouse dsn: unsupported scheme %q", u.Scheme)
	}

	q := u.Query()
	set := func(key, val string) {
		if q.Get(key) == "" {
			q.Set(key, val)
		}
	}
	if cfg.DialTimeout > 0 {
		set("dial_timeout", cfg.DialTimeout.String())
	}
	if cfg.ReadTimeout > 0 {
		set("read_timeout", cfg.ReadTimeout.String())
	}
	if cfg.AsyncInsert {
		set("async_insert", "1")
		set("wait_for_async_insert", strconv.Itoa(boolInt(cfg.WaitForAsync)))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
