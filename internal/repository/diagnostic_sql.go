package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"
	"time"

	"RugGuard/internal/domain/models"
	pkgch "RugGuard/pkg/clickhouse"

	_ "modernc.org/sqlite"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// SQLSink records diagnostics in a table. It supports the sqlite and
// clickhouse database/sql drivers.
type SQLSink struct {
	db     *sql.DB
	driver string
	table  string
	mu     sync.Mutex
}

// SQLSinkConfig selects the database behind SQLSink. Pool settings, timeouts
// and AsyncInsert apply to clickhouse only.
type SQLSinkConfig struct {
	Driver          string
	DSN             string
	Table           string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AsyncInsert     bool
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
}

// OpenSQLSink connects to the configured database and creates the table if
// needed.
func OpenSQLSink(ctx context.Context, cfg SQLSinkConfig) (*SQLSink, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case "clickhouse":
		db, err = pkgch.Open(ctx,
			pkgch.WithDSN(cfg.DSN),
			pkgch.WithMaxConnections(cfg.MaxOpenConns, cfg.MaxIdleConns),
			pkgch.WithConnMaxLifetime(cfg.ConnMaxLifetime),
			pkgch.WithAsyncInsert(cfg.AsyncInsert, false),
			pkgch.WithTimeouts(cfg.DialTimeout, cfg.ReadTimeout),
		)
	case "sqlite":
		db, err = sql.Open("sqlite", cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	s, err := NewSQLSink(ctx, db, cfg.Driver, cfg.Table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLSink uses an open db and migrates the table.
func NewSQLSink(ctx context.Context, db *sql.DB, driver, table string) (*SQLSink, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	s := &SQLSink{db: db, driver: driver, table: table}
	if driver == "sqlite" {
		// A single connection keeps ":memory:" databases alive across calls.
		db.SetMaxOpenConns(1)
	}
	if err := s.migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLSink) migrate(ctx context.Context) error {
	var stmts []string
	switch s.driver {
	case "clickhouse":
		stmts = []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id      String,
			at      DateTime64(3),
			kind    LowCardinality(String),
			message String,
			fields  String
		) ENGINE = MergeTree ORDER BY (kind, at)`, s.table)}
	default:
		stmts = []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id      TEXT PRIMARY KEY,
				at      INTEGER NOT NULL,
				kind    TEXT NOT NULL,
				message TEXT NOT NULL,
				fields  TEXT
			)`, s.table),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_at ON %s(at)`, indexSuffix(s.table), s.table),
		}
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLSink) Name() string { return "sql" }

func (s *SQLSink) Emit(ctx context.Context, d models.Diagnostic) error {
	fields, err := json.Marshal(d.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	var at interface{} = d.At.UnixMilli()
	if s.driver == "clickhouse" {
		at = d.At
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := fmt.Sprintf("INSERT INTO %s (id, at, kind, message, fields) VALUES (?, ?, ?, ?, ?)", s.table)
	if _, err := s.db.ExecContext(ctx, q, d.ID, at, d.Kind, d.Message, string(fields)); err != nil {
		return fmt.Errorf("insert diagnostic: %w", err)
	}
	return nil
}

// Recent returns up to n diagnostics, newest first.
func (s *SQLSink) Recent(ctx context.Context, n int64) ([]models.Diagnostic, error) {
	q := fmt.Sprintf("SELECT id, at, kind, message, fields FROM %s ORDER BY at DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, fmt.Errorf("query diagnostics: %w", err)
	}
	defer rows.Close()

	var out []models.Diagnostic
	for rows.Next() {
		var (
			d      models.Diagnostic
			fields sql.NullString
		)
		if s.driver == "clickhouse" {
			err = rows.Scan(&d.ID, &d.At, &d.Kind, &d.Message, &fields)
		} else {
			var ms int64
			err = rows.Scan(&d.ID, &ms, &d.Kind, &d.Message, &fields)
			d.At = time.UnixMilli(ms).UTC()
		}
		if err != nil {
			return nil, err
		}
		if fields.Valid && fields.String != "" && fields.String != "null" {
			if err := json.Unmarshal([]byte(fields.String), &d.Fields); err != nil {
				return nil, fmt.Errorf("decode fields of %s: %w", d.ID, err)
			}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLSink) Close() error {
	return s.db.Close()
}

func indexSuffix(table string) string {
	b := []byte(table)
	for i, c := range b {
		if c == '.' {
			b[i] = '_'
		}
	}
	return string(b)
}
