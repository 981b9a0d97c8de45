package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"RugGuard/internal/domain/models"
	drepo "RugGuard/internal/domain/repository"
	applogger "RugGuard/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDiagnostic(id string, at time.Time) models.Diagnostic {
	return models.Diagnostic{
		ID:      id,
		Kind:    models.KindPoolView,
		Message: "Viewing pool with ID: 1",
		Fields:  map[string]string{"pool_id": "1"},
		At:      at,
	}
}

type recordingSink struct {
	name string
	err  error
	got  []models.Diagnostic
}

func (r *recordingSink) Name() string { return r.name }

func (r *recordingSink) Emit(_ context.Context, d models.Diagnostic) error {
	r.got = append(r.got, d)
	return r.err
}

func (r *recordingSink) Close() error { return r.err }

func TestFanoutDeliversPastFailures(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingSink{name: "a", err: boom}
	b := &recordingSink{name: "b"}
	f := NewFanoutSink(a, b)

	err := f.Emit(context.Background(), sampleDiagnostic("d1", time.Now()))
	require.ErrorIs(t, err, boom)

	var se *drepo.SinkError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "a", se.Sink)
	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)
}

func TestFanoutCloseJoinsErrors(t *testing.T) {
	boom := errors.New("close failed")
	f := NewFanoutSink(&recordingSink{name: "a", err: boom}, &recordingSink{name: "b"})
	require.ErrorIs(t, f.Close(), boom)
}

func TestFanoutHistory(t *testing.T) {
	f := NewFanoutSink(&recordingSink{name: "a"})
	_, ok := f.History()
	assert.False(t, ok)
}

func TestLogSinkWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(applogger.NewWriter(&buf, "info"))

	require.NoError(t, s.Emit(context.Background(), sampleDiagnostic("d1", time.Now())))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Viewing pool with ID: 1", line["message"])
	assert.Equal(t, models.KindPoolView, line["kind"])
	assert.Equal(t, "1", line["pool_id"])
}

type fakePublisher struct {
	key   []byte
	value interface{}
}

func (f *fakePublisher) Publish(_ context.Context, key []byte, value interface{}) error {
	f.key, f.value = key, value
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestKafkaSinkKeysByKind(t *testing.T) {
	p := &fakePublisher{}
	s := NewKafkaSink(p)
	d := sampleDiagnostic("d1", time.Now())

	require.NoError(t, s.Emit(context.Background(), d))
	assert.Equal(t, []byte(models.KindPoolView), p.key)
	assert.Equal(t, d, p.value)
}

func TestSQLSinkSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLSink(ctx, SQLSinkConfig{Driver: "sqlite", DSN: ":memory:", Table: "diagnostics"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Emit(ctx, sampleDiagnostic("d1", base)))
	require.NoError(t, s.Emit(ctx, sampleDiagnostic("d2", base.Add(time.Second))))

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d2", got[0].ID)
	assert.Equal(t, "d1", got[1].ID)
	assert.Equal(t, base, got[1].At)
	assert.Equal(t, map[string]string{"pool_id": "1"}, got[1].Fields)

	f := NewFanoutSink(&recordingSink{name: "a"}, s)
	h, ok := f.History()
	require.True(t, ok)
	assert.Same(t, s, h)
}

func TestSQLSinkRejectsBadTableName(t *testing.T) {
	_, err := OpenSQLSink(context.Background(), SQLSinkConfig{Driver: "sqlite", DSN: ":memory:", Table: "diag; DROP TABLE x"})
	require.Error(t, err)
}

func TestSQLSinkRejectsUnknownDriver(t *testing.T) {
	_, err := OpenSQLSink(context.Background(), SQLSinkConfig{Driver: "postgres", DSN: "x", Table: "diagnostics"})
	require.Error(t, err)
}

func TestSQLSinkClickHouseUnreachable(t *testing.T) {
	start := time.Now()
	_, err := OpenSQLSink(context.Background(), SQLSinkConfig{
		Driver:      "clickhouse",
		DSN:         "clickhouse://127.0.0.1:1/default",
		Table:       "diagnostics",
		DialTimeout: 200 * time.Millisecond,
		ReadTimeout: time.Second,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open clickhouse")
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestRedisSinkReportsUnreachableServer(t *testing.T) {
	cli := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := NewRedisSinkWithClient(cli, "rugguard:diagnostics", 10)
	t.Cleanup(func() { _ = s.Close() })

	err := s.Emit(context.Background(), sampleDiagnostic("d1", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rugguard:diagnostics")
	assert.Equal(t, "redis", s.Name())
}
