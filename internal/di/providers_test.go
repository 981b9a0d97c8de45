package di

import (
	"path/filepath"
	"testing"

	"RugGuard/internal/domain/models"
	"RugGuard/internal/handler/api"
	"RugGuard/internal/handler/pages"
	"RugGuard/internal/service/hub"
	"RugGuard/pkg/config"
	xhttp "RugGuard/pkg/http"
	applogger "RugGuard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideDiagnosticSinkBuildsConfiguredSinks(t *testing.T) {
	cfg := config.Default()
	cfg.Diagnostics.Sinks = []string{config.SinkLog, config.SinkWebsocket, config.SinkSQL}
	cfg.Diagnostics.SQL.DSN = filepath.Join(t.TempDir(), "diag.db")

	h := ProvideHub(cfg, applogger.Nop())
	reg := ProvideRegistry()
	f, err := ProvideDiagnosticSink(cfg, applogger.Nop(), h, reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	names := make([]string, 0, len(f.Sinks()))
	for _, s := range f.Sinks() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"log", "websocket", "sql"}, names)
	assert.NotNil(t, ProvideHistory(f))
}

func TestProvideHistoryNilWithoutStore(t *testing.T) {
	cfg := config.Default()
	cfg.Diagnostics.Sinks = []string{config.SinkLog}

	h := ProvideHub(cfg, applogger.Nop())
	t.Cleanup(func() { _ = h.Close() })
	f, err := ProvideDiagnosticSink(cfg, applogger.Nop(), h, ProvideRegistry())
	require.NoError(t, err)
	assert.Nil(t, ProvideHistory(f))
}

func TestProvideDiagnosticSinkClosesOnFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Diagnostics.Sinks = []string{config.SinkLog, config.SinkSQL}
	cfg.Diagnostics.SQL.DSN = ":memory:"
	cfg.Diagnostics.SQL.Table = "bad table"

	h := ProvideHub(cfg, applogger.Nop())
	_, err := ProvideDiagnosticSink(cfg, applogger.Nop(), h, ProvideRegistry())
	require.Error(t, err)
	assert.ErrorIs(t, h.Emit(t.Context(), models.Diagnostic{Session: "s"}), hub.ErrClosed)
}

func TestProvideHTTPHandlerMountsHubWithWebsocketSink(t *testing.T) {
	p := &pages.Handler{}
	a := &api.DashboardHandler{}
	h := ProvideHub(config.Default(), applogger.Nop())
	t.Cleanup(func() { _ = h.Close() })

	cfg := config.Default()
	cfg.Diagnostics.Sinks = []string{config.SinkLog}
	assert.Equal(t, xhttp.Handlers{p, a}, ProvideHTTPHandler(cfg, p, a, h))

	cfg.Diagnostics.Sinks = []string{config.SinkLog, config.SinkWebsocket}
	assert.Equal(t, xhttp.Handlers{p, a, h}, ProvideHTTPHandler(cfg, p, a, h))
}

func TestProvideTrustedProxiesRejectsGarbage(t *testing.T) {
	cfg := config.Default()
	cfg.Server.TrustedProxies = []string{"10.0.0.0/8", "proxy.local"}
	_, err := ProvideTrustedProxies(cfg)
	require.Error(t, err)

	cfg.Server.TrustedProxies = []string{"10.0.0.0/8"}
	nets, err := ProvideTrustedProxies(cfg)
	require.NoError(t, err)
	require.Len(t, nets, 1)
	assert.Equal(t, "10.0.0.0/8", nets[0].String())
}
