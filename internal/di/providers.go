package di

import (
	"context"
	"fmt"
	"net"
	"time"

	"RugGuard/internal/domain/repository"
	"RugGuard/internal/handler/api"
	"RugGuard/internal/handler/pages"
	internalrepo "RugGuard/internal/repository"
	"RugGuard/internal/service/hub"
	"RugGuard/internal/usecase"
	"RugGuard/internal/web"
	"RugGuard/pkg/config"
	xhttp "RugGuard/pkg/http"
	pkgkafka "RugGuard/pkg/kafka"
	applogger "RugGuard/pkg/logger"
	"RugGuard/pkg/metrics"
	"RugGuard/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Static assets linked from the footer.
var staticFiles = []string{"pitchdeck.pdf", "pitchvideo.mp4"}

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideRegistry creates the Prometheus registry served on /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.NewWithRegisterer(reg)
}

// ProvideHub starts the websocket diagnostics hub. Its route is mounted only
// when the websocket sink is enabled.
func ProvideHub(cfg *config.Config, l *applogger.Logger) *hub.Hub {
	return hub.New(l, cfg.Diagnostics.Websocket.Buffer)
}

// ProvideDiagnosticSink opens every configured sink, in configured order.
// Sinks opened before a failure are closed again, and so is the hub.
func ProvideDiagnosticSink(cfg *config.Config, l *applogger.Logger, h *hub.Hub, reg *prometheus.Registry) (*internalrepo.FanoutSink, error) {
	var sinks []repository.DiagnosticSink
	fail := func(err error) (*internalrepo.FanoutSink, error) {
		_ = internalrepo.NewFanoutSink(sinks...).Close()
		_ = h.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	d := cfg.Diagnostics
	for _, name := range d.Sinks {
		switch name {
		case config.SinkLog:
			sinks = append(sinks, internalrepo.NewLogSink(l.With(applogger.String("component", "diagnostics"))))
		case config.SinkWebsocket:
			sinks = append(sinks, h)
		case config.SinkKafka:
			producer, err := pkgkafka.NewProducer(
				pkgkafka.WithBrokers(d.Kafka.Brokers),
				pkgkafka.WithTopic(d.Kafka.Topic),
				pkgkafka.WithCompression(d.Kafka.Compression),
				pkgkafka.WithDelivery(d.Kafka.RequiredAcks, d.Kafka.MaxAttempts),
				pkgkafka.WithTimeouts(d.Kafka.WriteTimeout, d.Kafka.BatchTimeout),
				pkgkafka.WithAsync(d.Kafka.Async),
				pkgkafka.WithRegisterer(reg),
			)
			if err != nil {
				return fail(fmt.Errorf("kafka producer: %w", err))
			}
			sinks = append(sinks, internalrepo.NewKafkaSink(producer))
		case config.SinkRedis:
			s, err := internalrepo.NewRedisSink(internalrepo.RedisSinkConfig{
				Addr:     d.Redis.Addr,
				Password: d.Redis.Password,
				DB:       d.Redis.DB,
				Key:      d.Redis.Key,
				MaxLen:   d.Redis.MaxLen,
			})
			if err != nil {
				return fail(fmt.Errorf("redis sink: %w", err))
			}
			sinks = append(sinks, s)
		case config.SinkSQL:
			s, err := internalrepo.OpenSQLSink(ctx, internalrepo.SQLSinkConfig{
				Driver:          d.SQL.Driver,
				DSN:             d.SQL.DSN,
				Table:           d.SQL.Table,
				MaxOpenConns:    d.SQL.MaxOpenConns,
				MaxIdleConns:    d.SQL.MaxIdleConns,
				ConnMaxLifetime: d.SQL.ConnMaxLifetime,
				AsyncInsert:     d.SQL.AsyncInsert,
				DialTimeout:     d.SQL.DialTimeout,
				ReadTimeout:     d.SQL.ReadTimeout,
			})
			if err != nil {
				return fail(fmt.Errorf("sql sink: %w", err))
			}
			sinks = append(sinks, s)
		default:
			return fail(fmt.Errorf("unknown diagnostics sink %q", name))
		}
	}

	l.Info("diagnostic sinks ready", applogger.Strings("sinks", d.Sinks))
	return internalrepo.NewFanoutSink(sinks...), nil
}

// ProvideHistory returns the first sink that can list past diagnostics, or
// nil when none is configured.
func ProvideHistory(f *internalrepo.FanoutSink) repository.History {
	if h, ok := f.History(); ok {
		return h
	}
	return nil
}

// ProvideDiagnostics creates the diagnostics emitter.
func ProvideDiagnostics(f *internalrepo.FanoutSink, m repository.Metrics, l *applogger.Logger) *usecase.Diagnostics {
	return usecase.NewDiagnostics(f, m, l)
}

// ProvidePoolBoard serves the overview pools.
func ProvidePoolBoard() *usecase.PoolBoard {
	return usecase.NewPoolBoard(internalrepo.NewOverviewPools())
}

// ProvideTxQueue serves the pending transactions.
func ProvideTxQueue() *usecase.TxQueue {
	return usecase.NewTxQueue(internalrepo.NewPendingQueue())
}

// ProvideAnalytics aggregates the analytics pools.
func ProvideAnalytics(m repository.Metrics) *usecase.Analytics {
	return usecase.NewAnalytics(internalrepo.NewAnalyticsPools(), m)
}

// ProvideRenderer parses the page templates. The layout only opens the
// diagnostics socket when the websocket sink is enabled.
func ProvideRenderer(cfg *config.Config) (*web.Renderer, error) {
	return web.NewRenderer(web.WithLiveDiagnostics(cfg.HasSink(config.SinkWebsocket)))
}

// ProvideTrustedProxies parses the proxy ranges allowed to set X-Forwarded-For.
func ProvideTrustedProxies(cfg *config.Config) ([]*net.IPNet, error) {
	nets, err := cfg.Server.TrustedProxyNets()
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	return nets, nil
}

// ProvideHTTPHandler combines the page and API routes, plus the websocket
// route when the websocket sink is enabled.
func ProvideHTTPHandler(cfg *config.Config, p *pages.Handler, a *api.DashboardHandler, h *hub.Hub) xhttp.Handler {
	if cfg.HasSink(config.SinkWebsocket) {
		return xhttp.Handlers{p, a, h}
	}
	return xhttp.Handlers{p, a}
}

// ProvideHTTPServer creates the echo server.
func ProvideHTTPServer(
	cfg *config.Config,
	handler xhttp.Handler,
	renderer *web.Renderer,
	proxies []*net.IPNet,
	reg *prometheus.Registry,
	l *applogger.Logger,
) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithRenderer(renderer),
		xhttp.WithStaticFiles(cfg.Static.Dir, staticFiles...),
		xhttp.WithLogger(l),
		xhttp.WithTrustedProxies(proxies...),
		xhttp.WithMiddleware(web.Session()),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path, reg, reg))
	}
	if rl := cfg.Server.RateLimit; rl.Enabled {
		opts = append(opts, xhttp.WithRateLimit(rl.Burst, rl.RefillPerSecond))
	}
	return xhttp.NewServer(handler, opts...)
}

// ProvideApp creates the application. Sinks are closed before the hub.
func ProvideApp(
	cfg *config.Config,
	srv *xhttp.Server,
	sink *internalrepo.FanoutSink,
	h *hub.Hub,
	l *applogger.Logger,
) *server.App {
	return server.New(srv, l, cfg.Server.ShutdownTimeout, sink, h)
}
